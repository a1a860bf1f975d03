// Package catalog holds the fixed course offering and its search.
package catalog

import (
	"context"
	"strings"

	"admissions-workers/internal/models"
)

var defaultCourses = []models.Course{
	{
		ID:          1,
		Name:        "Computer Science & Engineering",
		Duration:    "4 Years",
		Fees:        "$12,000/year",
		Description: "Comprehensive program covering software development, algorithms, and system design.",
		Category:    "Engineering",
	},
	{
		ID:          2,
		Name:        "Business Administration",
		Duration:    "3 Years",
		Fees:        "$10,000/year",
		Description: "Learn management, finance, marketing, and entrepreneurship skills.",
		Category:    "Business",
	},
	{
		ID:          3,
		Name:        "Data Science",
		Duration:    "2 Years",
		Fees:        "$15,000/year",
		Description: "Master data analysis, machine learning, and statistical modeling.",
		Category:    "Technology",
	},
	{
		ID:          4,
		Name:        "Mechanical Engineering",
		Duration:    "4 Years",
		Fees:        "$11,000/year",
		Description: "Design, analysis, and manufacturing of mechanical systems.",
		Category:    "Engineering",
	},
	{
		ID:          5,
		Name:        "Digital Marketing",
		Duration:    "1 Year",
		Fees:        "$8,000/year",
		Description: "Modern marketing strategies for the digital age.",
		Category:    "Business",
	},
	{
		ID:          6,
		Name:        "Artificial Intelligence",
		Duration:    "2 Years",
		Fees:        "$16,000/year",
		Description: "Advanced AI concepts, neural networks, and machine learning.",
		Category:    "Technology",
	},
}

var defaultCategories = []string{models.CategoryAll, "Engineering", "Business", "Technology"}

// Searcher finds courses by free-text term and category.
type Searcher interface {
	Search(ctx context.Context, term, category string) ([]models.Course, error)
}

// Catalog is an immutable list of courses.
type Catalog struct {
	courses    []models.Course
	categories []string
}

// Default returns the university's course offering.
func Default() *Catalog {
	return New(defaultCourses, defaultCategories)
}

func New(courses []models.Course, categories []string) *Catalog {
	c := &Catalog{
		courses:    make([]models.Course, len(courses)),
		categories: make([]string, len(categories)),
	}
	copy(c.courses, courses)
	copy(c.categories, categories)
	return c
}

func (c *Catalog) Courses() []models.Course {
	out := make([]models.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// CourseNames is the fixed set an application's selectedCourse must belong to.
func (c *Catalog) CourseNames() []string {
	names := make([]string, len(c.courses))
	for i, course := range c.courses {
		names[i] = course.Name
	}
	return names
}

func (c *Catalog) HasCourse(name string) bool {
	for _, course := range c.courses {
		if course.Name == name {
			return true
		}
	}
	return false
}

// Filter keeps courses whose name or description contains term
// (case-insensitive) and whose category matches. An empty term matches
// everything, as does the "All" or empty category.
func (c *Catalog) Filter(term, category string) []models.Course {
	needle := strings.ToLower(term)
	out := make([]models.Course, 0, len(c.courses))
	for _, course := range c.courses {
		if needle != "" &&
			!strings.Contains(strings.ToLower(course.Name), needle) &&
			!strings.Contains(strings.ToLower(course.Description), needle) {
			continue
		}
		if category != "" && category != models.CategoryAll && course.Category != category {
			continue
		}
		out = append(out, course)
	}
	return out
}

// Search implements Searcher over the in-memory list.
func (c *Catalog) Search(ctx context.Context, term, category string) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Filter(term, category), nil
}
