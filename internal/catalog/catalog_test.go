package catalog

import (
	"context"
	"testing"

	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(courses []models.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Name
	}
	return out
}

func TestCatalog_Filter(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{
			name:     "everything",
			category: models.CategoryAll,
			want: []string{
				"Computer Science & Engineering", "Business Administration", "Data Science",
				"Mechanical Engineering", "Digital Marketing", "Artificial Intelligence",
			},
		},
		{
			name:     "category only",
			category: "Technology",
			want:     []string{"Data Science", "Artificial Intelligence"},
		},
		{
			name:     "term matches description case-insensitively",
			term:     "MACHINE LEARNING",
			category: models.CategoryAll,
			want:     []string{"Data Science", "Artificial Intelligence"},
		},
		{
			name:     "term and category",
			term:     "engineering",
			category: "Engineering",
			want:     []string{"Computer Science & Engineering", "Mechanical Engineering"},
		},
		{
			name:     "term outside category",
			term:     "marketing",
			category: "Engineering",
			want:     []string{},
		},
		{
			name: "empty category behaves like All",
			term: "digital",
			want: []string{"Digital Marketing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(c.Filter(tt.term, tt.category)))
		})
	}
}

func TestCatalog_CourseNames(t *testing.T) {
	c := Default()
	assert.Len(t, c.CourseNames(), 6)
	assert.True(t, c.HasCourse("Data Science"))
	assert.False(t, c.HasCourse("data science"))
	assert.Equal(t, []string{"All", "Engineering", "Business", "Technology"}, c.Categories())
}

func TestCatalog_CopiesAreIndependent(t *testing.T) {
	c := Default()
	courses := c.Courses()
	courses[0].Name = "changed"
	assert.Equal(t, "Computer Science & Engineering", c.Courses()[0].Name)
}

func TestCatalog_SearchHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Default().Search(ctx, "", "")
	require.ErrorIs(t, err, context.Canceled)
}
