package searchcourses

import "admissions-workers/internal/models"

type Input struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

type Output struct {
	Courses    []models.Course `json:"courses"`
	Count      int             `json:"courseCount"`
	Categories []string        `json:"categories"`
}
