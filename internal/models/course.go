// internal/models/course.go
package models

// CategoryAll matches every course category and every selected course.
const CategoryAll = "All"

type Course struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Fees        string `json:"fees"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
