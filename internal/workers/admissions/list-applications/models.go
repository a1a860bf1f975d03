package listapplications

import "admissions-workers/internal/models"

type Input struct {
	SearchTerm string `json:"searchTerm"`
	Course     string `json:"course"`
}

type Output struct {
	Applications []models.ApplicationRecord `json:"applications"`
	Shown        int                        `json:"shown"`
	Total        int                        `json:"total"`
	Summary      string                     `json:"summary"`
}
