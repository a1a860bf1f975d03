package validateapplicationdata

import "admissions-workers/internal/admissions"

type Input struct {
	Application admissions.ApplicationForm `json:"application"`
}

type Output struct {
	IsValid          bool              `json:"isValid"`
	ValidationErrors map[string]string `json:"validationErrors"`
}
