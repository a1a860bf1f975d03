package saveapplicationedit

import "admissions-workers/internal/models"

// Input names the record under edit and the final field changes. Changes
// already recorded on the draft are saved too.
type Input struct {
	ApplicationID int64             `json:"applicationId"`
	Changes       map[string]string `json:"changes"`
}

type Output struct {
	Application   models.ApplicationRecord `json:"applicationRecord"`
	UpdatedFields []string                 `json:"updatedFields"`
}
