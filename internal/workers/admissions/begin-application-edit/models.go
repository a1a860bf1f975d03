package beginapplicationedit

import (
	"time"

	"admissions-workers/internal/models"
)

type Input struct {
	ApplicationID int64 `json:"applicationId"`
}

type Output struct {
	ApplicationID  int64                    `json:"applicationId"`
	Draft          models.ApplicationRecord `json:"draft"`
	EditableFields []string                 `json:"editableFields"`
	StartedAt      time.Time                `json:"editStartedAt"`
}
