package submitapplication

import (
	"admissions-workers/internal/admissions"
	"admissions-workers/internal/models"
)

type Input struct {
	Application admissions.ApplicationForm `json:"application"`
}

// Output carries the stored record, where its receipt went, and the
// cleared form for the next submission.
type Output struct {
	ApplicationID   int64                      `json:"applicationId"`
	Application     models.ApplicationRecord   `json:"applicationRecord"`
	ReceiptFilename string                     `json:"receiptFilename"`
	ReceiptLocation string                     `json:"receiptLocation"`
	Form            admissions.ApplicationForm `json:"application"`
}
