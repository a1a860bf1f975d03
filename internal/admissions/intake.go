package admissions

import (
	"context"
	"fmt"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/models"
)

// isoMillis is the layout of JavaScript's Date.toISOString, which the
// stored submittedAt values have always used.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FileRef describes an uploaded file. Only Name is ever persisted.
type FileRef struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"type,omitempty"`
}

// ApplicationForm is the data entered on the admission form.
type ApplicationForm struct {
	Name           string   `json:"name"`
	DateOfBirth    string   `json:"dateOfBirth"`
	Email          string   `json:"email"`
	ContactNumber  string   `json:"contactNumber"`
	SelectedCourse string   `json:"selectedCourse"`
	Photo          *FileRef `json:"photo,omitempty"`
	Documents      *FileRef `json:"documents,omitempty"`
}

func fileName(ref *FileRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

// Submission is the result of a successful intake.
type Submission struct {
	Record  models.ApplicationRecord `json:"record"`
	Receipt *downloads.Object        `json:"receipt"`
	Form    ApplicationForm          `json:"form"`
}

// Intake validates new applications and appends them to the collection.
type Intake struct {
	repo     *Repository
	receipts *ReceiptGenerator
	sink     downloads.Sink
	courses  []string
	now      func() time.Time
	logger   logger.Logger
}

type IntakeOption func(*Intake)

// WithIntakeClock replaces time.Now, mostly for tests.
func WithIntakeClock(now func() time.Time) IntakeOption {
	return func(i *Intake) { i.now = now }
}

func NewIntake(repo *Repository, receipts *ReceiptGenerator, sink downloads.Sink, courses []string, log logger.Logger, opts ...IntakeOption) *Intake {
	i := &Intake{
		repo:     repo,
		receipts: receipts,
		sink:     sink,
		courses:  append([]string(nil), courses...),
		now:      time.Now,
		logger:   logger.Component(log, "admissions.intake"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Validate runs the form rules without touching storage.
func (i *Intake) Validate(form ApplicationForm) FieldErrors {
	return ValidateApplication(form, i.courses)
}

// Submit validates the form, renders and delivers the receipt, then appends
// the record with one atomic replace of the collection. Any failure leaves
// the stored collection as it was, and a receipt delivered before a failed
// write is removed again.
func (i *Intake) Submit(ctx context.Context, form ApplicationForm) (*Submission, error) {
	if fieldErrs := i.Validate(form); len(fieldErrs) > 0 {
		i.logger.Info("application rejected by validation", map[string]interface{}{
			"fields": fieldErrs.Fields(),
		})
		return nil, &ValidationError{Fields: fieldErrs}
	}

	now := i.now()
	var (
		record  models.ApplicationRecord
		receipt *downloads.Object
	)

	err := i.repo.UpdateApplications(ctx, func(existing []models.ApplicationRecord) ([]models.ApplicationRecord, bool, error) {
		record = models.ApplicationRecord{
			ID:             uniqueID(existing, now.UnixMilli()),
			Name:           form.Name,
			DateOfBirth:    form.DateOfBirth,
			Email:          form.Email,
			ContactNumber:  form.ContactNumber,
			SelectedCourse: form.SelectedCourse,
			Photo:          fileName(form.Photo),
			Documents:      fileName(form.Documents),
			SubmittedAt:    now.UTC().Format(isoMillis),
		}

		pdf, err := i.receipts.Render(record, now)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrReceipt, err)
		}
		filename := ReceiptFilename(record.Name)
		receipt, err = i.sink.Deliver(ctx, filename, downloads.ContentTypePDF, pdf)
		if err != nil {
			return nil, false, &DeliveryError{Filename: filename, Err: err}
		}

		next := make([]models.ApplicationRecord, len(existing), len(existing)+1)
		copy(next, existing)
		return append(next, record), true, nil
	})
	if err != nil {
		i.logger.Error("application submission failed", map[string]interface{}{
			"error": err.Error(),
		})
		if receipt != nil {
			i.withdraw(receipt)
		}
		return nil, err
	}

	i.logger.Info("application submitted", map[string]interface{}{
		"applicationId":  record.ID,
		"selectedCourse": record.SelectedCourse,
		"receipt":        receipt.Location,
	})

	return &Submission{Record: record, Receipt: receipt, Form: ApplicationForm{}}, nil
}

func (i *Intake) withdraw(receipt *downloads.Object) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := i.sink.Remove(ctx, receipt); err != nil {
		i.logger.Warn("orphan receipt left behind", map[string]interface{}{
			"location": receipt.Location,
			"error":    err.Error(),
		})
	}
}

// uniqueID starts from the creation timestamp and steps forward past any
// id already present, so two submissions in the same millisecond stay distinct.
func uniqueID(existing []models.ApplicationRecord, candidate int64) int64 {
	taken := make(map[int64]struct{}, len(existing))
	for _, r := range existing {
		taken[r.ID] = struct{}{}
	}
	for {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate++
	}
}
