package admissions

import (
	"context"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
)

// ContactForm is the data entered on the contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactDesk appends contact messages. The collection is write-only from here.
type ContactDesk struct {
	repo   *Repository
	now    func() time.Time
	logger logger.Logger
}

func NewContactDesk(repo *Repository, log logger.Logger) *ContactDesk {
	return &ContactDesk{
		repo:   repo,
		now:    time.Now,
		logger: logger.Component(log, "admissions.contact"),
	}
}

// Submit validates the form and appends a message with a timestamp id.
func (d *ContactDesk) Submit(ctx context.Context, form ContactForm) (*models.ContactMessage, error) {
	if fieldErrs := ValidateContact(form); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	now := d.now()
	var msg models.ContactMessage
	err := d.repo.UpdateContactMessages(ctx, func(existing []models.ContactMessage) ([]models.ContactMessage, bool, error) {
		id := now.UnixMilli()
		for taken := true; taken; {
			taken = false
			for _, m := range existing {
				if m.ID == id {
					taken = true
					id++
					break
				}
			}
		}
		msg = models.ContactMessage{
			ID:          id,
			Name:        form.Name,
			Email:       form.Email,
			Message:     form.Message,
			SubmittedAt: now.UTC().Format(isoMillis),
		}
		next := make([]models.ContactMessage, len(existing), len(existing)+1)
		copy(next, existing)
		return append(next, msg), true, nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("contact message stored", map[string]interface{}{"messageId": msg.ID})
	return &msg, nil
}
