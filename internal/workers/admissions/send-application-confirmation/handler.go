package sendapplicationconfirmation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/nyaruka/phonenumbers"
)

const TaskType = "send-application-confirmation"

// Handler tells an applicant their application was received, by email and
// by SMS when those channels are enabled.
type Handler struct {
	config   *Config
	registry *admissions.Registry
	email    EmailSender
	sms      SMSSender
	now      func() time.Time
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, registry *admissions.Registry, email EmailSender, sms SMSSender, log logger.Logger, opts ...jobs.Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		registry: registry,
		email:    email,
		sms:      sms,
		now:      time.Now,
		runner:   jobs.NewRunner(TaskType, config.Timeout, log, opts...),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
		var input Input
		if err := jobs.Decode(vars, inputSchema, &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

// Execute fails only when every enabled channel failed, so one working
// channel is enough to complete the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec, err := h.registry.Get(ctx, input.ApplicationID)
	if err != nil {
		return nil, jobs.ToStandardError(err, input.ApplicationID)
	}

	emailNote := h.sendEmail(ctx, rec)
	smsNote := h.sendSMS(ctx, rec)
	notes := []models.Notification{emailNote, smsNote}

	sent, failed := 0, 0
	var lastFailure models.Notification
	for _, n := range notes {
		switch n.Status {
		case StatusSent:
			sent++
		case StatusFailed:
			failed++
			lastFailure = n
		}
	}

	if sent == 0 && failed > 0 {
		return nil, errors.NewNotificationSendFailedError(lastFailure.Channel, fmt.Errorf("%s", lastFailure.Error)).
			WithMetadata("applicationId", rec.ID)
	}

	h.logger.Info("confirmation processed", map[string]interface{}{
		"applicationId": rec.ID,
		"sent":          sent,
		"failed":        failed,
	})
	return &Output{Notifications: notes, Sent: sent}, nil
}

func (h *Handler) sendEmail(ctx context.Context, rec *models.ApplicationRecord) models.Notification {
	n := models.Notification{ApplicationID: rec.ID, Channel: ChannelEmail, Recipient: rec.Email}
	if !h.config.EmailEnabled || h.email == nil {
		n.Status = StatusDisabled
		return n
	}

	subject := fmt.Sprintf("%s: application APP%d received", h.config.Institution, rec.ID)
	id, err := h.email.SendText(ctx, rec.Email, subject, h.emailBody(rec))
	return h.outcome(n, id, err)
}

func (h *Handler) sendSMS(ctx context.Context, rec *models.ApplicationRecord) models.Notification {
	phone := smsRecipient(h.config.CountryCode, rec.ContactNumber)
	n := models.Notification{ApplicationID: rec.ID, Channel: ChannelSMS, Recipient: phone}
	if !h.config.SMSEnabled || h.sms == nil {
		n.Status = StatusDisabled
		return n
	}

	msg := fmt.Sprintf("%s: we received your application APP%d for %s. We will contact you soon.",
		h.config.Institution, rec.ID, rec.SelectedCourse)
	id, err := h.sms.SendSMS(ctx, phone, msg)
	return h.outcome(n, id, err)
}

// smsRecipient prefixes the stored 10-digit number with the country code
// and formats it as E.164. Numbers the parser rejects are sent as-is.
func smsRecipient(countryCode, contact string) string {
	raw := countryCode + admissions.DigitsOnly(contact)
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func (h *Handler) outcome(n models.Notification, messageID string, err error) models.Notification {
	if err != nil {
		h.logger.Warn("confirmation not sent", map[string]interface{}{
			"applicationId": n.ApplicationID,
			"channel":       n.Channel,
			"error":         err.Error(),
		})
		n.Status = StatusFailed
		n.Error = err.Error()
		return n
	}
	n.Status = StatusSent
	n.MessageID = messageID
	n.SentAt = h.now().UTC().Format(time.RFC3339)
	return n
}

func (h *Handler) emailBody(rec *models.ApplicationRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", strings.TrimSpace(rec.Name))
	fmt.Fprintf(&b, "Thank you for your application to %s.\n\n", h.config.Institution)
	fmt.Fprintf(&b, "Application ID: APP%d\n", rec.ID)
	fmt.Fprintf(&b, "Course: %s\n", rec.SelectedCourse)
	fmt.Fprintf(&b, "Submitted: %s\n\n", rec.SubmittedAt)
	b.WriteString("We will contact you soon with further details.\n")
	return b.String()
}
