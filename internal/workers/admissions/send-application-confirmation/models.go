package sendapplicationconfirmation

import (
	"context"

	"admissions-workers/internal/models"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type EmailSender interface {
	SendText(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

type Input struct {
	ApplicationID int64 `json:"applicationId"`
}

type Output struct {
	Notifications []models.Notification `json:"notifications"`
	Sent          int                   `json:"notificationsSent"`
}
