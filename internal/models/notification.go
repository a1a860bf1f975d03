// internal/models/notification.go
package models

// Notification records the outcome of one confirmation sent for an application.
type Notification struct {
	ApplicationID int64  `json:"applicationId"`
	Channel       string `json:"channel"` // "email", "sms"
	Recipient     string `json:"recipient"`
	Status        string `json:"status"` // "sent", "failed", "disabled"
	MessageID     string `json:"messageId,omitempty"`
	Error         string `json:"error,omitempty"`
	SentAt        string `json:"sentAt,omitempty"`
}
