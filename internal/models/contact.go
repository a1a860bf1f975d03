// internal/models/contact.go
package models

// ContactMessage is a write-only message left through the contact form.
type ContactMessage struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submittedAt"`
}
