package models

import "time"

// Message is a contact-form submission. Immutable once created except for deletion.
type Message struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// NewMessage stamps a submission with a creation-time id (unix milliseconds)
// and an RFC3339 creation timestamp.
func NewMessage(name, phone, body string, now time.Time) Message {
	return Message{
		ID:        now.UnixMilli(),
		Name:      name,
		Phone:     phone,
		Message:   body,
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
}
