package entities

import (
	"strings"

	"company-site.backend/pkg/content"
	"company-site.backend/pkg/validation"
)

// Message is a contact form submission.
type Message struct {
	Record
	Name    string `json:"name" validate:"notblank,max=120"`
	Email   string `json:"email" validate:"notblank,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"notblank,max=5000"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
}

func (m *Message) Kind() Kind          { return KindMessage }
func (m *Message) StatusValue() string { return m.Status }
func (m *Message) IsPublic() bool      { return false }

func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
	m.Phone = strings.TrimSpace(m.Phone)
	if m.Status == "" {
		m.Status = MessageStatuses.Default()
	}
}

func (m *Message) Validate() validation.Errors {
	return validateStatus(validation.Struct(m), MessageStatuses, m.Status)
}

func (m *Message) SetStatus(status string) error {
	if !MessageStatuses.Contains(status) {
		return invalidStatus(MessageStatuses)
	}
	m.Status = status
	return nil
}

func (m *Message) Sanitize(s *content.Sanitizer) {
	m.Name = s.PlainText(m.Name)
	m.Subject = s.PlainText(m.Subject)
	m.Message = s.PlainText(m.Message)
}
