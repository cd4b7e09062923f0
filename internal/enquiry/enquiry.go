package enquiry

import (
	"fmt"
	"strings"
	"time"

	"estateweb/internal/httpx"

	"github.com/google/uuid"
)

// Source records which form an enquiry came from.
type Source string

const (
	SourceFooter  Source = "footer"
	SourceContact Source = "contact"
	SourceAPI     Source = "api"
)

// Enquiry is a stored contact request.
type Enquiry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	ProjectID *int      `json:"projectId,omitempty"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input is what a visitor submits.
type Input struct {
	Name      string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Message   string `json:"message" validate:"required,notblank,max=2000"`
	ProjectID *int   `json:"projectId" validate:"omitempty,gte=1"`
}

// Normalize trims whitespace and lowercases the email.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	return in
}

// InvalidError lists the fields that failed validation.
type InvalidError struct {
	Fields []httpx.ValidationError
}

func (e *InvalidError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid enquiry: %s", strings.Join(names, ", "))
}

// Message returns the validation message for field, or "".
func (e *InvalidError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
