package contact

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

// Message is a note left by a visitor through the contact form.
type Message struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"` // UTC
}

type NewMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Subject = core.CleanString(nm.Subject)
	nm.Message = core.CleanString(nm.Message)
	return validate.Struct(nm)
}
