package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEnquiryNameEmpty      = errors.New("enquiry name is required")
	ErrEnquiryEmailInvalid   = errors.New("enquiry email is not valid")
	ErrEnquiryMessageEmpty   = errors.New("enquiry message is required")
	ErrEnquiryMessageTooLong = errors.New("enquiry message must be 4000 characters or less")
)

// Enquiry is a contact form submission from the public site.
type Enquiry struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *Enquiry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEnquiryNameEmpty
	}
	email := strings.TrimSpace(e.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrEnquiryEmailInvalid
	}
	message := strings.TrimSpace(e.Message)
	if message == "" {
		return ErrEnquiryMessageEmpty
	}
	if len(message) > 4000 {
		return ErrEnquiryMessageTooLong
	}
	return nil
}

type EnquiryRepository interface {
	Create(enquiry *Enquiry) (*Enquiry, error)
	GetAll(limit int) ([]*Enquiry, error)
}
