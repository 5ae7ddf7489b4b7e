package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/mail"
)

// EnquiryService handles public contact form submissions
type EnquiryService struct {
	enquiryRepo domain.EnquiryRepository
	sender      mail.Sender
	notifyAddr  string
}

// NewEnquiryService creates a new EnquiryService. notifyAddr is the inbox
// that receives a copy of each enquiry; empty disables notification.
func NewEnquiryService(enquiryRepo domain.EnquiryRepository, sender mail.Sender, notifyAddr string) *EnquiryService {
	return &EnquiryService{
		enquiryRepo: enquiryRepo,
		sender:      sender,
		notifyAddr:  notifyAddr,
	}
}

// Submit validates and stores an enquiry, then notifies the consultants
// inbox. Notification failure is logged but does not fail the submission.
func (s *EnquiryService) Submit(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error) {
	if err := enquiry.Validate(); err != nil {
		return nil, err
	}

	created, err := s.enquiryRepo.Create(enquiry)
	if err != nil {
		log.Error().Err(err).Str("email", enquiry.Email).Msg("Failed to store enquiry")
		return nil, err
	}

	if s.notifyAddr != "" {
		phone := "not provided"
		if created.Phone != nil {
			phone = *created.Phone
		}
		msg := mail.Message{
			To:      []string{s.notifyAddr},
			Subject: fmt.Sprintf("New enquiry from %s", created.Name),
			Text: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
				created.Name, created.Email, phone, created.Message),
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			log.Warn().Err(err).Int32("enquiry_id", created.ID).Msg("Failed to send enquiry notification")
		}
	}

	return created, nil
}

// List returns the most recent enquiries for the agent dashboard
func (s *EnquiryService) List(limit int) ([]*domain.Enquiry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.enquiryRepo.GetAll(limit)
}
