package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/config"
)

// sendTimeout bounds a single Mailgun API call.
const sendTimeout = 15 * time.Second

// MailgunSender implements Sender on the Mailgun HTTP API.
type MailgunSender struct {
	mg     *mailgun.MailgunImpl
	sender string
}

// NewMailgunSender creates a sender from configuration.
func NewMailgunSender(cfg config.MailgunConfig) *MailgunSender {
	return &MailgunSender{
		mg:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender: cfg.Sender,
	}
}

// Send delivers a single message. Failures are logged and returned so the
// caller can surface a retryable error to the user.
func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	m := s.mg.NewMessage(s.sender, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}
	for _, a := range msg.Attachments {
		m.AddBufferAttachment(a.Filename, a.Data)
	}

	_, id, err := s.mg.Send(ctx, m)
	if err != nil {
		log.Error().Err(err).Strs("to", msg.To).Str("subject", msg.Subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("message_id", id).Strs("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}
