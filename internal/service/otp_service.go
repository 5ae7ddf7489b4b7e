package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/mail"
)

// OTPService issues and checks emailed verification codes. The store is
// injected so tests run against memory and production against Redis.
type OTPService struct {
	store    domain.OTPStore
	userRepo domain.UserRepository
	sender   mail.Sender
}

// NewOTPService creates a new OTPService
func NewOTPService(store domain.OTPStore, userRepo domain.UserRepository, sender mail.Sender) *OTPService {
	return &OTPService{
		store:    store,
		userRepo: userRepo,
		sender:   sender,
	}
}

// SendCode issues a fresh 6-digit code to the user's email address,
// replacing any outstanding one.
func (s *OTPService) SendCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.store.Set(user.Email, code, domain.OTPTTL); err != nil {
		return err
	}

	msg := mail.Message{
		To:      []string{user.Email},
		Subject: "Your WiseBond verification code",
		Text: fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nThe WiseBond team",
			user.FullName(), code, int(domain.OTPTTL.Minutes())),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		// The code stays in the store; the user can request a resend.
		return err
	}

	log.Info().Str("user_id", userID.String()).Msg("Verification code sent")
	return nil
}

// VerifyCode checks the submitted code and marks the email verified on a
// match. The code is single-use.
func (s *OTPService) VerifyCode(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	stored, err := s.store.Get(user.Email)
	if err != nil {
		return err
	}
	if stored != code {
		return domain.ErrOTPMismatch
	}

	if err := s.store.Delete(user.Email); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to delete used verification code")
	}

	if err := s.userRepo.MarkEmailVerified(userID); err != nil {
		return err
	}

	log.Info().Str("user_id", userID.String()).Msg("Email verified")
	return nil
}

// generateCode produces a 6-digit zero-padded code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
