package domain

import "time"

// OTPTTL is how long an emailed verification code stays valid.
const OTPTTL = 10 * time.Minute

// OTPStore holds one-time verification codes keyed by email address.
// Implementations are injected into the OTP service so code lifetime is
// scoped to an instance, never to process-wide state.
type OTPStore interface {
	Set(email, code string, ttl time.Duration) error
	Get(email string) (string, error) // ErrOTPNotFound when absent or expired
	Delete(email string) error
}
