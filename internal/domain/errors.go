package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")

	ErrUserNotFound        = errors.New("user not found")
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrEnquiryNotFound     = errors.New("enquiry not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")

	ErrOTPNotFound      = errors.New("no verification code issued")
	ErrOTPMismatch      = errors.New("verification code does not match")
	ErrEmailNotVerified = errors.New("email address not verified")

	ErrInvalidStatusTransition = errors.New("invalid application status transition")
	ErrDocumentTooLarge        = errors.New("document exceeds the maximum upload size")
	ErrUnsupportedDocumentType = errors.New("unsupported document content type")
)
