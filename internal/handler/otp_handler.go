package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// OTPHandler handles email verification requests
type OTPHandler struct {
	otpService *service.OTPService
}

// NewOTPHandler creates a new OTPHandler
func NewOTPHandler(otpService *service.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// VerifyCodeRequest carries the submitted verification code
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// SendCode handles POST /api/profile/verify-email/send
func (h *OTPHandler) SendCode(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	if err := h.otpService.SendCode(c.Request().Context(), userID); err != nil {
		return NewInternalError(c, "Failed to send verification code")
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "sent"})
}

// VerifyCode handles POST /api/profile/verify-email/confirm
func (h *OTPHandler) VerifyCode(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil || len(req.Code) != 6 {
		return NewValidationError(c, "A 6-digit code is required", []ValidationError{
			{Field: "code", Message: "must be 6 digits"},
		})
	}

	err := h.otpService.VerifyCode(c.Request().Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			return NewValidationError(c, "No verification code outstanding; request a new one", nil)
		case errors.Is(err, domain.ErrOTPMismatch):
			return NewValidationError(c, "Verification code does not match", []ValidationError{
				{Field: "code", Message: "does not match"},
			})
		default:
			return NewInternalError(c, "Failed to verify code")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "verified"})
}
