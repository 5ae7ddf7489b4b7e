package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// ProfileHandler handles the signed-in user's account endpoints
type ProfileHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService *service.AuthService, profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// UpdateProfileRequest represents the profile update body. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Me handles GET /api/auth/me
func (h *ProfileHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if service.IsNotFound(err) {
			return NewNotFoundError(c, "User not found")
		}
		return NewInternalError(c, "Failed to load user")
	}
	return c.JSON(http.StatusOK, user)
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if service.IsNotFound(err) {
			return NewNotFoundError(c, "User not found")
		}
		return NewInternalError(c, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.profileService.UpdateProfile(userID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if service.IsNotFound(err) {
			return NewNotFoundError(c, "User not found")
		}
		return NewValidationError(c, "Invalid profile details", nil)
	}
	return c.JSON(http.StatusOK, updated)
}
