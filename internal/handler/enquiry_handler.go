package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// EnquiryHandler handles public contact form submissions and the agent
// enquiry list
type EnquiryHandler struct {
	enquiryService *service.EnquiryService
}

// NewEnquiryHandler creates a new EnquiryHandler
func NewEnquiryHandler(enquiryService *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// SubmitEnquiryRequest represents the contact form body
type SubmitEnquiryRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

// Submit handles POST /api/enquiries (public)
func (h *EnquiryHandler) Submit(c echo.Context) error {
	var req SubmitEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	enquiry := &domain.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	created, err := h.enquiryService.Submit(c.Request().Context(), enquiry)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEnquiryNameEmpty):
			return NewValidationError(c, "Name is required", []ValidationError{
				{Field: "name", Message: "required"},
			})
		case errors.Is(err, domain.ErrEnquiryEmailInvalid):
			return NewValidationError(c, "A valid email address is required", []ValidationError{
				{Field: "email", Message: "not a valid email address"},
			})
		case errors.Is(err, domain.ErrEnquiryMessageEmpty):
			return NewValidationError(c, "A message is required", []ValidationError{
				{Field: "message", Message: "required"},
			})
		case errors.Is(err, domain.ErrEnquiryMessageTooLong):
			return NewValidationError(c, "Message must be 4000 characters or less", []ValidationError{
				{Field: "message", Message: "too long"},
			})
		default:
			return NewInternalError(c, "Failed to submit enquiry")
		}
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/agent/enquiries
func (h *EnquiryHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid limit", nil)
		}
		limit = v
	}

	enquiries, err := h.enquiryService.List(limit)
	if err != nil {
		return NewInternalError(c, "Failed to list enquiries")
	}
	return c.JSON(http.StatusOK, enquiries)
}
