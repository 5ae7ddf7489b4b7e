package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// ApplicationHandler handles bond application requests. Create/update are
// agent operations; customers can list their own applications.
type ApplicationHandler struct {
	appService *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// CreateApplicationRequest represents the create application request body
type CreateApplicationRequest struct {
	CustomerID      string  `json:"customerId"`
	PropertyAddress string  `json:"propertyAddress"`
	PurchasePrice   string  `json:"purchasePrice"`
	LoanAmount      string  `json:"loanAmount"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateApplicationRequest represents the update application request body.
// All fields are optional; status triggers a pipeline transition.
type UpdateApplicationRequest struct {
	Status *string `json:"status,omitempty"`
	Lender *string `json:"lender,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Create handles POST /api/agent/applications
func (h *ApplicationHandler) Create(c echo.Context) error {
	agentID := middleware.GetUserID(c)
	if agentID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", []ValidationError{
			{Field: "customerId", Message: "must be a UUID"},
		})
	}
	purchasePrice, err := calc.ParseRand(req.PurchasePrice)
	if err != nil {
		return NewValidationError(c, "Invalid purchase price", []ValidationError{
			{Field: "purchasePrice", Message: "not a valid amount"},
		})
	}
	loanAmount, err := calc.ParseRand(req.LoanAmount)
	if err != nil {
		return NewValidationError(c, "Invalid loan amount", []ValidationError{
			{Field: "loanAmount", Message: "not a valid amount"},
		})
	}

	app := &domain.Application{
		CustomerID:      customerID,
		AgentID:         agentID,
		PropertyAddress: req.PropertyAddress,
		PurchasePrice:   purchasePrice,
		LoanAmount:      loanAmount,
		Notes:           req.Notes,
	}

	created, err := h.appService.Create(app)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationAddressEmpty):
			return NewValidationError(c, "Property address is required", []ValidationError{
				{Field: "propertyAddress", Message: "required"},
			})
		case errors.Is(err, domain.ErrApplicationAmountInvalid):
			return NewValidationError(c, "Loan amount must be positive", []ValidationError{
				{Field: "loanAmount", Message: "must be positive"},
			})
		default:
			return NewInternalError(c, "Failed to create application")
		}
	}

	return c.JSON(http.StatusCreated, created)
}

// ListForAgent handles GET /api/agent/applications
func (h *ApplicationHandler) ListForAgent(c echo.Context) error {
	agentID := middleware.GetUserID(c)
	if agentID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	apps, err := h.appService.ListByAgent(agentID)
	if err != nil {
		return NewInternalError(c, "Failed to list applications")
	}
	return c.JSON(http.StatusOK, apps)
}

// Get handles GET /api/agent/applications/:id
func (h *ApplicationHandler) Get(c echo.Context) error {
	agentID := middleware.GetUserID(c)
	if agentID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid application ID", nil)
	}

	app, err := h.appService.Get(agentID, id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return NewNotFoundError(c, "Application not found")
		}
		return NewInternalError(c, "Failed to load application")
	}
	return c.JSON(http.StatusOK, app)
}

// Update handles PATCH /api/agent/applications/:id
func (h *ApplicationHandler) Update(c echo.Context) error {
	agentID := middleware.GetUserID(c)
	if agentID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid application ID", nil)
	}

	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := service.ApplicationUpdate{
		Lender: req.Lender,
		Notes:  req.Notes,
	}
	if req.Status != nil {
		update.Status = domain.ApplicationStatus(*req.Status)
	}

	updated, err := h.appService.Update(agentID, id, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			return NewNotFoundError(c, "Application not found")
		case errors.Is(err, domain.ErrApplicationStatusInvalid):
			return NewValidationError(c, "Unknown application status", []ValidationError{
				{Field: "status", Message: "unknown status"},
			})
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			return NewConflictError(c, "Status transition not allowed from the current state")
		default:
			return NewInternalError(c, "Failed to update application")
		}
	}

	return c.JSON(http.StatusOK, updated)
}

// ListForCustomer handles GET /api/applications
func (h *ApplicationHandler) ListForCustomer(c echo.Context) error {
	customerID := middleware.GetUserID(c)
	if customerID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	apps, err := h.appService.ListByCustomer(customerID)
	if err != nil {
		return NewInternalError(c, "Failed to list applications")
	}
	return c.JSON(http.StatusOK, apps)
}
