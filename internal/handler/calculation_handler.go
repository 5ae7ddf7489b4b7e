package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// CalculationHandler handles saved calculation requests for signed-in
// customers
type CalculationHandler struct {
	calcService *service.CalculationService
}

// NewCalculationHandler creates a new CalculationHandler
func NewCalculationHandler(calcService *service.CalculationService) *CalculationHandler {
	return &CalculationHandler{calcService: calcService}
}

// SaveCalculationRequest carries the calculator kind and its raw inputs.
// The server recomputes the result before saving; clients never submit
// result values directly.
type SaveCalculationRequest struct {
	Kind   string          `json:"kind"`
	Inputs json.RawMessage `json:"inputs"`
}

// Save handles POST /api/calculations
func (h *CalculationHandler) Save(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req SaveCalculationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, _, err := computeByKind(req.Kind, req.Inputs)
	if err != nil {
		return calculationError(c, err)
	}

	saved, err := h.calcService.Save(userID, result)
	if err != nil {
		return NewInternalError(c, "Failed to save calculation")
	}

	return c.JSON(http.StatusCreated, saved)
}

// List handles GET /api/calculations
func (h *CalculationHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	calcs, err := h.calcService.List(userID)
	if err != nil {
		return NewInternalError(c, "Failed to list calculations")
	}
	return c.JSON(http.StatusOK, calcs)
}

// Get handles GET /api/calculations/:id
func (h *CalculationHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid calculation ID", nil)
	}

	saved, err := h.calcService.Get(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCalculationNotFound) {
			return NewNotFoundError(c, "Calculation not found")
		}
		return NewInternalError(c, "Failed to load calculation")
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /api/calculations/:id
func (h *CalculationHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid calculation ID", nil)
	}

	if err := h.calcService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrCalculationNotFound) {
			return NewNotFoundError(c, "Calculation not found")
		}
		return NewInternalError(c, "Failed to delete calculation")
	}
	return c.NoContent(http.StatusNoContent)
}

func parseInt32Param(c echo.Context, name string) (int32, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(v), nil
}
