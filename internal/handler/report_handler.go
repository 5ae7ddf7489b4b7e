package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// ReportHandler handles PDF report generation requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReportRequest carries the calculator kind and inputs to render
type GenerateReportRequest struct {
	Kind   string          `json:"kind"`
	Inputs json.RawMessage `json:"inputs"`
}

// Generate handles POST /api/reports. The response body is the PDF.
func (h *ReportHandler) Generate(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, inputs, err := computeByKind(req.Kind, req.Inputs)
	if err != nil {
		return calculationError(c, err)
	}

	generated, err := h.reportService.Generate(c.Request().Context(), userID, result, inputs)
	if err != nil {
		return NewInternalError(c, "Failed to generate report")
	}

	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+generated.FileName+`"`)
	return c.Blob(http.StatusOK, "application/pdf", generated.PDF)
}

// Email handles POST /api/reports/email: render and send to the user's
// verified address.
func (h *ReportHandler) Email(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, inputs, err := computeByKind(req.Kind, req.Inputs)
	if err != nil {
		return calculationError(c, err)
	}

	generated, err := h.reportService.GenerateAndEmail(c.Request().Context(), userID, result, inputs)
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotVerified) {
			return NewForbiddenError(c, "Verify your email address before requesting emailed reports")
		}
		return NewInternalError(c, "Failed to email report")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"fileName":    generated.FileName,
		"downloadUrl": generated.DownloadURL,
	})
}
