package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/service"
)

// DocumentHandler handles FICA document uploads and downloads
type DocumentHandler struct {
	docService *service.DocumentService
	appService *service.ApplicationService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(docService *service.DocumentService, appService *service.ApplicationService) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		appService: appService,
	}
}

// Upload handles POST /api/documents (multipart form).
// Fields: file (required), applicationId (optional).
func (h *DocumentHandler) Upload(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "A file is required", []ValidationError{
			{Field: "file", Message: "missing"},
		})
	}
	if fileHeader.Size > domain.MaxDocumentSizeBytes {
		return NewValidationError(c, "File exceeds the 10 MB upload limit", []ValidationError{
			{Field: "file", Message: "too large"},
		})
	}

	var applicationID *int32
	var agentID *uuid.UUID
	if raw := c.FormValue("applicationId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v <= 0 {
			return NewValidationError(c, "Invalid application ID", nil)
		}
		id := int32(v)
		applicationID = &id

		// Attaching to an application routes an event to its agent.
		apps, err := h.appService.ListByCustomer(userID)
		if err == nil {
			for _, app := range apps {
				if app.ID == id {
					agent := app.AgentID
					agentID = &agent
					break
				}
			}
		}
		if agentID == nil {
			return NewNotFoundError(c, "Application not found")
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError(c, "Failed to read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, domain.MaxDocumentSizeBytes+1))
	if err != nil {
		return NewInternalError(c, "Failed to read upload")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.docService.Upload(c.Request().Context(), userID, applicationID, agentID, fileHeader.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentTooLarge):
			return NewValidationError(c, "File exceeds the 10 MB upload limit", nil)
		case errors.Is(err, domain.ErrUnsupportedDocumentType):
			return NewValidationError(c, "Only PDF, JPEG and PNG files are accepted", []ValidationError{
				{Field: "file", Message: "unsupported content type"},
			})
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Invalid upload", nil)
		default:
			return NewInternalError(c, "Failed to store document")
		}
	}

	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /api/documents
func (h *DocumentHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	views, err := h.docService.List(c.Request().Context(), userID)
	if err != nil {
		return NewInternalError(c, "Failed to list documents")
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid document ID", nil)
	}

	view, err := h.docService.Get(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return NewNotFoundError(c, "Document not found")
		}
		return NewInternalError(c, "Failed to load document")
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Sign in required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid document ID", nil)
	}

	if err := h.docService.Delete(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return NewNotFoundError(c, "Document not found")
		}
		return NewInternalError(c, "Failed to delete document")
	}
	return c.NoContent(http.StatusNoContent)
}
