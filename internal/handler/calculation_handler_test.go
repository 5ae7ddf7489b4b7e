package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/service"
	"github.com/elandref93/WiseBond-sub004/internal/testutil"
)

func newCalculationHandler() (*CalculationHandler, *testutil.MockSavedCalculationRepository) {
	repo := testutil.NewMockSavedCalculationRepository()
	return NewCalculationHandler(service.NewCalculationService(repo)), repo
}

func TestSaveCalculation_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newCalculationHandler()
	userID := uuid.New()

	reqBody := `{"kind": "bond", "inputs": {"principal": "900000", "annualRate": "11.25", "termYears": 20}}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculations", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID, domain.RoleCustomer)

	if err := handler.Save(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var saved domain.SavedCalculation
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if saved.Kind != "bond" {
		t.Errorf("Expected kind 'bond', got %s", saved.Kind)
	}
	if saved.UserID != userID {
		t.Errorf("Expected calculation owned by %s, got %s", userID, saved.UserID)
	}
	if len(repo.Calculations) != 1 {
		t.Errorf("Expected 1 stored calculation, got %d", len(repo.Calculations))
	}

	// The server computed the result itself; the stored payload carries the
	// recomputed installment.
	var payload struct {
		MonthlyPayment string `json:"monthlyPayment"`
	}
	if err := json.Unmarshal(saved.Payload, &payload); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}
	if payload.MonthlyPayment != "9443.30" {
		t.Errorf("Expected recomputed installment 9443.30, got %s", payload.MonthlyPayment)
	}
}

func TestSaveCalculation_UnknownKind(t *testing.T) {
	e := echo.New()
	handler, _ := newCalculationHandler()

	reqBody := `{"kind": "lottery", "inputs": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculations", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), domain.RoleCustomer)

	if err := handler.Save(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSaveCalculation_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newCalculationHandler()

	reqBody := `{"kind": "bond", "inputs": {"principal": "900000", "annualRate": "11.25", "termYears": 20}}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculations", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Save(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetCalculation_OtherUsersCalculationHidden(t *testing.T) {
	e := echo.New()
	handler, repo := newCalculationHandler()
	owner := uuid.New()

	repo.Calculations[1] = &domain.SavedCalculation{
		ID:      1,
		UserID:  owner,
		Kind:    "bond",
		Payload: []byte(`{}`),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/calculations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, uuid.New(), domain.RoleCustomer)

	if err := handler.Get(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteCalculation_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newCalculationHandler()
	userID := uuid.New()

	repo.Calculations[7] = &domain.SavedCalculation{
		ID:      7,
		UserID:  userID,
		Kind:    "transfer",
		Payload: []byte(`{}`),
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/calculations/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	setupAuthContext(c, userID, domain.RoleCustomer)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(repo.Calculations) != 0 {
		t.Errorf("Expected calculation to be deleted")
	}
}

func TestListCalculations_Empty(t *testing.T) {
	e := echo.New()
	handler, _ := newCalculationHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/calculations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), domain.RoleCustomer)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}
