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

func newProfileHandlerFixture() (*ProfileHandler, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	return NewProfileHandler(service.NewAuthService(userRepo), service.NewProfileService(userRepo)), userRepo
}

func TestGetProfile_Success(t *testing.T) {
	e := echo.New()
	handler, userRepo := newProfileHandlerFixture()

	firstName := "Sipho"
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   "auth0|profile",
		Email:     "sipho@example.com",
		FirstName: &firstName,
		Role:      domain.RoleCustomer,
	}
	userRepo.AddUser(user)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, user.ID, domain.RoleCustomer)

	if err := handler.Get(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Email != "sipho@example.com" {
		t.Errorf("Expected email 'sipho@example.com', got %s", response.Email)
	}
	if response.FirstName == nil || *response.FirstName != "Sipho" {
		t.Errorf("Expected first name 'Sipho', got %v", response.FirstName)
	}
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Get(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetProfile_UserNotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), domain.RoleCustomer)

	if err := handler.Get(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	handler, userRepo := newProfileHandlerFixture()

	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: "auth0|update",
		Email:   "update@example.com",
		Role:    domain.RoleCustomer,
	}
	userRepo.AddUser(user)

	reqBody := `{"firstName": "Sipho", "lastName": "Dlamini", "phone": "0821234567"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, user.ID, domain.RoleCustomer)

	if err := handler.Update(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.FirstName == nil || *response.FirstName != "Sipho" {
		t.Errorf("Expected first name 'Sipho', got %v", response.FirstName)
	}
	if response.LastName == nil || *response.LastName != "Dlamini" {
		t.Errorf("Expected last name 'Dlamini', got %v", response.LastName)
	}
	// Email is managed by the identity provider, not the profile form.
	if response.Email != "update@example.com" {
		t.Errorf("Expected email to remain 'update@example.com', got %s", response.Email)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	e := echo.New()
	handler, userRepo := newProfileHandlerFixture()

	firstName := "Sipho"
	lastName := "Dlamini"
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   "auth0|partial",
		Email:     "partial@example.com",
		FirstName: &firstName,
		LastName:  &lastName,
		Role:      domain.RoleCustomer,
	}
	userRepo.AddUser(user)

	reqBody := `{"phone": "0839876543"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, user.ID, domain.RoleCustomer)

	if err := handler.Update(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.FirstName == nil || *response.FirstName != "Sipho" {
		t.Errorf("Expected first name to be unchanged, got %v", response.FirstName)
	}
	if response.Phone == nil || *response.Phone != "0839876543" {
		t.Errorf("Expected phone '0839876543', got %v", response.Phone)
	}
}

func TestMe_Success(t *testing.T) {
	e := echo.New()
	handler, userRepo := newProfileHandlerFixture()

	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: "auth0|me",
		Email:   "me@example.com",
		Role:    domain.RoleAgent,
	}
	userRepo.AddUser(user)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, user.ID, domain.RoleAgent)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Role != domain.RoleAgent {
		t.Errorf("Expected role 'agent', got %s", response.Role)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
