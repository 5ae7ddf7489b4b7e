package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/service"
	"github.com/elandref93/WiseBond-sub004/internal/testutil"
)

func newApplicationHandlerFixture() (*ApplicationHandler, *testutil.MockApplicationRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockApplicationRepository()
	publisher := testutil.NewMockEventPublisher()
	return NewApplicationHandler(service.NewApplicationService(repo, publisher)), repo, publisher
}

func seedApplication(repo *testutil.MockApplicationRepository, agentID, customerID uuid.UUID, status domain.ApplicationStatus) *domain.Application {
	app, _ := repo.Create(&domain.Application{
		CustomerID:      customerID,
		AgentID:         agentID,
		PropertyAddress: "12 Protea Road, Midrand",
		PurchasePrice:   decimal.NewFromInt(1_500_000),
		LoanAmount:      decimal.NewFromInt(1_350_000),
		Status:          status,
	})
	return app
}

func TestCreateApplication_Success(t *testing.T) {
	e := echo.New()
	handler, repo, publisher := newApplicationHandlerFixture()
	agentID := uuid.New()
	customerID := uuid.New()

	reqBody := `{"customerId": "` + customerID.String() + `", "propertyAddress": "12 Protea Road, Midrand", "purchasePrice": "R1,500,000", "loanAmount": "1350000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/agent/applications", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, agentID, domain.RoleAgent)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.Status != domain.StatusSubmitted {
		t.Errorf("Expected new application in submitted state, got %s", created.Status)
	}
	if created.AgentID != agentID {
		t.Errorf("Expected agent %s, got %s", agentID, created.AgentID)
	}
	if !created.LoanAmount.Equal(decimal.NewFromInt(1_350_000)) {
		t.Errorf("Expected loan amount 1350000, got %s", created.LoanAmount)
	}
	if len(repo.Applications) != 1 {
		t.Errorf("Expected 1 stored application, got %d", len(repo.Applications))
	}
	if len(publisher.Published()) != 1 {
		t.Errorf("Expected a created event for the agent dashboard")
	}
}

func TestCreateApplication_InvalidCustomerID(t *testing.T) {
	e := echo.New()
	handler, _, _ := newApplicationHandlerFixture()

	reqBody := `{"customerId": "not-a-uuid", "propertyAddress": "12 Protea Road", "purchasePrice": "1500000", "loanAmount": "1350000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/agent/applications", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), domain.RoleAgent)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateApplication_EmptyAddress(t *testing.T) {
	e := echo.New()
	handler, _, _ := newApplicationHandlerFixture()

	reqBody := `{"customerId": "` + uuid.New().String() + `", "propertyAddress": "  ", "purchasePrice": "1500000", "loanAmount": "1350000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/agent/applications", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), domain.RoleAgent)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateApplication_StatusTransition(t *testing.T) {
	e := echo.New()
	handler, repo, publisher := newApplicationHandlerFixture()
	agentID := uuid.New()
	app := seedApplication(repo, agentID, uuid.New(), domain.StatusSubmitted)

	reqBody := `{"status": "docs_pending"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/agent/applications/1", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, agentID, domain.RoleAgent)

	if err := handler.Update(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if repo.Applications[app.ID].Status != domain.StatusDocsPending {
		t.Errorf("Expected stored status docs_pending, got %s", repo.Applications[app.ID].Status)
	}
	if len(publisher.Published()) != 1 {
		t.Errorf("Expected a status-changed event")
	}
}

func TestUpdateApplication_IllegalTransition(t *testing.T) {
	e := echo.New()
	handler, repo, publisher := newApplicationHandlerFixture()
	agentID := uuid.New()
	seedApplication(repo, agentID, uuid.New(), domain.StatusDeclined)

	// Declined is terminal
	reqBody := `{"status": "accepted"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/agent/applications/1", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, agentID, domain.RoleAgent)

	if err := handler.Update(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	if len(publisher.Published()) != 0 {
		t.Errorf("Expected no event for a rejected transition")
	}
}

func TestUpdateApplication_UnknownStatus(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newApplicationHandlerFixture()
	agentID := uuid.New()
	seedApplication(repo, agentID, uuid.New(), domain.StatusSubmitted)

	reqBody := `{"status": "approved_maybe"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/agent/applications/1", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, agentID, domain.RoleAgent)

	if err := handler.Update(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetApplication_OtherAgentsApplicationHidden(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newApplicationHandlerFixture()
	seedApplication(repo, uuid.New(), uuid.New(), domain.StatusSubmitted)

	req := httptest.NewRequest(http.MethodGet, "/api/agent/applications/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, uuid.New(), domain.RoleAgent)

	if err := handler.Get(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestListForCustomer_OnlyOwnApplications(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newApplicationHandlerFixture()
	customerID := uuid.New()
	seedApplication(repo, uuid.New(), customerID, domain.StatusSubmitted)
	seedApplication(repo, uuid.New(), uuid.New(), domain.StatusSubmitted)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, customerID, domain.RoleCustomer)

	if err := handler.ListForCustomer(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var apps []*domain.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &apps); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("Expected 1 application, got %d", len(apps))
	}
}
