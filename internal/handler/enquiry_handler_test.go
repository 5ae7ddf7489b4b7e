package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/service"
	"github.com/elandref93/WiseBond-sub004/internal/testutil"
)

func newEnquiryHandler() (*EnquiryHandler, *testutil.MockEnquiryRepository, *testutil.MockMailSender) {
	repo := testutil.NewMockEnquiryRepository()
	sender := testutil.NewMockMailSender()
	return NewEnquiryHandler(service.NewEnquiryService(repo, sender, "consultants@wisebond.co.za")), repo, sender
}

func TestSubmitEnquiry_Success(t *testing.T) {
	e := echo.New()
	handler, repo, sender := newEnquiryHandler()

	reqBody := `{"name": "Thandi Nkosi", "email": "thandi@example.com", "phone": "0821234567", "message": "Please call me about a bond for a house in Midrand."}`
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Enquiry
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.ID == 0 {
		t.Errorf("Expected an assigned enquiry ID")
	}
	if len(repo.Enquiries) != 1 {
		t.Errorf("Expected 1 stored enquiry, got %d", len(repo.Enquiries))
	}

	// The consultants inbox gets a notification copy.
	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 notification email, got %d", len(sent))
	}
	if sent[0].To[0] != "consultants@wisebond.co.za" {
		t.Errorf("Expected notification to consultants inbox, got %v", sent[0].To)
	}
}

func TestSubmitEnquiry_MissingName(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newEnquiryHandler()

	reqBody := `{"name": "  ", "email": "thandi@example.com", "message": "Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(repo.Enquiries) != 0 {
		t.Errorf("Expected nothing stored for a rejected enquiry")
	}
}

func TestSubmitEnquiry_InvalidEmail(t *testing.T) {
	e := echo.New()
	handler, _, _ := newEnquiryHandler()

	reqBody := `{"name": "Thandi", "email": "not-an-email", "message": "Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "email" {
		t.Errorf("Expected a field error on 'email', got %v", problem.Errors)
	}
}

func TestSubmitEnquiry_MessageTooLong(t *testing.T) {
	e := echo.New()
	handler, _, _ := newEnquiryHandler()

	reqBody := `{"name": "Thandi", "email": "thandi@example.com", "message": "` + strings.Repeat("a", 4001) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestListEnquiries_Success(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newEnquiryHandler()

	for i := 0; i < 3; i++ {
		repo.Create(&domain.Enquiry{
			Name:    "Customer",
			Email:   "c@example.com",
			Message: "Hello",
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/agent/enquiries", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var enquiries []*domain.Enquiry
	if err := json.Unmarshal(rec.Body.Bytes(), &enquiries); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(enquiries) != 3 {
		t.Errorf("Expected 3 enquiries, got %d", len(enquiries))
	}
}

func TestListEnquiries_InvalidLimit(t *testing.T) {
	e := echo.New()
	handler, _, _ := newEnquiryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/agent/enquiries?limit=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
