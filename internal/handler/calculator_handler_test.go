package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
)

// calcResponse mirrors CalculationResponse with the result left raw, since
// the union type cannot be unmarshalled directly.
type calcResponse struct {
	Kind    string               `json:"kind"`
	Result  json.RawMessage      `json:"result"`
	Display []calc.DisplayResult `json:"display"`
}

func postCalculator(t *testing.T, handler func(echo.Context) error, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/calculators/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler(c)
}

func displayValue(t *testing.T, display []calc.DisplayResult, label string) string {
	t.Helper()
	for _, line := range display {
		if line.Label == label {
			return line.Value
		}
	}
	t.Fatalf("Display line %q not found in %v", label, display)
	return ""
}

func TestBond_KnownValues(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "900000", "annualRate": "11.25", "termYears": 20}`
	rec, err := postCalculator(t, handler.Bond, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if resp.Kind != string(calc.KindBond) {
		t.Errorf("Expected kind 'bond', got %s", resp.Kind)
	}
	if got := displayValue(t, resp.Display, "Monthly repayment"); got != "R9,443.30" {
		t.Errorf("Expected monthly repayment 'R9,443.30', got %s", got)
	}
}

func TestBond_FormattedAmountAccepted(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "R900,000", "annualRate": "11.25", "termYears": 20}`
	rec, err := postCalculator(t, handler.Bond, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if got := displayValue(t, resp.Display, "Monthly repayment"); got != "R9,443.30" {
		t.Errorf("Expected monthly repayment 'R9,443.30', got %s", got)
	}
}

func TestBond_InvalidAmount(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "nine hundred thousand", "annualRate": "11.25", "termYears": 20}`
	rec, err := postCalculator(t, handler.Bond, body)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected error type %s, got %s", ErrorTypeValidation, problem.Type)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "principal" {
		t.Errorf("Expected a field error on 'principal', got %v", problem.Errors)
	}
}

func TestBond_ZeroTermRejected(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "900000", "annualRate": "11.25", "termYears": 0}`
	rec, err := postCalculator(t, handler.Bond, body)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAffordability_Success(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"grossMonthlyIncome": "45000", "monthlyExpenses": "15000", "monthlyDebt": "5000", "annualRate": "11.25", "termYears": 20}`
	rec, err := postCalculator(t, handler.Affordability, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Kind != string(calc.KindAffordability) {
		t.Errorf("Expected kind 'affordability', got %s", resp.Kind)
	}
	// 30% of gross = 13500 affordable installment
	if got := displayValue(t, resp.Display, "Maximum monthly repayment"); got != "R13,500.00" {
		t.Errorf("Expected max repayment 'R13,500.00', got %s", got)
	}
}

func TestDeposit_Success(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"targetAmount": "100000", "initialSavings": "20000", "monthlySaving": "5000", "annualRate": "6"}`
	rec, err := postCalculator(t, handler.Deposit, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Kind != string(calc.KindDeposit) {
		t.Errorf("Expected kind 'deposit', got %s", resp.Kind)
	}
}

func TestAdditional_Success(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "900000", "annualRate": "11.25", "termYears": 20, "extraMonthly": "1000"}`
	rec, err := postCalculator(t, handler.Additional, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Kind != string(calc.KindAdditional) {
		t.Errorf("Expected kind 'additional', got %s", resp.Kind)
	}
}

func TestTransfer_BelowDutyThreshold(t *testing.T) {
	handler := NewCalculatorHandler()

	// Below R1,100,000 no transfer duty is payable
	body := `{"purchasePrice": "1000000"}`
	rec, err := postCalculator(t, handler.Transfer, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if got := displayValue(t, resp.Display, "Transfer duty"); got != "R0.00" {
		t.Errorf("Expected zero transfer duty below the threshold, got %s", got)
	}
}

func TestAmortisation_Success(t *testing.T) {
	handler := NewCalculatorHandler()

	body := `{"principal": "900000", "annualRate": "11.25", "termYears": 20}`
	rec, err := postCalculator(t, handler.Amortisation, body)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Kind != string(calc.KindAmortisation) {
		t.Errorf("Expected kind 'amortisation', got %s", resp.Kind)
	}

	var result struct {
		Years []struct {
			Year int `json:"year"`
		} `json:"years"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if len(result.Years) != 20 {
		t.Errorf("Expected 20 schedule years, got %d", len(result.Years))
	}
}
