package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
)

// CalculatorHandler exposes the public calculators. No authentication:
// these power the marketing site widgets.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// CalculationResponse wraps a calculator result with its display lines
type CalculationResponse struct {
	Kind    string               `json:"kind"`
	Result  calc.Result          `json:"result"`
	Display []calc.DisplayResult `json:"display"`
}

// BondRequest represents the bond repayment calculator inputs.
// Amounts accept both plain and formatted values ("900000", "R900,000").
type BondRequest struct {
	Principal  string `json:"principal"`
	AnnualRate string `json:"annualRate"`
	TermYears  int    `json:"termYears"`
}

// AffordabilityRequest represents the affordability calculator inputs
type AffordabilityRequest struct {
	GrossMonthlyIncome string `json:"grossMonthlyIncome"`
	MonthlyExpenses    string `json:"monthlyExpenses"`
	MonthlyDebt        string `json:"monthlyDebt"`
	AnnualRate         string `json:"annualRate"`
	TermYears          int    `json:"termYears"`
}

// DepositRequest represents the deposit savings calculator inputs
type DepositRequest struct {
	TargetAmount   string `json:"targetAmount"`
	InitialSavings string `json:"initialSavings"`
	MonthlySaving  string `json:"monthlySaving"`
	AnnualRate     string `json:"annualRate"`
}

// AdditionalRequest represents the additional payment calculator inputs
type AdditionalRequest struct {
	Principal    string `json:"principal"`
	AnnualRate   string `json:"annualRate"`
	TermYears    int    `json:"termYears"`
	ExtraMonthly string `json:"extraMonthly"`
}

// TransferRequest represents the transfer cost calculator inputs
type TransferRequest struct {
	PurchasePrice string `json:"purchasePrice"`
}

// Bond handles POST /api/calculators/bond
func (h *CalculatorHandler) Bond(c echo.Context) error {
	var req BondRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeBond(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

// Affordability handles POST /api/calculators/affordability
func (h *CalculatorHandler) Affordability(c echo.Context) error {
	var req AffordabilityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeAffordability(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

// Deposit handles POST /api/calculators/deposit
func (h *CalculatorHandler) Deposit(c echo.Context) error {
	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeDeposit(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

// Additional handles POST /api/calculators/additional
func (h *CalculatorHandler) Additional(c echo.Context) error {
	var req AdditionalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeAdditional(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

// Transfer handles POST /api/calculators/transfer
func (h *CalculatorHandler) Transfer(c echo.Context) error {
	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeTransfer(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

// Amortisation handles POST /api/calculators/amortisation
func (h *CalculatorHandler) Amortisation(c echo.Context) error {
	var req BondRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	result, _, err := computeAmortisation(req)
	if err != nil {
		return calculationError(c, err)
	}
	return respondResult(c, result)
}

func respondResult(c echo.Context, result calc.Result) error {
	return c.JSON(http.StatusOK, CalculationResponse{
		Kind:    string(result.ResultKind()),
		Result:  result,
		Display: result.DisplayResults(),
	})
}

// calculationError maps calc validation failures to 400 field errors
func calculationError(c echo.Context, err error) error {
	var ve *calc.ValidationError
	if errors.As(err, &ve) {
		return NewValidationError(c, "Invalid calculator input", []ValidationError{
			{Field: ve.Field, Message: ve.Message},
		})
	}
	return NewInternalError(c, "Calculation failed")
}

// Compute helpers shared with the saved-calculation and report endpoints.
// Each returns the result plus labelled input lines for PDF rendering.

func computeBond(req BondRequest) (calc.Result, []calc.DisplayResult, error) {
	principal, err := parseMoney("principal", req.Principal)
	if err != nil {
		return nil, nil, err
	}
	rate, err := parseRate(req.AnnualRate)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Bond(calc.BondInput{Principal: principal, AnnualRate: rate, TermYears: req.TermYears})
	if err != nil {
		return nil, nil, err
	}
	return result, loanInputLines(principal, rate, req.TermYears), nil
}

func computeAffordability(req AffordabilityRequest) (calc.Result, []calc.DisplayResult, error) {
	gross, err := parseMoney("grossMonthlyIncome", req.GrossMonthlyIncome)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := parseMoney("monthlyExpenses", req.MonthlyExpenses)
	if err != nil {
		return nil, nil, err
	}
	debt, err := parseMoney("monthlyDebt", req.MonthlyDebt)
	if err != nil {
		return nil, nil, err
	}
	rate, err := parseRate(req.AnnualRate)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Affordability(calc.AffordabilityInput{
		GrossMonthlyIncome: gross,
		MonthlyExpenses:    expenses,
		MonthlyDebt:        debt,
		AnnualRate:         rate,
		TermYears:          req.TermYears,
	})
	if err != nil {
		return nil, nil, err
	}
	inputs := []calc.DisplayResult{
		{Label: "Gross monthly income", Value: calc.FormatRand(gross)},
		{Label: "Monthly expenses", Value: calc.FormatRand(expenses)},
		{Label: "Monthly debt repayments", Value: calc.FormatRand(debt)},
		{Label: "Interest rate", Value: ratePercent(rate)},
		{Label: "Term", Value: fmt.Sprintf("%d years", req.TermYears)},
	}
	return result, inputs, nil
}

func computeDeposit(req DepositRequest) (calc.Result, []calc.DisplayResult, error) {
	target, err := parseMoney("targetAmount", req.TargetAmount)
	if err != nil {
		return nil, nil, err
	}
	initial, err := parseMoney("initialSavings", req.InitialSavings)
	if err != nil {
		return nil, nil, err
	}
	saving, err := parseMoney("monthlySaving", req.MonthlySaving)
	if err != nil {
		return nil, nil, err
	}
	rate, err := parseRate(req.AnnualRate)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Deposit(calc.DepositInput{
		TargetAmount:   target,
		InitialSavings: initial,
		MonthlySaving:  saving,
		AnnualRate:     rate,
	})
	if err != nil {
		return nil, nil, err
	}
	inputs := []calc.DisplayResult{
		{Label: "Deposit target", Value: calc.FormatRand(target)},
		{Label: "Current savings", Value: calc.FormatRand(initial)},
		{Label: "Monthly saving", Value: calc.FormatRand(saving)},
		{Label: "Savings interest rate", Value: ratePercent(rate)},
	}
	return result, inputs, nil
}

func computeAdditional(req AdditionalRequest) (calc.Result, []calc.DisplayResult, error) {
	principal, err := parseMoney("principal", req.Principal)
	if err != nil {
		return nil, nil, err
	}
	rate, err := parseRate(req.AnnualRate)
	if err != nil {
		return nil, nil, err
	}
	extra, err := parseMoney("extraMonthly", req.ExtraMonthly)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Additional(calc.AdditionalInput{
		Principal:    principal,
		AnnualRate:   rate,
		TermYears:    req.TermYears,
		ExtraMonthly: extra,
	})
	if err != nil {
		return nil, nil, err
	}
	inputs := append(loanInputLines(principal, rate, req.TermYears),
		calc.DisplayResult{Label: "Extra monthly payment", Value: calc.FormatRand(extra)})
	return result, inputs, nil
}

func computeTransfer(req TransferRequest) (calc.Result, []calc.DisplayResult, error) {
	price, err := parseMoney("purchasePrice", req.PurchasePrice)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Transfer(calc.TransferInput{PurchasePrice: price})
	if err != nil {
		return nil, nil, err
	}
	inputs := []calc.DisplayResult{
		{Label: "Purchase price", Value: calc.FormatRand(price)},
	}
	return result, inputs, nil
}

func computeAmortisation(req BondRequest) (calc.Result, []calc.DisplayResult, error) {
	principal, err := parseMoney("principal", req.Principal)
	if err != nil {
		return nil, nil, err
	}
	rate, err := parseRate(req.AnnualRate)
	if err != nil {
		return nil, nil, err
	}
	result, err := calc.Amortisation(calc.BondInput{Principal: principal, AnnualRate: rate, TermYears: req.TermYears})
	if err != nil {
		return nil, nil, err
	}
	return result, loanInputLines(principal, rate, req.TermYears), nil
}

// computeByKind dispatches raw inputs by calculator kind, for the save and
// report endpoints.
func computeByKind(kind string, inputs json.RawMessage) (calc.Result, []calc.DisplayResult, error) {
	switch kind {
	case string(calc.KindBond):
		var req BondRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeBond(req)
	case string(calc.KindAffordability):
		var req AffordabilityRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeAffordability(req)
	case string(calc.KindDeposit):
		var req DepositRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeDeposit(req)
	case string(calc.KindAdditional):
		var req AdditionalRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeAdditional(req)
	case string(calc.KindTransfer):
		var req TransferRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeTransfer(req)
	case string(calc.KindAmortisation):
		var req BondRequest
		if err := json.Unmarshal(inputs, &req); err != nil {
			return nil, nil, &calc.ValidationError{Field: "inputs", Message: "malformed inputs"}
		}
		return computeAmortisation(req)
	default:
		return nil, nil, &calc.ValidationError{Field: "kind", Message: "unknown calculator kind"}
	}
}

func loanInputLines(principal, rate decimal.Decimal, termYears int) []calc.DisplayResult {
	return []calc.DisplayResult{
		{Label: "Loan amount", Value: calc.FormatRand(principal)},
		{Label: "Interest rate", Value: ratePercent(rate)},
		{Label: "Term", Value: fmt.Sprintf("%d years", termYears)},
	}
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := calc.ParseRand(value)
	if err != nil {
		return decimal.Zero, &calc.ValidationError{Field: field, Message: "not a valid amount"}
	}
	return d, nil
}

func parseRate(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &calc.ValidationError{Field: "annualRate", Message: "not a valid rate"}
	}
	return d, nil
}

func ratePercent(rate decimal.Decimal) string {
	return rate.String() + "%"
}
