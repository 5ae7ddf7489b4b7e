package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// ValidationError describes a rejected input field. It is the only error
// type the calculators return for expected input problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// LoanParameters are the inputs to the amortization engine. Immutable once
// validated.
type LoanParameters struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal // percent, e.g. 11.25
	TermYears  int
}

// Validate checks the engine invariants: principal > 0, 0 <= rate < 100,
// term > 0. A zero rate is legal and handled by the zero-interest special
// case rather than rejected.
func (p LoanParameters) Validate() error {
	if p.Principal.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "principal", Message: "must be greater than zero"}
	}
	if p.AnnualRate.IsNegative() {
		return &ValidationError{Field: "annualRate", Message: "must not be negative"}
	}
	if p.AnnualRate.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return &ValidationError{Field: "annualRate", Message: "must be less than 100"}
	}
	if p.TermYears <= 0 {
		return &ValidationError{Field: "termYears", Message: "must be at least 1"}
	}
	return nil
}

// AmortizationYear is one year of a repayment schedule. RemainingBalance is
// monotonically non-increasing across years and reaches zero in the final
// year.
type AmortizationYear struct {
	Year                int             `json:"year"`
	PrincipalPaid       decimal.Decimal `json:"principalPaid"`
	InterestPaid        decimal.Decimal `json:"interestPaid"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
	RemainingBalance    decimal.Decimal `json:"remainingBalance"`
}

// balanceEpsilon absorbs cent-level floating drift when deciding whether a
// balance has been fully repaid.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// MonthlyPayment computes the fixed monthly installment using the standard
// annuity formula M = P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate.
// A zero rate degenerates to an even split M = P/n.
func MonthlyPayment(params LoanParameters) (decimal.Decimal, error) {
	if err := params.Validate(); err != nil {
		return decimal.Zero, err
	}
	n := params.TermYears * 12
	if params.AnnualRate.IsZero() {
		return params.Principal.Div(decimal.NewFromInt(int64(n))).Round(2), nil
	}

	// The power term is computed in float64; monetary arithmetic stays in
	// decimal.
	monthlyRate := params.AnnualRate.InexactFloat64() / 100.0 / 12.0
	factor := math.Pow(1+monthlyRate, float64(n))
	payment := params.Principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2), nil
}

// Schedule generates the year-by-year amortization schedule. It iterates
// month by month, accumulating interest (balance*r) and principal
// (payment-interest), and rolls the months up into yearly buckets. The
// result always has exactly TermYears entries and the final balance is
// clamped to zero once it drops below a cent.
func Schedule(params LoanParameters) ([]AmortizationYear, error) {
	payment, err := MonthlyPayment(params)
	if err != nil {
		return nil, err
	}

	monthlyRate := monthlyRateDecimal(params.AnnualRate)
	n := params.TermYears * 12
	balance := params.Principal

	years := make([]AmortizationYear, 0, params.TermYears)
	cumulativePrincipal := decimal.Zero
	cumulativeInterest := decimal.Zero

	yearPrincipal := decimal.Zero
	yearInterest := decimal.Zero

	for month := 1; month <= n; month++ {
		interest := balance.Mul(monthlyRate)
		principalPart := payment.Sub(interest)

		// Final month, or rounding left the last installment larger than
		// what is owed: pay off exactly what remains.
		if month == n || principalPart.GreaterThanOrEqual(balance) {
			principalPart = balance
		}

		balance = balance.Sub(principalPart)
		if balance.LessThan(balanceEpsilon) {
			balance = decimal.Zero
		}

		yearPrincipal = yearPrincipal.Add(principalPart)
		yearInterest = yearInterest.Add(interest)

		if month%12 == 0 {
			cumulativePrincipal = cumulativePrincipal.Add(yearPrincipal)
			cumulativeInterest = cumulativeInterest.Add(yearInterest)
			years = append(years, AmortizationYear{
				Year:                month / 12,
				PrincipalPaid:       yearPrincipal.Round(2),
				InterestPaid:        yearInterest.Round(2),
				CumulativePrincipal: cumulativePrincipal.Round(2),
				CumulativeInterest:  cumulativeInterest.Round(2),
				RemainingBalance:    balance.Round(2),
			})
			yearPrincipal = decimal.Zero
			yearInterest = decimal.Zero
		}
	}

	return years, nil
}

// TotalInterest sums interest across a full standard schedule.
func TotalInterest(params LoanParameters) (decimal.Decimal, error) {
	years, err := Schedule(params)
	if err != nil {
		return decimal.Zero, err
	}
	if len(years) == 0 {
		return decimal.Zero, nil
	}
	return years[len(years)-1].CumulativeInterest, nil
}

// payoff runs a month-by-month repayment at the given fixed installment and
// reports how many months it takes to clear the balance and the interest
// paid along the way. The installment must exceed the first month's
// interest or the balance never shrinks; callers validate that.
func payoff(principal, monthlyRate, installment decimal.Decimal) (months int, totalInterest decimal.Decimal) {
	// Hard ceiling of 100 years guarantees termination even if a caller
	// slips through with an installment below the interest accrual.
	const maxMonths = 1200

	balance := principal
	for balance.GreaterThan(balanceEpsilon) && months < maxMonths {
		interest := balance.Mul(monthlyRate)
		principalPart := installment.Sub(interest)
		if principalPart.GreaterThanOrEqual(balance) {
			principalPart = balance
		}
		balance = balance.Sub(principalPart)
		totalInterest = totalInterest.Add(interest)
		months++
	}
	return months, totalInterest
}

func monthlyRateDecimal(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}
