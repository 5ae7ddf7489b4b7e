package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// debtServiceRatio is the fraction of gross income banks will commit to a
// bond installment.
var debtServiceRatio = decimal.NewFromFloat(0.30)

// BondInput are the inputs for the bond repayment calculator.
type BondInput struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
	TermYears  int
}

// Bond computes the fixed installment and lifetime totals for a bond.
func Bond(input BondInput) (*BondResult, error) {
	params := LoanParameters{Principal: input.Principal, AnnualRate: input.AnnualRate, TermYears: input.TermYears}
	payment, err := MonthlyPayment(params)
	if err != nil {
		return nil, err
	}
	totalInterest, err := TotalInterest(params)
	if err != nil {
		return nil, err
	}
	return &BondResult{
		Kind:           KindBond,
		Principal:      input.Principal,
		AnnualRate:     input.AnnualRate,
		TermYears:      input.TermYears,
		MonthlyPayment: payment,
		TotalRepayment: input.Principal.Add(totalInterest).Round(2),
		TotalInterest:  totalInterest,
	}, nil
}

// AffordabilityInput are the inputs for the affordability calculator.
type AffordabilityInput struct {
	GrossMonthlyIncome decimal.Decimal
	MonthlyExpenses    decimal.Decimal
	MonthlyDebt        decimal.Decimal
	AnnualRate         decimal.Decimal
	TermYears          int
}

// Affordability derives the maximum bond a buyer qualifies for. The
// installment is capped at 30% of gross income and at disposable income
// (gross minus expenses and existing debt); the bond amount is the present
// value of that installment as an annuity.
func Affordability(input AffordabilityInput) (*AffordabilityResult, error) {
	if input.GrossMonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "grossMonthlyIncome", Message: "must be greater than zero"}
	}
	if input.MonthlyExpenses.IsNegative() {
		return nil, &ValidationError{Field: "monthlyExpenses", Message: "must not be negative"}
	}
	if input.MonthlyDebt.IsNegative() {
		return nil, &ValidationError{Field: "monthlyDebt", Message: "must not be negative"}
	}
	if err := validateRateTerm(input.AnnualRate, input.TermYears); err != nil {
		return nil, err
	}

	disposable := input.GrossMonthlyIncome.Sub(input.MonthlyExpenses).Sub(input.MonthlyDebt)
	maxInstallment := input.GrossMonthlyIncome.Mul(debtServiceRatio)
	if disposable.LessThan(maxInstallment) {
		maxInstallment = disposable
	}

	result := &AffordabilityResult{
		Kind:               KindAffordability,
		GrossMonthlyIncome: input.GrossMonthlyIncome,
		DisposableIncome:   disposable.Round(2),
		AnnualRate:         input.AnnualRate,
		TermYears:          input.TermYears,
	}

	// Over-committed buyers get a zero qualification, not an error.
	if maxInstallment.LessThanOrEqual(decimal.Zero) {
		result.MaxMonthlyRepayment = decimal.Zero
		result.MaxLoanAmount = decimal.Zero
		return result, nil
	}

	result.MaxMonthlyRepayment = maxInstallment.Round(2)
	result.MaxLoanAmount = presentValue(maxInstallment, input.AnnualRate, input.TermYears)
	return result, nil
}

// presentValue is the annuity present value P = M*(1-(1+r)^-n)/r, the
// inverse of the installment formula. Zero rate degenerates to M*n.
func presentValue(installment, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	n := termYears * 12
	if annualRate.IsZero() {
		return installment.Mul(decimal.NewFromInt(int64(n))).Round(2)
	}
	monthlyRate := annualRate.InexactFloat64() / 100.0 / 12.0
	pv := installment.InexactFloat64() * (1 - math.Pow(1+monthlyRate, -float64(n))) / monthlyRate
	return decimal.NewFromFloat(pv).Round(2)
}

// DepositInput are the inputs for the deposit savings calculator.
type DepositInput struct {
	TargetAmount   decimal.Decimal
	InitialSavings decimal.Decimal
	MonthlySaving  decimal.Decimal
	AnnualRate     decimal.Decimal
}

// Deposit projects how many months of saving it takes to reach a deposit
// target, compounding interest monthly. Zero interest degenerates to a
// straight division.
func Deposit(input DepositInput) (*DepositResult, error) {
	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "targetAmount", Message: "must be greater than zero"}
	}
	if input.InitialSavings.IsNegative() {
		return nil, &ValidationError{Field: "initialSavings", Message: "must not be negative"}
	}
	if input.MonthlySaving.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "monthlySaving", Message: "must be greater than zero"}
	}
	if input.AnnualRate.IsNegative() || input.AnnualRate.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, &ValidationError{Field: "annualRate", Message: "must be between 0 and 100"}
	}

	result := &DepositResult{
		Kind:           KindDeposit,
		TargetAmount:   input.TargetAmount,
		InitialSavings: input.InitialSavings,
		MonthlySaving:  input.MonthlySaving,
		AnnualRate:     input.AnnualRate,
	}

	if input.InitialSavings.GreaterThanOrEqual(input.TargetAmount) {
		result.MonthsToTarget = 0
		return result, nil
	}

	if input.AnnualRate.IsZero() {
		shortfall := input.TargetAmount.Sub(input.InitialSavings)
		months := shortfall.Div(input.MonthlySaving).Ceil()
		result.MonthsToTarget = int(months.IntPart())
		return result, nil
	}

	// Future value of the annuity plus the compounded opening balance:
	// T = P0*(1+r)^m + S*((1+r)^m - 1)/r, solved for m.
	r := input.AnnualRate.InexactFloat64() / 100.0 / 12.0
	target := input.TargetAmount.InexactFloat64()
	opening := input.InitialSavings.InexactFloat64()
	saving := input.MonthlySaving.InexactFloat64()

	months := math.Log((target*r+saving)/(opening*r+saving)) / math.Log(1+r)
	result.MonthsToTarget = int(math.Ceil(months))
	return result, nil
}

// AdditionalInput are the inputs for the additional payment calculator.
type AdditionalInput struct {
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TermYears    int
	ExtraMonthly decimal.Decimal
}

// Additional compares the standard amortization against one with a fixed
// extra monthly contribution, reporting interest saved and months cut off
// the term.
func Additional(input AdditionalInput) (*AdditionalResult, error) {
	params := LoanParameters{Principal: input.Principal, AnnualRate: input.AnnualRate, TermYears: input.TermYears}
	payment, err := MonthlyPayment(params)
	if err != nil {
		return nil, err
	}
	if input.ExtraMonthly.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "extraMonthly", Message: "must be greater than zero"}
	}

	monthlyRate := monthlyRateDecimal(input.AnnualRate)
	standardMonths, standardInterest := payoff(input.Principal, monthlyRate, payment)
	acceleratedMonths, acceleratedInterest := payoff(input.Principal, monthlyRate, payment.Add(input.ExtraMonthly))

	return &AdditionalResult{
		Kind:                     KindAdditional,
		ExtraMonthly:             input.ExtraMonthly,
		StandardMonths:           standardMonths,
		AcceleratedMonths:        acceleratedMonths,
		MonthsSaved:              standardMonths - acceleratedMonths,
		StandardTotalInterest:    standardInterest.Round(2),
		AcceleratedTotalInterest: acceleratedInterest.Round(2),
		InterestSaved:            standardInterest.Sub(acceleratedInterest).Round(2),
	}, nil
}

// Amortisation runs the schedule generator and packages it with the
// installment for table and chart rendering.
func Amortisation(input BondInput) (*AmortisationResult, error) {
	params := LoanParameters{Principal: input.Principal, AnnualRate: input.AnnualRate, TermYears: input.TermYears}
	payment, err := MonthlyPayment(params)
	if err != nil {
		return nil, err
	}
	years, err := Schedule(params)
	if err != nil {
		return nil, err
	}
	return &AmortisationResult{
		Kind:           KindAmortisation,
		Principal:      input.Principal,
		AnnualRate:     input.AnnualRate,
		TermYears:      input.TermYears,
		MonthlyPayment: payment,
		Years:          years,
	}, nil
}

func validateRateTerm(annualRate decimal.Decimal, termYears int) error {
	if annualRate.IsNegative() || annualRate.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return &ValidationError{Field: "annualRate", Message: "must be between 0 and 100"}
	}
	if termYears <= 0 {
		return &ValidationError{Field: "termYears", Message: "must be at least 1"}
	}
	return nil
}
