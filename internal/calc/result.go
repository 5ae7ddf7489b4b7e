package calc

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind discriminates the calculator result union.
type Kind string

const (
	KindBond          Kind = "bond"
	KindAffordability Kind = "affordability"
	KindDeposit       Kind = "deposit"
	KindAdditional    Kind = "additional"
	KindTransfer      Kind = "transfer"
	KindAmortisation  Kind = "amortisation"
)

// DisplayResult is one labelled line of a calculation result, ready for UI
// or PDF rendering.
type DisplayResult struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Result is the closed union over calculator outcomes. Every variant
// carries only the fields relevant to its kind, so a report template can
// never be handed a result with holes in it.
type Result interface {
	ResultKind() Kind
	DisplayResults() []DisplayResult
}

// BondResult is the outcome of the bond repayment calculator.
type BondResult struct {
	Kind           Kind            `json:"kind"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annualRate"`
	TermYears      int             `json:"termYears"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

func (r BondResult) ResultKind() Kind { return KindBond }

func (r BondResult) DisplayResults() []DisplayResult {
	return []DisplayResult{
		{Label: "Monthly repayment", Value: FormatRand(r.MonthlyPayment), Tooltip: "Fixed installment over the full term"},
		{Label: "Total repayment", Value: FormatRand(r.TotalRepayment)},
		{Label: "Total interest", Value: FormatRand(r.TotalInterest), Tooltip: "Interest paid over the life of the bond"},
	}
}

// AffordabilityResult is the outcome of the affordability calculator.
type AffordabilityResult struct {
	Kind                Kind            `json:"kind"`
	GrossMonthlyIncome  decimal.Decimal `json:"grossMonthlyIncome"`
	DisposableIncome    decimal.Decimal `json:"disposableIncome"`
	MaxMonthlyRepayment decimal.Decimal `json:"maxMonthlyRepayment"`
	MaxLoanAmount       decimal.Decimal `json:"maxLoanAmount"`
	AnnualRate          decimal.Decimal `json:"annualRate"`
	TermYears           int             `json:"termYears"`
}

func (r AffordabilityResult) ResultKind() Kind { return KindAffordability }

func (r AffordabilityResult) DisplayResults() []DisplayResult {
	return []DisplayResult{
		{Label: "Maximum bond amount", Value: FormatRand(r.MaxLoanAmount), Tooltip: "Based on a 30% debt-service ratio"},
		{Label: "Maximum monthly repayment", Value: FormatRand(r.MaxMonthlyRepayment)},
		{Label: "Disposable monthly income", Value: FormatRand(r.DisposableIncome)},
	}
}

// DepositResult is the outcome of the deposit savings calculator.
type DepositResult struct {
	Kind           Kind            `json:"kind"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	InitialSavings decimal.Decimal `json:"initialSavings"`
	MonthlySaving  decimal.Decimal `json:"monthlySaving"`
	AnnualRate     decimal.Decimal `json:"annualRate"`
	MonthsToTarget int             `json:"monthsToTarget"`
}

func (r DepositResult) ResultKind() Kind { return KindDeposit }

func (r DepositResult) DisplayResults() []DisplayResult {
	years := r.MonthsToTarget / 12
	months := r.MonthsToTarget % 12
	spelled := ""
	if years > 0 {
		spelled = pluralize(years, "year")
		if months > 0 {
			spelled += " and "
		}
	}
	if months > 0 || years == 0 {
		spelled += pluralize(months, "month")
	}
	return []DisplayResult{
		{Label: "Time to reach deposit", Value: spelled, Tooltip: "Assumes interest compounds monthly"},
		{Label: "Deposit target", Value: FormatRand(r.TargetAmount)},
		{Label: "Monthly saving", Value: FormatRand(r.MonthlySaving)},
	}
}

// AdditionalResult is the outcome of the additional payment calculator: a
// standard schedule diffed against one with a fixed extra contribution.
type AdditionalResult struct {
	Kind                     Kind            `json:"kind"`
	ExtraMonthly             decimal.Decimal `json:"extraMonthly"`
	StandardMonths           int             `json:"standardMonths"`
	AcceleratedMonths        int             `json:"acceleratedMonths"`
	MonthsSaved              int             `json:"monthsSaved"`
	StandardTotalInterest    decimal.Decimal `json:"standardTotalInterest"`
	AcceleratedTotalInterest decimal.Decimal `json:"acceleratedTotalInterest"`
	InterestSaved            decimal.Decimal `json:"interestSaved"`
}

func (r AdditionalResult) ResultKind() Kind { return KindAdditional }

func (r AdditionalResult) DisplayResults() []DisplayResult {
	return []DisplayResult{
		{Label: "Interest saved", Value: FormatRand(r.InterestSaved), Tooltip: "Compared with paying the standard installment only"},
		{Label: "Term shortened by", Value: pluralize(r.MonthsSaved, "month")},
		{Label: "Bond paid off in", Value: pluralize(r.AcceleratedMonths, "month")},
	}
}

// TransferResult is the outcome of the transfer cost calculator.
type TransferResult struct {
	Kind            Kind            `json:"kind"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
	TransferDuty    decimal.Decimal `json:"transferDuty"`
	ConveyancingFee decimal.Decimal `json:"conveyancingFee"`
	ConveyancingVAT decimal.Decimal `json:"conveyancingVat"`
	DeedsOfficeFee  decimal.Decimal `json:"deedsOfficeFee"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

func (r TransferResult) ResultKind() Kind { return KindTransfer }

func (r TransferResult) DisplayResults() []DisplayResult {
	return []DisplayResult{
		{Label: "Transfer duty", Value: FormatRand(r.TransferDuty), Tooltip: "SARS transfer duty on the purchase price"},
		{Label: "Conveyancing fee", Value: FormatRand(r.ConveyancingFee), Tooltip: "Transferring attorney fee, excluding VAT"},
		{Label: "VAT on conveyancing", Value: FormatRand(r.ConveyancingVAT)},
		{Label: "Deeds office fee", Value: FormatRand(r.DeedsOfficeFee)},
		{Label: "Total transfer cost", Value: FormatRand(r.TotalCost)},
	}
}

// AmortisationResult exposes the full yearly schedule alongside the
// installment, for the schedule table and charts.
type AmortisationResult struct {
	Kind           Kind               `json:"kind"`
	Principal      decimal.Decimal    `json:"principal"`
	AnnualRate     decimal.Decimal    `json:"annualRate"`
	TermYears      int                `json:"termYears"`
	MonthlyPayment decimal.Decimal    `json:"monthlyPayment"`
	Years          []AmortizationYear `json:"years"`
}

func (r AmortisationResult) ResultKind() Kind { return KindAmortisation }

func (r AmortisationResult) DisplayResults() []DisplayResult {
	totalInterest := decimal.Zero
	if len(r.Years) > 0 {
		totalInterest = r.Years[len(r.Years)-1].CumulativeInterest
	}
	return []DisplayResult{
		{Label: "Monthly repayment", Value: FormatRand(r.MonthlyPayment)},
		{Label: "Total interest", Value: FormatRand(totalInterest)},
		{Label: "Term", Value: pluralize(r.TermYears, "year")},
	}
}

func pluralize(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
