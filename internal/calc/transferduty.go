package calc

import (
	"github.com/shopspring/decimal"
)

// dutyBracket is one band of the SARS transfer duty schedule. Lower is the
// exclusive lower bound: a price exactly on a threshold falls in the band
// below, matching the schedule's "so much of the value as does not exceed"
// wording.
type dutyBracket struct {
	Lower decimal.Decimal // exclusive
	Base  decimal.Decimal // duty accrued by the brackets below
	Rate  decimal.Decimal // marginal rate on the amount above Lower
}

// Transfer duty schedule effective 1 March 2023 (2024/25 tax year,
// unchanged).
var dutyBrackets = []dutyBracket{
	{Lower: decimal.NewFromInt(1_100_000), Base: decimal.Zero, Rate: decimal.NewFromFloat(0.03)},
	{Lower: decimal.NewFromInt(1_512_500), Base: decimal.NewFromInt(12_375), Rate: decimal.NewFromFloat(0.06)},
	{Lower: decimal.NewFromInt(2_117_500), Base: decimal.NewFromInt(48_675), Rate: decimal.NewFromFloat(0.08)},
	{Lower: decimal.NewFromInt(2_722_500), Base: decimal.NewFromInt(97_075), Rate: decimal.NewFromFloat(0.11)},
	{Lower: decimal.NewFromInt(12_100_000), Base: decimal.NewFromInt(1_128_600), Rate: decimal.NewFromFloat(0.13)},
}

// feeBracket maps a price ceiling (inclusive) to a flat fee.
type feeBracket struct {
	UpTo decimal.Decimal
	Fee  decimal.Decimal
}

// Deeds office registration fees, bracketed by purchase price.
var deedsOfficeFees = []feeBracket{
	{UpTo: decimal.NewFromInt(600_000), Fee: decimal.NewFromInt(495)},
	{UpTo: decimal.NewFromInt(800_000), Fee: decimal.NewFromInt(703)},
	{UpTo: decimal.NewFromInt(1_000_000), Fee: decimal.NewFromInt(827)},
	{UpTo: decimal.NewFromInt(2_000_000), Fee: decimal.NewFromInt(1_134)},
	{UpTo: decimal.NewFromInt(4_000_000), Fee: decimal.NewFromInt(1_571)},
	{UpTo: decimal.NewFromInt(6_000_000), Fee: decimal.NewFromInt(1_939)},
	{UpTo: decimal.NewFromInt(8_000_000), Fee: decimal.NewFromInt(2_306)},
	{UpTo: decimal.NewFromInt(10_000_000), Fee: decimal.NewFromInt(2_673)},
	{UpTo: decimal.NewFromInt(15_000_000), Fee: decimal.NewFromInt(3_144)},
	{UpTo: decimal.NewFromInt(20_000_000), Fee: decimal.NewFromInt(3_615)},
	{UpTo: decimal.NewFromInt(30_000_000), Fee: decimal.NewFromInt(4_558)},
}

var deedsOfficeFeeMax = decimal.NewFromInt(9_108)

// Conveyancing (transferring attorney) guideline tariff: a base fee per
// band plus a marginal amount per R100,000 or part thereof above the band
// floor.
type conveyancingBracket struct {
	Lower       decimal.Decimal // exclusive
	Base        decimal.Decimal
	PerHundredK decimal.Decimal
}

var conveyancingBrackets = []conveyancingBracket{
	{Lower: decimal.Zero, Base: decimal.NewFromInt(5_500), PerHundredK: decimal.Zero},
	{Lower: decimal.NewFromInt(500_000), Base: decimal.NewFromInt(11_250), PerHundredK: decimal.NewFromInt(1_650)},
	{Lower: decimal.NewFromInt(1_000_000), Base: decimal.NewFromInt(19_500), PerHundredK: decimal.NewFromInt(825)},
	{Lower: decimal.NewFromInt(5_000_000), Base: decimal.NewFromInt(52_500), PerHundredK: decimal.NewFromInt(413)},
}

// vatRate is the South African VAT rate applied to attorney fees.
var vatRate = decimal.NewFromFloat(0.15)

var hundredThousand = decimal.NewFromInt(100_000)

// TransferDuty computes the SARS transfer duty on a purchase price using
// the marginal bracket schedule.
func TransferDuty(price decimal.Decimal) decimal.Decimal {
	duty := decimal.Zero
	for _, b := range dutyBrackets {
		if price.GreaterThan(b.Lower) {
			duty = b.Base.Add(price.Sub(b.Lower).Mul(b.Rate))
		}
	}
	return duty.Round(2)
}

// DeedsOfficeFee looks up the flat deeds office registration fee for a
// purchase price.
func DeedsOfficeFee(price decimal.Decimal) decimal.Decimal {
	for _, b := range deedsOfficeFees {
		if price.LessThanOrEqual(b.UpTo) {
			return b.Fee
		}
	}
	return deedsOfficeFeeMax
}

// ConveyancingFee computes the guideline transferring attorney fee,
// excluding VAT.
func ConveyancingFee(price decimal.Decimal) decimal.Decimal {
	bracket := conveyancingBrackets[0]
	for _, b := range conveyancingBrackets {
		if price.GreaterThan(b.Lower) {
			bracket = b
		}
	}
	fee := bracket.Base
	if bracket.PerHundredK.IsPositive() {
		// Per R100,000 or part thereof above the band floor.
		steps := price.Sub(bracket.Lower).Div(hundredThousand).Ceil()
		fee = fee.Add(steps.Mul(bracket.PerHundredK))
	}
	return fee.Round(2)
}

// TransferInput are the inputs for the transfer cost calculator.
type TransferInput struct {
	PurchasePrice decimal.Decimal
}

// Transfer computes the full cost of transferring a property: SARS duty,
// conveyancing fee plus VAT, and the deeds office fee.
func Transfer(input TransferInput) (*TransferResult, error) {
	if input.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "purchasePrice", Message: "must be greater than zero"}
	}

	duty := TransferDuty(input.PurchasePrice)
	conveyancing := ConveyancingFee(input.PurchasePrice)
	vat := conveyancing.Mul(vatRate).Round(2)
	deeds := DeedsOfficeFee(input.PurchasePrice)

	return &TransferResult{
		Kind:            KindTransfer,
		PurchasePrice:   input.PurchasePrice,
		TransferDuty:    duty,
		ConveyancingFee: conveyancing,
		ConveyancingVAT: vat,
		DeedsOfficeFee:  deeds,
		TotalCost:       duty.Add(conveyancing).Add(vat).Add(deeds).Round(2),
	}, nil
}
