package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(principal float64, rate float64, years int) LoanParameters {
	return LoanParameters{
		Principal:  decimal.NewFromFloat(principal),
		AnnualRate: decimal.NewFromFloat(rate),
		TermYears:  years,
	}
}

func TestMonthlyPayment_StandardBond(t *testing.T) {
	// R900,000 at 11.25% over 20 years, the standard annuity formula.
	payment, err := MonthlyPayment(params(900000, 11.25, 20))
	require.NoError(t, err)
	assert.InDelta(t, 9443.30, payment.InexactFloat64(), 0.02)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	payment, err := MonthlyPayment(params(120000, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, "1000.00", payment.StringFixed(2))
}

func TestMonthlyPayment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		p     LoanParameters
		field string
	}{
		{"zero principal", params(0, 10, 20), "principal"},
		{"negative principal", params(-5, 10, 20), "principal"},
		{"negative rate", params(100000, -1, 20), "annualRate"},
		{"rate at 100", params(100000, 100, 20), "annualRate"},
		{"zero term", params(100000, 10, 0), "termYears"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonthlyPayment(tt.p)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSchedule_Invariants(t *testing.T) {
	cases := []LoanParameters{
		params(900000, 11.25, 20),
		params(1500000, 9.5, 30),
		params(250000, 7.0, 5),
		params(120000, 0, 10),
	}
	tolerance := decimal.NewFromFloat(0.01)

	for _, p := range cases {
		years, err := Schedule(p)
		require.NoError(t, err)

		// Exactly one entry per year of the term.
		require.Len(t, years, p.TermYears)

		prevBalance := p.Principal
		for i, y := range years {
			assert.Equal(t, i+1, y.Year)
			// Balance never increases.
			assert.True(t, y.RemainingBalance.LessThanOrEqual(prevBalance),
				"balance increased in year %d", y.Year)
			prevBalance = y.RemainingBalance
		}

		final := years[len(years)-1]
		assert.True(t, final.RemainingBalance.LessThanOrEqual(tolerance),
			"final balance %s not cleared", final.RemainingBalance)
		assert.True(t, final.CumulativePrincipal.Sub(p.Principal).Abs().LessThanOrEqual(tolerance),
			"cumulative principal %s != principal %s", final.CumulativePrincipal, p.Principal)
	}
}

func TestSchedule_FrontLoadedInterest(t *testing.T) {
	// A typical bond pays more interest than principal in its first year.
	years, err := Schedule(params(900000, 11.25, 20))
	require.NoError(t, err)
	first := years[0]
	assert.True(t, first.InterestPaid.GreaterThan(first.PrincipalPaid),
		"first year interest %s should exceed principal %s", first.InterestPaid, first.PrincipalPaid)
}

func TestSchedule_ZeroRate(t *testing.T) {
	years, err := Schedule(params(120000, 0, 10))
	require.NoError(t, err)
	require.Len(t, years, 10)

	for _, y := range years {
		assert.True(t, y.InterestPaid.IsZero(), "year %d accrued interest at zero rate", y.Year)
		assert.Equal(t, "12000.00", y.PrincipalPaid.StringFixed(2))
	}
	assert.True(t, years[9].RemainingBalance.IsZero())
}

func TestTotalInterest_Positive(t *testing.T) {
	total, err := TotalInterest(params(900000, 11.25, 20))
	require.NoError(t, err)
	// 240 payments of ~9443.30 less the principal.
	assert.InDelta(t, 240*9443.30-900000, total.InexactFloat64(), 50)
}
