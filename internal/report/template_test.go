package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
)

func TestBuildHTML(t *testing.T) {
	html, err := BuildHTML(Data{
		Title:       "Bond Repayment Report",
		Subtitle:    "Bond repayment estimate",
		GeneratedAt: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Inputs: []calc.DisplayResult{
			{Label: "Loan amount", Value: "R900,000.00"},
		},
		Results: []calc.DisplayResult{
			{Label: "Monthly repayment", Value: "R9,443.30"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Bond Repayment Report")
	assert.Contains(t, html, "R900,000.00")
	assert.Contains(t, html, "R9,443.30")
	assert.Contains(t, html, "Generated 15 June 2025")
	// No template actions may survive into the output.
	assert.NotContains(t, html, "{{")
}

func TestBuild_Bond_EmbedsPieChart(t *testing.T) {
	result, err := calc.Bond(calc.BondInput{
		Principal:  decimal.NewFromInt(900000),
		AnnualRate: decimal.NewFromFloat(11.25),
		TermYears:  20,
	})
	require.NoError(t, err)

	html, err := Build("Bond Repayment Report", result, nil, time.Now())
	require.NoError(t, err)

	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, "Total repayment split")
	// The SVG must land unescaped for the headless renderer.
	assert.NotContains(t, html, "&lt;svg")
}

func TestBuild_Amortisation_EmbedsScheduleAndCharts(t *testing.T) {
	result, err := calc.Amortisation(calc.BondInput{
		Principal:  decimal.NewFromInt(900000),
		AnnualRate: decimal.NewFromFloat(11.25),
		TermYears:  20,
	})
	require.NoError(t, err)

	html, err := Build("Amortisation Report", result, nil, time.Now())
	require.NoError(t, err)

	assert.Contains(t, html, "Year-by-year breakdown")
	assert.Contains(t, html, "Outstanding balance")
	assert.Contains(t, html, "Principal vs interest per year")
	// One row per year of the term.
	assert.Equal(t, 20+1, strings.Count(html, "<tr><t")-len(result.DisplayResults()))
}
