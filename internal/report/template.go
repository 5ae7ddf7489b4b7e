package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/elandref93/WiseBond-sub004/internal/calc"
	"github.com/elandref93/WiseBond-sub004/internal/chart"
)

// Data is everything the report template needs. Charts are pre-rendered
// SVG fragments; they are injected as trusted markup because the chart
// package escapes all user-provided text itself.
type Data struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Inputs      []calc.DisplayResult
	Results     []calc.DisplayResult
	Schedule    []ScheduleRow
	Charts      []template.HTML
}

// ScheduleRow is one pre-formatted year of the amortization table.
type ScheduleRow struct {
	Year      int
	Principal string
	Interest  string
	Balance   string
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #111827; margin: 40px; }
h1 { font-size: 22px; margin-bottom: 2px; }
.subtitle { color: #6b7280; font-size: 13px; margin-bottom: 24px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
th, td { text-align: left; padding: 6px 10px; font-size: 12px; border-bottom: 1px solid #e5e7eb; }
th { background: #f3f4f6; }
td.amount, th.amount { text-align: right; }
.section { font-size: 15px; font-weight: bold; margin: 20px 0 8px; }
.chart { margin: 12px 0; }
.footer { color: #9ca3af; font-size: 10px; margin-top: 32px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="subtitle">{{.Subtitle}} &middot; Generated {{.GeneratedAt.Format "2 January 2006"}}</div>

{{if .Inputs}}<div class="section">Your details</div>
<table>
{{range .Inputs}}<tr><td>{{.Label}}</td><td class="amount">{{.Value}}</td></tr>
{{end}}</table>{{end}}

<div class="section">Results</div>
<table>
{{range .Results}}<tr><td>{{.Label}}</td><td class="amount">{{.Value}}</td></tr>
{{end}}</table>

{{range .Charts}}<div class="chart">{{.}}</div>
{{end}}

{{if .Schedule}}<div class="section">Year-by-year breakdown</div>
<table>
<tr><th>Year</th><th class="amount">Principal paid</th><th class="amount">Interest paid</th><th class="amount">Balance</th></tr>
{{range .Schedule}}<tr><td>{{.Year}}</td><td class="amount">{{.Principal}}</td><td class="amount">{{.Interest}}</td><td class="amount">{{.Balance}}</td></tr>
{{end}}</table>{{end}}

<div class="footer">This report is an estimate and does not constitute a loan offer. Figures exclude bank initiation and bond registration fees unless shown.</div>
</body>
</html>`

var reportTemplate = template.Must(template.New("report").Parse(pageTemplate))

// BuildHTML executes the report template. Template errors are returned,
// never swallowed, so a report with missing data cannot ship with raw
// placeholders.
func BuildHTML(data Data) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return b.String(), nil
}

// Build assembles the full report for a calculation result, rendering the
// charts that suit its kind. Inputs are the caller's echo of what the user
// entered, already formatted for display.
func Build(title string, result calc.Result, inputs []calc.DisplayResult, generatedAt time.Time) (string, error) {
	data := Data{
		Title:       title,
		Subtitle:    subtitleFor(result.ResultKind()),
		GeneratedAt: generatedAt,
		Inputs:      inputs,
		Results:     result.DisplayResults(),
	}

	if r, ok := result.(*calc.AmortisationResult); ok {
		data.Schedule = scheduleRows(r.Years)
		data.Charts = scheduleCharts(r.Years)
	}
	if r, ok := result.(*calc.BondResult); ok {
		data.Charts = []template.HTML{template.HTML(chart.Pie{
			Title: "Total repayment split",
			Slices: []chart.Slice{
				{Label: "Principal", Value: r.Principal.InexactFloat64()},
				{Label: "Interest", Value: r.TotalInterest.InexactFloat64()},
			},
		}.Render())}
	}

	return BuildHTML(data)
}

func scheduleRows(years []calc.AmortizationYear) []ScheduleRow {
	rows := make([]ScheduleRow, len(years))
	for i, y := range years {
		rows[i] = ScheduleRow{
			Year:      y.Year,
			Principal: calc.FormatRand(y.PrincipalPaid),
			Interest:  calc.FormatRand(y.InterestPaid),
			Balance:   calc.FormatRand(y.RemainingBalance),
		}
	}
	return rows
}

func scheduleCharts(years []calc.AmortizationYear) []template.HTML {
	labels := make([]string, len(years))
	balances := make([]float64, len(years))
	principal := make([]float64, len(years))
	interest := make([]float64, len(years))
	for i, y := range years {
		labels[i] = fmt.Sprintf("%d", y.Year)
		balances[i] = y.RemainingBalance.InexactFloat64()
		principal[i] = y.PrincipalPaid.InexactFloat64()
		interest[i] = y.InterestPaid.InexactFloat64()
	}

	line := chart.Line{
		Title:   "Outstanding balance",
		XLabels: labels,
		Series:  []chart.Series{{Label: "Balance", Values: balances}},
	}
	bars := chart.Bar{
		Title:   "Principal vs interest per year",
		XLabels: labels,
		Series: []chart.Series{
			{Label: "Principal", Values: principal},
			{Label: "Interest", Values: interest},
		},
	}
	return []template.HTML{
		template.HTML(line.Render()),
		template.HTML(bars.Render()),
	}
}

func subtitleFor(kind calc.Kind) string {
	switch kind {
	case calc.KindBond:
		return "Bond repayment estimate"
	case calc.KindAffordability:
		return "Affordability estimate"
	case calc.KindDeposit:
		return "Deposit savings plan"
	case calc.KindAdditional:
		return "Additional payment comparison"
	case calc.KindTransfer:
		return "Property transfer cost estimate"
	case calc.KindAmortisation:
		return "Amortisation schedule"
	default:
		return "Calculation report"
	}
}
