// Package chart renders calculation series as self-contained SVG markup.
// The output embeds directly into generated PDF documents, so it must be
// deterministic and must not rely on scripts or external assets.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// Default palette, matching the report template.
var palette = []string{"#1d4ed8", "#059669", "#d97706", "#dc2626", "#7c3aed"}

const (
	marginLeft   = 64.0
	marginRight  = 16.0
	marginTop    = 32.0
	marginBottom = 48.0
	yTickCount   = 5
)

// Series is one named line or bar group.
type Series struct {
	Label  string
	Values []float64
}

// Line describes a line chart: one X label per index, one polyline per
// series.
type Line struct {
	Width   int
	Height  int
	Title   string
	XLabels []string
	Series  []Series
}

// Render produces the complete <svg> element.
func (c Line) Render() string {
	w, h := sized(c.Width, c.Height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom

	maxV := maxValue(c.Series)
	if maxV <= 0 {
		maxV = 1
	}

	var b strings.Builder
	openSVG(&b, w, h)
	writeTitle(&b, w, c.Title)
	writeAxes(&b, w, h, maxV)

	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		color := palette[i%len(palette)]
		b.WriteString(`<path d="`)
		for j, v := range s.Values {
			x := marginLeft + plotW*float64(j)/float64(maxIndex(len(s.Values)))
			y := marginTop + plotH*(1-v/maxV)
			if j == 0 {
				b.WriteString(fmt.Sprintf("M%s %s", coord(x), coord(y)))
			} else {
				b.WriteString(fmt.Sprintf(" L%s %s", coord(x), coord(y)))
			}
		}
		b.WriteString(fmt.Sprintf(`" fill="none" stroke="%s" stroke-width="2"/>`, color))
	}

	writeXLabels(&b, w, h, c.XLabels)
	writeLegend(&b, h, seriesLabels(c.Series))
	b.WriteString("</svg>")
	return b.String()
}

// Bar describes a grouped bar chart: one cluster per X label, one bar per
// series within each cluster.
type Bar struct {
	Width   int
	Height  int
	Title   string
	XLabels []string
	Series  []Series
}

// Render produces the complete <svg> element.
func (c Bar) Render() string {
	w, h := sized(c.Width, c.Height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom

	maxV := maxValue(c.Series)
	if maxV <= 0 {
		maxV = 1
	}

	groups := 0
	for _, s := range c.Series {
		if len(s.Values) > groups {
			groups = len(s.Values)
		}
	}

	var b strings.Builder
	openSVG(&b, w, h)
	writeTitle(&b, w, c.Title)
	writeAxes(&b, w, h, maxV)

	if groups > 0 && len(c.Series) > 0 {
		groupW := plotW / float64(groups)
		barW := groupW * 0.8 / float64(len(c.Series))
		for i, s := range c.Series {
			color := palette[i%len(palette)]
			for j, v := range s.Values {
				if v < 0 {
					v = 0
				}
				barH := plotH * v / maxV
				x := marginLeft + groupW*float64(j) + groupW*0.1 + barW*float64(i)
				y := marginTop + plotH - barH
				b.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
					coord(x), coord(y), coord(barW), coord(barH), color))
			}
		}
	}

	writeXLabels(&b, w, h, c.XLabels)
	writeLegend(&b, h, seriesLabels(c.Series))
	b.WriteString("</svg>")
	return b.String()
}

// Slice is one segment of a pie chart.
type Slice struct {
	Label string
	Value float64
}

// Pie describes a pie chart with a legend to the right.
type Pie struct {
	Width  int
	Height int
	Title  string
	Slices []Slice
}

// Render produces the complete <svg> element.
func (c Pie) Render() string {
	w, h := sized(c.Width, c.Height)

	total := 0.0
	for _, s := range c.Slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	cx := w * 0.35
	cy := marginTop + (h-marginTop)/2
	r := math.Min(cx-16, (h-marginTop)/2-16)

	var b strings.Builder
	openSVG(&b, w, h)
	writeTitle(&b, w, c.Title)

	if total > 0 {
		angle := -math.Pi / 2 // start at 12 o'clock
		for i, s := range c.Slices {
			if s.Value <= 0 {
				continue
			}
			frac := s.Value / total
			color := palette[i%len(palette)]
			if frac >= 0.999999 {
				b.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
					coord(cx), coord(cy), coord(r), color))
				break
			}
			end := angle + frac*2*math.Pi
			x1, y1 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
			x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
			largeArc := 0
			if frac > 0.5 {
				largeArc = 1
			}
			b.WriteString(fmt.Sprintf(`<path d="M%s %s L%s %s A%s %s 0 %d 1 %s %s Z" fill="%s"/>`,
				coord(cx), coord(cy), coord(x1), coord(y1), coord(r), coord(r), largeArc, coord(x2), coord(y2), color))
			angle = end
		}
	}

	// Legend with percentage share.
	labels := make([]string, 0, len(c.Slices))
	for _, s := range c.Slices {
		pct := 0.0
		if total > 0 && s.Value > 0 {
			pct = s.Value / total * 100
		}
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", s.Label, pct))
	}
	lx := w * 0.65
	ly := marginTop + 16.0
	for i, label := range labels {
		color := palette[i%len(palette)]
		b.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="10" height="10" fill="%s"/>`,
			coord(lx), coord(ly-9), color))
		b.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="11" fill="#374151">%s</text>`,
			coord(lx+16), coord(ly), escape(label)))
		ly += 18
	}

	b.WriteString("</svg>")
	return b.String()
}

// Abbreviate shortens an axis value to a K/M suffix form: 1,500,000 ->
// "1.5M", 250,000 -> "250K", 950 -> "950".
func Abbreviate(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000_000)) + "M"
	case abs >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000)) + "K"
	default:
		return trimZero(fmt.Sprintf("%.1f", v))
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

func openSVG(b *strings.Builder, w, h float64) {
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="Helvetica, Arial, sans-serif">`,
		coord(w), coord(h), coord(w), coord(h)))
}

func writeTitle(b *strings.Builder, w float64, title string) {
	if title == "" {
		return
	}
	b.WriteString(fmt.Sprintf(`<text x="%s" y="18" font-size="13" font-weight="bold" text-anchor="middle" fill="#111827">%s</text>`,
		coord(w/2), escape(title)))
}

// writeAxes draws the Y axis gridlines with abbreviated tick labels and the
// X baseline.
func writeAxes(b *strings.Builder, w, h, maxV float64) {
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	for i := 0; i <= yTickCount; i++ {
		v := maxV * float64(i) / yTickCount
		y := marginTop + plotH*(1-float64(i)/yTickCount)
		b.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e7eb" stroke-width="1"/>`,
			coord(marginLeft), coord(y), coord(marginLeft+plotW), coord(y)))
		b.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" text-anchor="end" fill="#6b7280">%s</text>`,
			coord(marginLeft-6), coord(y+3), Abbreviate(v)))
	}
	b.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#9ca3af" stroke-width="1"/>`,
		coord(marginLeft), coord(marginTop+plotH), coord(marginLeft+plotW), coord(marginTop+plotH)))
}

// writeXLabels spreads the labels across the plot, thinning them so at most
// twelve are drawn.
func writeXLabels(b *strings.Builder, w, h float64, labels []string) {
	if len(labels) == 0 {
		return
	}
	plotW := w - marginLeft - marginRight
	step := 1
	if len(labels) > 12 {
		step = (len(labels) + 11) / 12
	}
	for i := 0; i < len(labels); i += step {
		x := marginLeft + plotW*float64(i)/float64(maxIndex(len(labels)))
		b.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#6b7280">%s</text>`,
			coord(x), coord(h-marginBottom+16), escape(labels[i])))
	}
}

func writeLegend(b *strings.Builder, h float64, labels []string) {
	if len(labels) < 2 {
		return
	}
	x := marginLeft
	y := h - 18 // inside the bottom margin, below the x labels
	for i, label := range labels {
		color := palette[i%len(palette)]
		b.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="10" height="10" fill="%s"/>`,
			coord(x), coord(y+4), color))
		b.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="11" fill="#374151">%s</text>`,
			coord(x+14), coord(y+13), escape(label)))
		x += 14 + 7*float64(len(label)) + 24
	}
}

func seriesLabels(series []Series) []string {
	labels := make([]string, len(series))
	for i, s := range series {
		labels[i] = s.Label
	}
	return labels
}

func maxValue(series []Series) float64 {
	max := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// maxIndex avoids division by zero for single-point series.
func maxIndex(n int) int {
	if n <= 1 {
		return 1
	}
	return n - 1
}

// sized applies the default report dimensions when a chart does not set
// its own.
func sized(w, h int) (float64, float64) {
	if w <= 0 {
		w = 560
	}
	if h <= 0 {
		h = 300
	}
	return float64(w), float64(h)
}

func coord(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
