package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRand renders an amount as a South African Rand display string,
// e.g. "R1,234,567.50". Negative amounts render as "-R1,234.50".
func FormatRand(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('R')

	// Group the integer digits in threes from the right.
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}

	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// ParseRand parses a Rand display string back into an amount. Everything
// except digits, the decimal point and the minus sign is stripped before
// parsing, so "R1,234,567.50", "1234567.50" and "R 1 234 567.50" all work.
func ParseRand(s string) (decimal.Decimal, error) {
	var cleaned strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			cleaned.WriteRune(r)
		}
	}
	if cleaned.Len() == 0 {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "not a number"}
	}
	d, err := decimal.NewFromString(cleaned.String())
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "not a number"}
	}
	return d, nil
}
