/*
money.go - Cent rounding and display formatting

PURPOSE:
  Presentation-boundary money helpers. The calculation core works in
  float64; these helpers are where figures are rounded to cents and
  rendered for reports and API payloads, using decimal arithmetic so
  display rounding is exact (half away from zero).

KEY CONCEPTS:
  - RoundCents: banker-free round-half-away-from-zero to 2 decimals
  - FormatCurrency / FormatPercent / FormatNumber: en-US style rendering
    with thousands separators

SEE ALSO:
  - records.go: The records whose amounts these helpers render
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING
// =============================================================================

// RoundCents rounds to 2 decimal places, half away from zero.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundTo rounds to the given number of decimal places, half away from zero.
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatCurrency renders a dollar amount with thousands separators and
// 2 decimal places, e.g. -1234567.8 -> "-$1,234,567.80".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := groupThousands(d.Abs().StringFixed(2))
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// FormatNumber renders a count with thousands separators and no decimals.
func FormatNumber(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	neg := d.IsNegative()
	s := groupThousands(d.Abs().StringFixed(0))
	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent renders a ratio already scaled to percent, with one
// decimal place, e.g. 94.2857 -> "94.3%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1) + "%"
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string. Input must be non-negative.
func groupThousands(s string) string {
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
