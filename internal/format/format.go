// Package format renders numeric values as pt-BR display strings. The
// separator and rounding rules are part of the dashboard contract: every
// aggregate flows through these functions before display.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Currency renders an amount in the Brazilian Real convention: symbol,
// space, period thousands separator, comma decimal separator, always two
// decimal places. Zero and NaN render as the canonical "R$ 0,00".
func Currency(v float64) string {
	if math.IsNaN(v) || v == 0 {
		return "R$ 0,00"
	}

	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	b.WriteString(groupThousands(intPart))
	b.WriteString(",")
	b.WriteString(fracPart)
	return b.String()
}

// CurrencyPtr renders a possibly missing amount; nil renders as "R$ 0,00".
func CurrencyPtr(v *float64) string {
	if v == nil {
		return "R$ 0,00"
	}
	return Currency(*v)
}

// Percentage renders a value already expressed in percent units (12.3
// means 12.3%) with one decimal place and a comma separator. NaN renders
// as "0,0%".
func Percentage(v float64) string {
	if math.IsNaN(v) {
		return "0,0%"
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// PercentagePtr renders a possibly missing percentage; nil renders as
// "0,0%".
func PercentagePtr(v *float64) string {
	if v == nil {
		return "0,0%"
	}
	return Percentage(*v)
}

// groupThousands inserts a period every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(digits[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
