package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ToNumber parses a Brazilian formatted amount ("1.234,56") into a decimal.
//
// Anything but digits, separators and the minus sign is stripped, dots are
// treated as thousands separators and the comma as the decimal separator.
// Unparsable input yields zero, never an error: exported files rely on it.
func ToNumber(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '-':
			b.WriteRune(r)
		case r == '.':
			// thousands separator
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FiniteOrZero maps NaN and infinities to zero.
func FiniteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
