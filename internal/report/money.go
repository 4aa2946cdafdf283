package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// BRL formats d in reais, like R$1.234,56. Amounts are rounded to cents.
func BRL(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}

// BRLFloat formats a projection amount; non-finite values render as zero
func BRLFloat(f float64) string {
	return BRL(decimal.NewFromFloat(domain.FiniteOrZero(f)))
}

// Percent formats a ratio (0.0123) as 1,23%. A missing ratio renders as a dash.
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return strings.Replace(d.Decimal.Shift(2).StringFixed(2), ".", ",", 1) + "%"
}

// PercentFloat formats a whole percent (0.8) as 0,80%
func PercentFloat(f float64) string {
	return strings.Replace(decimal.NewFromFloat(domain.FiniteOrZero(f)).StringFixed(2), ".", ",", 1) + "%"
}
