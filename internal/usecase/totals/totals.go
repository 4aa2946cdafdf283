package totals

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack/internal/domain"
)

// InvestmentTotals are the running totals of a collection of derived entries
type InvestmentTotals struct {
	TotalInvested   decimal.Decimal `json:"total_invested"`
	TotalInAccount  decimal.Decimal `json:"total_in_account"`
	TotalInput      decimal.Decimal `json:"total_input"`
	TotalYieldValue decimal.Decimal `json:"total_yield_value"`
}

// ExpenseTotals split a collection of expenses by the sign of their value
type ExpenseTotals struct {
	TotalSpent  decimal.Decimal `json:"total_spent"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	Balance     decimal.Decimal `json:"balance"`
}

// ComputeTotals sums invested, in-account and cash flow of every entry.
// Only entries with a yield contribute to TotalYieldValue, so the first
// entry of each bank adds no zero-yield noise.
func ComputeTotals(entries []domain.DerivedEntry) InvestmentTotals {
	var t InvestmentTotals
	for _, e := range entries {
		t.TotalInvested = t.TotalInvested.Add(e.Invested)
		t.TotalInAccount = t.TotalInAccount.Add(e.InAccount)
		t.TotalInput = t.TotalInput.Add(e.CashFlow)
		if e.HasYield() {
			t.TotalYieldValue = t.TotalYieldValue.Add(e.YieldValue.Decimal)
		}
	}
	return t
}

// ComputeExpenseTotals sums spending (as a positive magnitude) and earnings.
func ComputeExpenseTotals(expenses []domain.Expense) ExpenseTotals {
	var t ExpenseTotals
	for _, e := range expenses {
		switch {
		case e.Value.IsNegative():
			t.TotalSpent = t.TotalSpent.Add(e.AbsValue())
		case e.Value.IsPositive():
			t.TotalEarned = t.TotalEarned.Add(e.Value)
		}
	}
	t.Balance = t.TotalEarned.Sub(t.TotalSpent)
	return t
}
