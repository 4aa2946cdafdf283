package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sums are the running totals shared by monthly buckets and their per-source breakdown.
// YieldValue and PreviousTotal only cover entries that have a yield.
type Sums struct {
	Invested      decimal.Decimal     `json:"invested"`
	InAccount     decimal.Decimal     `json:"inAccount"`
	CashFlow      decimal.Decimal     `json:"cashFlow"`
	YieldValue    decimal.Decimal     `json:"yieldValue"`
	PreviousTotal decimal.Decimal     `json:"previousTotal"`
	YieldPct      decimal.NullDecimal `json:"yieldPct"`
}

// Add accumulates one derived entry.
func (s *Sums) Add(e DerivedEntry) {
	s.Invested = s.Invested.Add(e.Invested)
	s.InAccount = s.InAccount.Add(e.InAccount)
	s.CashFlow = s.CashFlow.Add(e.CashFlow)
	if e.HasYield() {
		s.YieldValue = s.YieldValue.Add(e.YieldValue.Decimal)
		s.PreviousTotal = s.PreviousTotal.Add(e.PreviousTotal.Decimal)
	}
}

// Settle re-derives YieldPct at the aggregate level.
func (s *Sums) Settle() {
	if s.PreviousTotal.IsZero() {
		s.YieldPct = decimal.NullDecimal{}
		return
	}
	s.YieldPct = decimal.NewNullDecimal(s.YieldValue.Div(s.PreviousTotal))
}

// Total returns invested + inAccount for the bucket.
func (s Sums) Total() decimal.Decimal {
	return s.Invested.Add(s.InAccount)
}

// SourceSums is the per-source breakdown inside a monthly bucket.
type SourceSums struct {
	Source string `json:"source"`
	Sums
}

// MonthlyBucket aggregates derived entries of one calendar month.
type MonthlyBucket struct {
	Month string `json:"month"` // yyyy-mm
	Sums
	Sources []SourceSums `json:"sources"`
}

// NameAmount is an amount aggregated by category or source name.
type NameAmount struct {
	Name   string          `json:"name"`
	Spent  decimal.Decimal `json:"spent"`
	Earned decimal.Decimal `json:"earned"`
}

// ExpenseMonth aggregates expenses of one calendar month.
// Spent is a positive magnitude.
type ExpenseMonth struct {
	Month      string          `json:"month"` // yyyy-mm
	Spent      decimal.Decimal `json:"spent"`
	Earned     decimal.Decimal `json:"earned"`
	Net        decimal.Decimal `json:"net"`
	Count      int             `json:"count"`
	Categories []NameAmount    `json:"categories"`
	Sources    []NameAmount    `json:"sources"`
}

// TimelineRow is a monthly bucket positioned on a gap-free timeline.
type TimelineRow struct {
	MonthlyBucket
	Label    string    `json:"label"`
	MidMonth time.Time `json:"midMonth"`
}

// ExpenseTimelineRow is an expense month positioned on a gap-free timeline.
type ExpenseTimelineRow struct {
	ExpenseMonth
	Label    string    `json:"label"`
	MidMonth time.Time `json:"midMonth"`
}
