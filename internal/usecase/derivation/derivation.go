// Package derivation computes the period-over-period yield of investment entries.
package derivation

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack/internal/domain"
)

// ComputeDerivedEntries derives yield values for every entry.
// Logic:
//  1. Sort a copy by (date ascending, bank ascending); unparsable dates sort as the epoch
//  2. Walk the sorted entries keeping the last entry seen per bank key
//  3. With a previous entry: yield = total - (previousTotal + cashFlow),
//     pct = yield / previousTotal when previousTotal is not zero
//
// The output has the same length and order as the input.
// Entries of the same bank on the same date keep their input order.
func ComputeDerivedEntries(entries []domain.Entry) []domain.DerivedEntry {
	order := make([]int, len(entries))
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		order[i] = i
		dates[i] = sortDate(e.Date)
	}

	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if !dates[ia].Equal(dates[ib]) {
			return dates[ia].Before(dates[ib])
		}
		return compareBank(entries[ia].Bank, entries[ib].Bank) < 0
	})

	derived := make([]domain.DerivedEntry, len(entries))
	last := make(map[string]domain.Entry)

	for _, idx := range order {
		e := entries[idx]
		d := domain.DerivedEntry{
			Entry:         e,
			ComputedTotal: e.Total(),
		}

		key := e.BankKey()
		if prev, ok := last[key]; ok {
			previousTotal := prev.Total()
			yield := d.ComputedTotal.Sub(previousTotal.Add(e.CashFlow))

			d.PreviousTotal = decimal.NewNullDecimal(previousTotal)
			d.YieldValue = decimal.NewNullDecimal(yield)
			if !previousTotal.IsZero() {
				d.YieldPct = decimal.NewNullDecimal(yield.Div(previousTotal))
			}
		}
		last[key] = e

		// results land at the entry's original position
		derived[idx] = d
	}

	return derived
}

// LatestPerBank returns the chronologically last derived entry of each bank,
// ordered by bank name. It is the current balance of every account.
func LatestPerBank(derived []domain.DerivedEntry) []domain.DerivedEntry {
	latest := make(map[string]domain.DerivedEntry)
	latestDate := make(map[string]time.Time)

	for _, d := range derived {
		key := d.BankKey()
		on := sortDate(d.Date)
		if cur, ok := latestDate[key]; ok && on.Before(cur) {
			continue
		}
		latest[key] = d
		latestDate[key] = on
	}

	out := make([]domain.DerivedEntry, 0, len(latest))
	for _, d := range latest {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return compareBank(out[i].Bank, out[j].Bank) < 0
	})
	return out
}

// CurrentBalance sums the computed totals of the latest entry of every bank.
func CurrentBalance(derived []domain.DerivedEntry) decimal.Decimal {
	total := decimal.Zero
	for _, d := range LatestPerBank(derived) {
		total = total.Add(d.ComputedTotal)
	}
	return total
}

func sortDate(s string) time.Time {
	if t, ok := domain.ParseDate(s); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// compareBank orders bank names case-insensitively, then by raw name.
func compareBank(a, b string) int {
	if c := strings.Compare(domain.BankKey(a), domain.BankKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
