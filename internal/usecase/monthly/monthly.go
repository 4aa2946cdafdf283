// Package monthly buckets derived entries and expenses into calendar months.
package monthly

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack/internal/domain"
)

// AggregateEntries groups derived entries by the yyyy-mm of their date.
// Entries whose date cannot be parsed are dropped. Within each month entries
// are also bucketed by their trimmed source, defaulting to domain.UnsourcedLabel.
// Buckets are returned in month order and sources in name order.
func AggregateEntries(entries []domain.DerivedEntry) []domain.MonthlyBucket {
	months := make(map[string]*domain.MonthlyBucket)
	sources := make(map[string]map[string]*domain.SourceSums)

	for _, e := range entries {
		key, ok := domain.MonthKey(e.Date)
		if !ok {
			continue
		}

		bucket, ok := months[key]
		if !ok {
			bucket = &domain.MonthlyBucket{Month: key}
			months[key] = bucket
			sources[key] = make(map[string]*domain.SourceSums)
		}
		bucket.Add(e)

		name := sourceName(e.Source)
		src, ok := sources[key][name]
		if !ok {
			src = &domain.SourceSums{Source: name}
			sources[key][name] = src
		}
		src.Add(e)
	}

	out := make([]domain.MonthlyBucket, 0, len(months))
	for key, bucket := range months {
		bucket.Settle()
		bucket.Sources = make([]domain.SourceSums, 0, len(sources[key]))
		for _, src := range sources[key] {
			src.Settle()
			bucket.Sources = append(bucket.Sources, *src)
		}
		sort.Slice(bucket.Sources, func(i, j int) bool {
			return bucket.Sources[i].Source < bucket.Sources[j].Source
		})
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// AggregateExpenses groups expenses by the yyyy-mm of their date.
// An expense contributes its full value to every category and source it lists;
// untagged expenses count under the placeholder labels.
func AggregateExpenses(expenses []domain.Expense) []domain.ExpenseMonth {
	months := make(map[string]*domain.ExpenseMonth)
	categories := make(map[string]map[string]*domain.NameAmount)
	sources := make(map[string]map[string]*domain.NameAmount)

	for _, e := range expenses {
		key, ok := domain.MonthKey(e.Date)
		if !ok {
			continue
		}

		month, ok := months[key]
		if !ok {
			month = &domain.ExpenseMonth{Month: key}
			months[key] = month
			categories[key] = make(map[string]*domain.NameAmount)
			sources[key] = make(map[string]*domain.NameAmount)
		}

		month.Count++
		addExpense(&month.Spent, &month.Earned, e)

		for _, name := range tags(e.Categories, domain.UncategorizedLabel) {
			addNamed(categories[key], name, e)
		}
		for _, name := range tags(e.Sources, domain.UnsourcedLabel) {
			addNamed(sources[key], name, e)
		}
	}

	out := make([]domain.ExpenseMonth, 0, len(months))
	for key, month := range months {
		month.Net = month.Earned.Sub(month.Spent)
		month.Categories = sortedAmounts(categories[key])
		month.Sources = sortedAmounts(sources[key])
		out = append(out, *month)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func sourceName(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return domain.UnsourcedLabel
	}
	return s
}

// tags trims names, drops blanks and duplicates, and falls back to placeholder.
func tags(names []string, placeholder string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	if len(out) == 0 {
		out = append(out, placeholder)
	}
	return out
}

func addNamed(m map[string]*domain.NameAmount, name string, e domain.Expense) {
	na, ok := m[name]
	if !ok {
		na = &domain.NameAmount{Name: name}
		m[name] = na
	}
	addExpense(&na.Spent, &na.Earned, e)
}

func addExpense(spent, earned *decimal.Decimal, e domain.Expense) {
	switch {
	case e.Value.IsNegative():
		*spent = spent.Add(e.AbsValue())
	case e.Value.IsPositive():
		*earned = earned.Add(e.Value)
	}
}

func sortedAmounts(m map[string]*domain.NameAmount) []domain.NameAmount {
	out := make([]domain.NameAmount, 0, len(m))
	for _, na := range m {
		out = append(out, *na)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
