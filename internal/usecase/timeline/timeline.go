// Package timeline lays monthly aggregates on a gap-free month axis.
package timeline

import (
	"fmt"
	"time"

	"github.com/simaogato/wealthtrack/internal/domain"
)

var monthLabels = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// Label renders a month as "jan/2025".
func Label(month time.Time) string {
	return fmt.Sprintf("%s/%d", monthLabels[month.Month()-1], month.Year())
}

// MidMonth returns the 15th of the month at midnight UTC.
func MidMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 15, 0, 0, 0, 0, time.UTC)
}

// Months enumerates every yyyy-mm key between first and last inclusive.
// It returns nil when either key is malformed or last precedes first.
func Months(first, last string) []time.Time {
	start, err := time.Parse(domain.MonthFormat, first)
	if err != nil {
		return nil
	}
	end, err := time.Parse(domain.MonthFormat, last)
	if err != nil || end.Before(start) {
		return nil
	}

	var out []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		out = append(out, m)
	}
	return out
}

// Build fills every month between the earliest and latest bucket.
// Buckets must be keyed by yyyy-mm; missing months become zero rows.
func Build(buckets []domain.MonthlyBucket) []domain.TimelineRow {
	if len(buckets) == 0 {
		return []domain.TimelineRow{}
	}

	byMonth := make(map[string]domain.MonthlyBucket, len(buckets))
	first, last := buckets[0].Month, buckets[0].Month
	for _, b := range buckets {
		byMonth[b.Month] = b
		first = min(first, b.Month)
		last = max(last, b.Month)
	}

	months := Months(first, last)
	rows := make([]domain.TimelineRow, 0, len(months))
	for _, m := range months {
		key := m.Format(domain.MonthFormat)
		bucket, ok := byMonth[key]
		if !ok {
			bucket = domain.MonthlyBucket{Month: key}
		}
		if bucket.Sources == nil {
			bucket.Sources = []domain.SourceSums{}
		}
		rows = append(rows, domain.TimelineRow{
			MonthlyBucket: bucket,
			Label:         Label(m),
			MidMonth:      MidMonth(m),
		})
	}
	return rows
}

// BuildExpenses is Build for expense months.
func BuildExpenses(months []domain.ExpenseMonth) []domain.ExpenseTimelineRow {
	if len(months) == 0 {
		return []domain.ExpenseTimelineRow{}
	}

	byMonth := make(map[string]domain.ExpenseMonth, len(months))
	first, last := months[0].Month, months[0].Month
	for _, m := range months {
		byMonth[m.Month] = m
		first = min(first, m.Month)
		last = max(last, m.Month)
	}

	axis := Months(first, last)
	rows := make([]domain.ExpenseTimelineRow, 0, len(axis))
	for _, m := range axis {
		key := m.Format(domain.MonthFormat)
		month, ok := byMonth[key]
		if !ok {
			month = domain.ExpenseMonth{Month: key}
		}
		if month.Categories == nil {
			month.Categories = []domain.NameAmount{}
		}
		if month.Sources == nil {
			month.Sources = []domain.NameAmount{}
		}
		rows = append(rows, domain.ExpenseTimelineRow{
			ExpenseMonth: month,
			Label:        Label(m),
			MidMonth:     MidMonth(m),
		})
	}
	return rows
}
