package domain

import (
	"strings"
	"time"
)

// DateFormat is the ISO-8601 layout used for dates in the store document.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of monthly bucket keys (yyyy-mm).
const MonthFormat = "2006-01"

// readDateFormats are tried in order. The permissive layout accepts 2025-7-1.
var readDateFormats = []string{
	DateFormat,
	"2006-1-2",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses the ISO date strings found in entries and expenses.
// The returned time is the calendar day at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range readDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// MonthKey returns the yyyy-mm bucket key of a date string.
// ok is false when the date cannot be parsed.
func MonthKey(s string) (key string, ok bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(MonthFormat), true
}
