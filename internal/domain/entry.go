package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one ledger line for an investment account on a given date.
// Date is kept as entered; the derivation engine tolerates unparsable dates.
type Entry struct {
	ID        string          `json:"id"`
	Bank      string          `json:"bank"`
	Source    string          `json:"source"`
	Date      string          `json:"date"`
	Invested  decimal.Decimal `json:"invested"`
	InAccount decimal.Decimal `json:"inAccount"`
	CashFlow  decimal.Decimal `json:"cashFlow"`

	// Locked is a transient UI flag and is never persisted by WithID
	Locked bool `json:"locked,omitempty"`
}

// Total returns invested + inAccount, the balance the entry reports.
func (e Entry) Total() decimal.Decimal {
	return e.Invested.Add(e.InAccount)
}

// BankKey is the case-insensitive account key used to chain entries.
// Entries with an empty bank share the empty key.
func (e Entry) BankKey() string {
	return BankKey(e.Bank)
}

// BankKey normalizes a bank name into its grouping key.
func BankKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate ensures an entry typed in by a user can be stored.
// Imported entries skip it: the derivation tolerates unparsable dates.
func (e Entry) Validate() error {
	if _, ok := ParseDate(e.Date); !ok {
		return fmt.Errorf("%w: date %q is not a valid ISO date", ErrInvalidInput, e.Date)
	}
	if strings.TrimSpace(e.Bank) == "" {
		return fmt.Errorf("%w: bank cannot be empty", ErrInvalidInput)
	}
	return nil
}

// WithID returns e unchanged when it already carries an id.
// Otherwise it returns a copy with a fresh identifier and the locked flag cleared.
func WithID(e Entry) Entry {
	if strings.TrimSpace(e.ID) != "" {
		return e
	}
	e.ID = uuid.NewString()
	e.Locked = false
	return e
}

// DerivedEntry is an Entry enriched with its period-over-period yield.
// It is a view recomputed from the entry collection and never persisted.
type DerivedEntry struct {
	Entry

	YieldValue    decimal.NullDecimal `json:"yieldValue"`
	YieldPct      decimal.NullDecimal `json:"yieldPct"`
	ComputedTotal decimal.Decimal     `json:"computedTotal"`
	PreviousTotal decimal.NullDecimal `json:"previousTotal"`
}

// HasYield reports whether a previous entry existed for the same bank.
func (d DerivedEntry) HasYield() bool {
	return d.YieldValue.Valid
}
