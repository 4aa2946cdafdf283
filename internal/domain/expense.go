package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is one expense (negative value) or income (positive value) line.
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Categories  []string        `json:"categories"`
	Sources     []string        `json:"sources"`
}

// AbsValue returns |Value|. It is derived and never authoritative.
func (e Expense) AbsValue() decimal.Decimal {
	return e.Value.Abs()
}

// IsIncome reports whether the line is money coming in.
func (e Expense) IsIncome() bool {
	return e.Value.IsPositive()
}

// Validate ensures the expense can be stored
func (e Expense) Validate() error {
	if _, ok := ParseDate(e.Date); !ok {
		return fmt.Errorf("%w: date %q is not a valid ISO date", ErrInvalidInput, e.Date)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errors.New("description cannot be empty"))
	}
	return nil
}

// ExpenseWithID is the expense counterpart of WithID.
func ExpenseWithID(e Expense) Expense {
	if strings.TrimSpace(e.ID) != "" {
		return e
	}
	e.ID = uuid.NewString()
	return e
}
