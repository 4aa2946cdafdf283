package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithID_AssignsIdentifier(t *testing.T) {
	e := WithID(Entry{Bank: "Inter", Locked: true})

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.False(t, e.Locked, "new entries are never locked")
}

func TestWithID_Idempotent(t *testing.T) {
	once := WithID(Entry{Bank: "Inter", Date: "2025-01-01"})
	twice := WithID(once)

	assert.Equal(t, once, twice)
}

func TestWithID_KeepsExistingID(t *testing.T) {
	e := Entry{ID: "abc", Locked: true}
	assert.Equal(t, e, WithID(e))
}

func TestExpenseWithID(t *testing.T) {
	e := ExpenseWithID(Expense{Description: "Mercado"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, e, ExpenseWithID(e))
}

func TestEntry_TotalAndBankKey(t *testing.T) {
	e := Entry{
		Bank:      "  NuBank ",
		Invested:  decimal.NewFromInt(1000),
		InAccount: decimal.NewFromInt(250),
	}

	assert.True(t, e.Total().Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, "nubank", e.BankKey())
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr bool
	}{
		{
			name:    "Valid expense",
			expense: Expense{Date: "2025-03-01", Description: "Mercado", Value: decimal.NewFromInt(-50)},
		},
		{
			name:    "Unparsable date",
			expense: Expense{Date: "01/03/2025", Description: "Mercado"},
			wantErr: true,
		},
		{
			name:    "Blank description",
			expense: Expense{Date: "2025-03-01", Description: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpense_Sign(t *testing.T) {
	out := Expense{Value: decimal.NewFromInt(-80)}
	in := Expense{Value: decimal.NewFromInt(80)}

	assert.False(t, out.IsIncome())
	assert.True(t, in.IsIncome())
	assert.True(t, out.AbsValue().Equal(in.Value))
}

func TestEntry_Validate(t *testing.T) {
	assert.NoError(t, Entry{Bank: "Inter", Date: "2025-01-31"}.Validate())
	assert.ErrorIs(t, Entry{Bank: "Inter", Date: "31/01/2025"}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Entry{Bank: " ", Date: "2025-01-31"}.Validate(), ErrInvalidInput)
}
