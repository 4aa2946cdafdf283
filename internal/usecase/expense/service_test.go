package expense

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack/internal/adapter/repository/memory"
	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/store"
)

func newService() (*ExpenseService, *store.Store) {
	st := store.NewStore(memory.NewDocumentRepository(), log.Discard())
	return NewExpenseService(st, log.Discard()), st
}

func TestLogExpense_Success(t *testing.T) {
	ctx := context.Background()
	service, st := newService()

	e, err := service.LogExpense(ctx, domain.Expense{
		Date:        "2025-03-10",
		Description: "  Mercado ",
		Value:       decimal.NewFromInt(-230),
		Categories:  []string{"Casa", " ", "Casa", "Feira"},
		Sources:     []string{"Cartão"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Mercado", e.Description)
	assert.Equal(t, []string{"Casa", "Feira"}, e.Categories)

	doc, _ := st.Snapshot()
	_, ok := doc.Expenses.Categories.Find("feira")
	assert.True(t, ok)
	_, ok = doc.Expenses.Sources.Find("Cartão")
	assert.True(t, ok)
}

func TestLogExpense_LogsAsExpenseComponent(t *testing.T) {
	var buf bytes.Buffer
	st := store.NewStore(memory.NewDocumentRepository(), log.Discard())
	service := NewExpenseService(st, log.New(log.Config{Level: slog.LevelInfo, Output: &buf, JSON: true}))

	_, err := service.LogExpense(context.Background(), domain.Expense{Date: "2025-03-10", Description: "Feira"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"expense logged"`)
	assert.Contains(t, buf.String(), `"component":"expense"`)
}

func TestLogExpense_Validation(t *testing.T) {
	tests := []struct {
		name    string
		expense domain.Expense
	}{
		{name: "Blank description", expense: domain.Expense{Date: "2025-03-10", Description: "   "}},
		{name: "Bad date", expense: domain.Expense{Date: "10/03/2025", Description: "Mercado"}},
		{name: "Missing date", expense: domain.Expense{Description: "Mercado"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, st := newService()

			_, err := service.LogExpense(context.Background(), tt.expense)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, st.Revision(), "store must stay untouched")
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	e, err := service.LogExpense(ctx, domain.Expense{Date: "2025-03-10", Description: "Uber", Value: decimal.NewFromInt(-20)})
	require.NoError(t, err)

	e.Value = decimal.NewFromInt(-25)
	_, err = service.UpdateExpense(ctx, e)
	require.NoError(t, err)

	list := service.ListExpenses(ctx)
	require.Len(t, list, 1)
	assert.True(t, list[0].Value.Equal(decimal.NewFromInt(-25)))

	e.ID = "missing"
	_, err = service.UpdateExpense(ctx, e)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveExpense(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	e, err := service.LogExpense(ctx, domain.Expense{Date: "2025-03-10", Description: "Uber"})
	require.NoError(t, err)

	require.NoError(t, service.RemoveExpense(ctx, e.ID))
	assert.Empty(t, service.ListExpenses(ctx))
	assert.ErrorIs(t, service.RemoveExpense(ctx, e.ID), domain.ErrNotFound)
}

func TestListExpenses_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	for _, date := range []string{"2025-01-05", "2025-03-01", "2025-02-14"} {
		_, err := service.LogExpense(ctx, domain.Expense{Date: date, Description: "x"})
		require.NoError(t, err)
	}

	list := service.ListExpenses(ctx)

	require.Len(t, list, 3)
	assert.Equal(t, "2025-03-01", list[0].Date)
	assert.Equal(t, "2025-01-05", list[2].Date)
}
