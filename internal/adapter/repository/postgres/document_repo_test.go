//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// Run with: DB_CONN_STR=... go test -tags=integration ./internal/adapter/repository/postgres/
func setupDB(t *testing.T) *DB {
	t.Helper()
	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=postgres password=postgres dbname=wealthtrack_test sslmode=disable"
	}

	db, err := NewDB(connStr)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	require.NoError(t, db.Migrate())

	_, err = db.Exec("TRUNCATE document_areas")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDocumentRepository_LoadEmpty(t *testing.T) {
	repo := NewDocumentRepository(setupDB(t))

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(setupDB(t))

	doc := domain.NewDocument()
	doc.Investments.Entries = []domain.Entry{{ID: "e1", Bank: "Inter", Date: "2025-01-01", Invested: decimal.RequireFromString("1500.25")}}
	doc.Expenses.Expenses = []domain.Expense{{ID: "x1", Date: "2025-01-02", Description: "Farmácia", Value: decimal.NewFromInt(-35)}}
	require.NoError(t, repo.Save(ctx, doc))
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Investments.Entries[0].Invested.Equal(decimal.RequireFromString("1500.25")))
	assert.Equal(t, "Farmácia", loaded.Expenses.Expenses[0].Description)
	assert.Equal(t, doc.Projection, loaded.Projection)
}
