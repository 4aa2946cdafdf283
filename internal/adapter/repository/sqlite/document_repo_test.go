package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack/internal/domain"
)

func newRepo(t *testing.T) *DocumentRepository {
	t.Helper()
	repo, err := NewDocumentRepository(filepath.Join(t.TempDir(), "db", "wealthtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestDocumentRepository_LoadEmpty(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentRepository_SaveAndOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	doc := domain.NewDocument()
	doc.Investments.Entries = []domain.Entry{{ID: "e1", Bank: "Inter", Date: "2025-01-01", Invested: decimal.NewFromInt(500)}}
	doc.Investments.Banks = domain.Library{{Name: "Inter", Color: "#f60", Icon: "🏦"}}
	doc.Projection.GoalAmount = 1e6
	require.NoError(t, repo.Save(ctx, doc))

	doc.Expenses.Expenses = []domain.Expense{{ID: "x1", Date: "2025-01-03", Description: "Livro", Value: decimal.NewFromInt(-60), Categories: []string{"Lazer"}}}
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentVersion, loaded.Version)
	require.Len(t, loaded.Investments.Entries, 1)
	assert.True(t, loaded.Investments.Entries[0].Invested.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, doc.Investments.Banks, loaded.Investments.Banks)
	require.Len(t, loaded.Expenses.Expenses, 1)
	assert.Equal(t, []string{"Lazer"}, loaded.Expenses.Expenses[0].Categories)
	assert.Equal(t, 1e6, loaded.Projection.GoalAmount)
}

func TestDocumentRepository_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wealthtrack.db")

	first, err := NewDocumentRepository(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), domain.NewDocument()))
	require.NoError(t, first.Close())

	second, err := NewDocumentRepository(path)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.Load(context.Background())
	assert.NoError(t, err)
}
