package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
)

// Default library items seeded into every document. Placeholder labels are
// always present so untagged records have somewhere to land.
var (
	DefaultInvestmentSources = domain.Library{
		{Name: domain.UnsourcedLabel, Color: "hsl(0, 0%, 60%)", Icon: domain.DefaultIcon},
		{Name: "Salário", Color: "hsl(140, 65%, 45%)", Icon: "💼"},
		{Name: "Dividendos", Color: "hsl(45, 85%, 50%)", Icon: "💰"},
	}

	DefaultExpenseCategories = domain.Library{
		{Name: domain.UncategorizedLabel, Color: "hsl(0, 0%, 60%)", Icon: domain.DefaultIcon},
		{Name: "Moradia", Color: "hsl(210, 65%, 55%)", Icon: "🏠"},
		{Name: "Alimentação", Color: "hsl(25, 80%, 55%)", Icon: "🛒"},
		{Name: "Transporte", Color: "hsl(270, 55%, 55%)", Icon: "🚌"},
		{Name: "Saúde", Color: "hsl(350, 70%, 55%)", Icon: "🩺"},
		{Name: "Lazer", Color: "hsl(175, 60%, 45%)", Icon: "🎬"},
	}

	DefaultExpenseSources = domain.Library{
		{Name: domain.UnsourcedLabel, Color: "hsl(0, 0%, 60%)", Icon: domain.DefaultIcon},
	}
)

// Apply adds every default item missing from doc, matching names
// case-insensitively. It reports whether doc changed.
func Apply(doc *domain.Document) bool {
	changed := false
	merge := func(lib domain.Library, defaults domain.Library) domain.Library {
		for _, item := range defaults {
			if _, ok := lib.Find(item.Name); !ok {
				lib = append(lib, item)
				changed = true
			}
		}
		return lib
	}

	doc.Investments.Sources = merge(doc.Investments.Sources, DefaultInvestmentSources)
	doc.Expenses.Categories = merge(doc.Expenses.Categories, DefaultExpenseCategories)
	doc.Expenses.Sources = merge(doc.Expenses.Sources, DefaultExpenseSources)
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
		changed = true
	}
	return changed
}

// New returns an empty document carrying the default libraries.
func New() *domain.Document {
	doc := domain.NewDocument()
	Apply(doc)
	return doc
}

// DocumentSeeder makes sure the repository holds a document with the default libraries
type DocumentSeeder struct {
	repo   domain.DocumentRepository
	logger *log.Logger
}

// NewDocumentSeeder creates a new DocumentSeeder instance
func NewDocumentSeeder(repo domain.DocumentRepository, logger *log.Logger) *DocumentSeeder {
	return &DocumentSeeder{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentStore),
	}
}

// Seed creates the document when none exists and tops up missing defaults otherwise.
// The repository is only written when something changed.
func (s *DocumentSeeder) Seed(ctx context.Context) error {
	doc, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		doc = domain.NewDocument()
	case err != nil:
		return fmt.Errorf("load document for seeding: %w", err)
	}

	if !Apply(doc) {
		return nil
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("save seeded document: %w", err)
	}
	s.logger.InfoContext(ctx, "seeded default libraries", log.FieldOperation, log.OpSave)
	return nil
}
