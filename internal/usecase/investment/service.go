package investment

import (
	"context"
	"fmt"
	"slices"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/derivation"
)

var investmentsArea = []domain.Area{domain.AreaInvestments}

// InvestmentService handles ledger entry operations
type InvestmentService struct {
	Store  domain.DocumentStore
	logger *log.Logger
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(store domain.DocumentStore, logger *log.Logger) *InvestmentService {
	return &InvestmentService{
		Store:  store,
		logger: logger.WithComponent(log.ComponentInvestment),
	}
}

// AddEntry stores a new ledger entry
// Logic:
//  1. Validate the entry (parseable date, non-empty bank)
//  2. Assign an id when missing
//  3. Register bank and source in the libraries
//  4. Append and commit
func (s *InvestmentService) AddEntry(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	entry = domain.WithID(entry)

	_, err := s.Store.Update(ctx, investmentsArea, func(doc *domain.Document) error {
		if slices.ContainsFunc(doc.Investments.Entries, func(e domain.Entry) bool { return e.ID == entry.ID }) {
			return fmt.Errorf("%w: entry %s already exists", domain.ErrInvalidInput, entry.ID)
		}
		doc.Investments.Entries = append(doc.Investments.Entries, entry)
		register(doc, entry)
		return nil
	})
	if err != nil {
		return domain.Entry{}, err
	}

	s.logger.InfoContext(ctx, "entry added",
		log.FieldOperation, log.OpCreate,
		log.FieldEntryID, entry.ID,
		log.FieldBank, entry.Bank,
	)
	return entry, nil
}

// UpdateEntry replaces the entry with the same id
func (s *InvestmentService) UpdateEntry(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}

	_, err := s.Store.Update(ctx, investmentsArea, func(doc *domain.Document) error {
		i := slices.IndexFunc(doc.Investments.Entries, func(e domain.Entry) bool { return e.ID == entry.ID })
		if i < 0 {
			return fmt.Errorf("entry %s: %w", entry.ID, domain.ErrNotFound)
		}
		doc.Investments.Entries[i] = entry
		register(doc, entry)
		return nil
	})
	if err != nil {
		return domain.Entry{}, err
	}

	s.logger.InfoContext(ctx, "entry updated", log.FieldOperation, log.OpUpdate, log.FieldEntryID, entry.ID)
	return entry, nil
}

// RemoveEntry deletes the entry with the given id
func (s *InvestmentService) RemoveEntry(ctx context.Context, id string) error {
	_, err := s.Store.Update(ctx, investmentsArea, func(doc *domain.Document) error {
		i := slices.IndexFunc(doc.Investments.Entries, func(e domain.Entry) bool { return e.ID == id })
		if i < 0 {
			return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		}
		doc.Investments.Entries = slices.Delete(doc.Investments.Entries, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "entry removed", log.FieldOperation, log.OpDelete, log.FieldEntryID, id)
	return nil
}

// ListDerived returns every entry enriched with its yield, in stored order
func (s *InvestmentService) ListDerived(ctx context.Context) []domain.DerivedEntry {
	doc, _ := s.Store.Snapshot()
	return derivation.ComputeDerivedEntries(doc.Investments.Entries)
}

func register(doc *domain.Document, entry domain.Entry) {
	doc.Investments.Banks = doc.Investments.Banks.Ensure(entry.Bank)
	doc.Investments.Sources = doc.Investments.Sources.Ensure(entry.Source)
}
