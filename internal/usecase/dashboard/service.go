package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/wealthtrack/internal/cache"
	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/derivation"
	"github.com/simaogato/wealthtrack/internal/usecase/monthly"
	"github.com/simaogato/wealthtrack/internal/usecase/projection"
	"github.com/simaogato/wealthtrack/internal/usecase/timeline"
	"github.com/simaogato/wealthtrack/internal/usecase/totals"
)

// InvestmentOverview is everything the investments screen renders
type InvestmentOverview struct {
	Revision uint64                  `json:"revision"`
	Entries  []domain.DerivedEntry   `json:"entries"`
	Months   []domain.MonthlyBucket  `json:"months"`
	Timeline []domain.TimelineRow    `json:"timeline"`
	Totals   totals.InvestmentTotals `json:"totals"`
	Latest   []domain.DerivedEntry   `json:"latest"`
	Banks    domain.Library          `json:"banks"`
	Sources  domain.Library          `json:"sources"`
}

// ExpenseOverview is everything the expenses screen renders
type ExpenseOverview struct {
	Revision   uint64                      `json:"revision"`
	Expenses   []domain.Expense            `json:"expenses"`
	Months     []domain.ExpenseMonth       `json:"months"`
	Timeline   []domain.ExpenseTimelineRow `json:"timeline"`
	Totals     totals.ExpenseTotals        `json:"totals"`
	Categories domain.Library              `json:"categories"`
	Sources    domain.Library              `json:"sources"`
}

// ProjectionView pairs the form used with its outcome and a form suggested from history
type ProjectionView struct {
	Revision  uint64                  `json:"revision"`
	Form      domain.ProjectionForm   `json:"form"`
	Suggested domain.ProjectionForm   `json:"suggested"`
	Result    domain.ProjectionResult `json:"result"`
}

// DashboardService derives read models from the store document.
// Views are memoized per document revision; a mutation moves the revision
// so stale views are simply never hit again and age out of the LRU.
type DashboardService struct {
	Store  domain.DocumentStore
	logger *log.Logger

	investments *cache.LRU[uint64, *InvestmentOverview]
	expenses    *cache.LRU[uint64, *ExpenseOverview]
	projections *cache.LRU[string, *ProjectionView]
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(store domain.DocumentStore, logger *log.Logger, cacheSize int, cacheTTL time.Duration) *DashboardService {
	return &DashboardService{
		Store:       store,
		logger:      logger.WithComponent(log.ComponentDashboard),
		investments: cache.NewLRU[uint64, *InvestmentOverview](cacheSize, cacheTTL),
		expenses:    cache.NewLRU[uint64, *ExpenseOverview](cacheSize, cacheTTL),
		projections: cache.NewLRU[string, *ProjectionView](cacheSize, cacheTTL),
	}
}

// InvestmentOverview derives entries, monthly buckets, timeline and totals
// Logic:
//   - Yield per entry from the previous entry of the same bank
//   - Monthly buckets with per-source breakdown, laid on a gap-free timeline
//   - Totals over every derived entry
//   - Latest entry per bank as the current balance
func (s *DashboardService) InvestmentOverview(ctx context.Context) *InvestmentOverview {
	if v, ok := s.investments.Get(s.Store.Revision()); ok {
		return v
	}

	doc, rev := s.Store.Snapshot()
	derived := derivation.ComputeDerivedEntries(doc.Investments.Entries)
	months := monthly.AggregateEntries(derived)
	view := &InvestmentOverview{
		Revision: rev,
		Entries:  derived,
		Months:   months,
		Timeline: timeline.Build(months),
		Totals:   totals.ComputeTotals(derived),
		Latest:   derivation.LatestPerBank(derived),
		Banks:    doc.Investments.Banks,
		Sources:  doc.Investments.Sources,
	}
	s.investments.Set(rev, view)

	s.logger.DebugContext(ctx, "investment overview computed", log.FieldRevision, rev, log.FieldCount, len(derived))
	return view
}

// ExpenseOverview derives monthly expense aggregates, timeline and totals
func (s *DashboardService) ExpenseOverview(ctx context.Context) *ExpenseOverview {
	if v, ok := s.expenses.Get(s.Store.Revision()); ok {
		return v
	}

	doc, rev := s.Store.Snapshot()
	months := monthly.AggregateExpenses(doc.Expenses.Expenses)
	view := &ExpenseOverview{
		Revision:   rev,
		Expenses:   doc.Expenses.Expenses,
		Months:     months,
		Timeline:   timeline.BuildExpenses(months),
		Totals:     totals.ComputeExpenseTotals(doc.Expenses.Expenses),
		Categories: doc.Expenses.Categories,
		Sources:    doc.Expenses.Sources,
	}
	s.expenses.Set(rev, view)

	s.logger.DebugContext(ctx, "expense overview computed", log.FieldRevision, rev, log.FieldCount, len(months))
	return view
}

// Projection simulates the stored form, or override when given.
// The form is clamped before simulating.
func (s *DashboardService) Projection(ctx context.Context, override *domain.ProjectionForm) *ProjectionView {
	rev := s.Store.Revision()
	key := fmt.Sprintf("%d/stored", rev)
	if override != nil {
		key = fmt.Sprintf("%d/%+v", rev, *override)
	}
	if v, ok := s.projections.Get(key); ok {
		return v
	}

	doc, rev := s.Store.Snapshot()
	form := doc.Projection
	if override != nil {
		form = *override
	}
	form = form.Clamp()

	inv := s.InvestmentOverview(ctx)
	view := &ProjectionView{
		Revision:  rev,
		Form:      form,
		Suggested: projection.SuggestForm(inv.Timeline, inv.Latest, doc.Projection),
		Result:    projection.Simulate(form),
	}
	s.projections.Set(key, view)
	return view
}

// SaveProjectionForm stores form as the default simulation parameters
func (s *DashboardService) SaveProjectionForm(ctx context.Context, form domain.ProjectionForm) (domain.ProjectionForm, error) {
	form = form.Clamp()
	_, err := s.Store.Update(ctx, []domain.Area{domain.AreaProjection}, func(doc *domain.Document) error {
		doc.Projection = form
		return nil
	})
	if err != nil {
		return domain.ProjectionForm{}, err
	}
	s.logger.InfoContext(ctx, "projection form saved", log.FieldOperation, log.OpUpdate)
	return form, nil
}

// RunCacheCleanup drops expired views every interval until ctx is done
func (s *DashboardService) RunCacheCleanup(ctx context.Context, interval time.Duration) {
	go s.expenses.RunCleanup(ctx, interval)
	go s.projections.RunCleanup(ctx, interval)
	s.investments.RunCleanup(ctx, interval)
}
