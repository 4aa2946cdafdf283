package expense

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
)

var expensesArea = []domain.Area{domain.AreaExpenses}

// ExpenseService handles expense and income logging operations
type ExpenseService struct {
	Store  domain.DocumentStore
	logger *log.Logger
}

// NewExpenseService creates a new ExpenseService instance
func NewExpenseService(store domain.DocumentStore, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		Store:  store,
		logger: logger.WithComponent(log.ComponentExpense),
	}
}

// LogExpense stores a new expense (negative value) or income (positive value)
// Logic:
//  1. Trim tags and validate date and description
//  2. Assign an id when missing
//  3. Register categories and sources in the libraries
//  4. Append and commit
func (s *ExpenseService) LogExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	expense = normalize(expense)
	if err := expense.Validate(); err != nil {
		return domain.Expense{}, err
	}
	expense = domain.ExpenseWithID(expense)

	_, err := s.Store.Update(ctx, expensesArea, func(doc *domain.Document) error {
		if slices.ContainsFunc(doc.Expenses.Expenses, func(e domain.Expense) bool { return e.ID == expense.ID }) {
			return fmt.Errorf("%w: expense %s already exists", domain.ErrInvalidInput, expense.ID)
		}
		doc.Expenses.Expenses = append(doc.Expenses.Expenses, expense)
		register(doc, expense)
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}

	s.logger.InfoContext(ctx, "expense logged",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, expense.ID,
	)
	return expense, nil
}

// UpdateExpense replaces the expense with the same id
func (s *ExpenseService) UpdateExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	expense = normalize(expense)
	if err := expense.Validate(); err != nil {
		return domain.Expense{}, err
	}

	_, err := s.Store.Update(ctx, expensesArea, func(doc *domain.Document) error {
		i := slices.IndexFunc(doc.Expenses.Expenses, func(e domain.Expense) bool { return e.ID == expense.ID })
		if i < 0 {
			return fmt.Errorf("expense %s: %w", expense.ID, domain.ErrNotFound)
		}
		doc.Expenses.Expenses[i] = expense
		register(doc, expense)
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}

	s.logger.InfoContext(ctx, "expense updated", log.FieldOperation, log.OpUpdate, log.FieldExpenseID, expense.ID)
	return expense, nil
}

// RemoveExpense deletes the expense with the given id
func (s *ExpenseService) RemoveExpense(ctx context.Context, id string) error {
	_, err := s.Store.Update(ctx, expensesArea, func(doc *domain.Document) error {
		i := slices.IndexFunc(doc.Expenses.Expenses, func(e domain.Expense) bool { return e.ID == id })
		if i < 0 {
			return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
		}
		doc.Expenses.Expenses = slices.Delete(doc.Expenses.Expenses, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "expense removed", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
	return nil
}

// ListExpenses returns the stored expenses, most recent first
func (s *ExpenseService) ListExpenses(ctx context.Context) []domain.Expense {
	doc, _ := s.Store.Snapshot()
	out := doc.Expenses.Expenses
	slices.SortStableFunc(out, func(a, b domain.Expense) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

func normalize(e domain.Expense) domain.Expense {
	e.Description = strings.TrimSpace(e.Description)
	e.Categories = trimAll(e.Categories)
	e.Sources = trimAll(e.Sources)
	return e
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func register(doc *domain.Document, e domain.Expense) {
	doc.Expenses.Categories = doc.Expenses.Categories.EnsureAll(e.Categories...)
	doc.Expenses.Sources = doc.Expenses.Sources.EnsureAll(e.Sources...)
}
