package grpc

import (
	"encoding/json"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/usecase/dashboard"
)

// EntryInput carries amounts as typed by the user, in Brazilian format
// like "1.234,56". Text without digits reads as zero.
type EntryInput struct {
	ID        string `json:"id,omitempty"`
	Bank      string `json:"bank"`
	Source    string `json:"source"`
	Date      string `json:"date"`
	Invested  string `json:"invested"`
	InAccount string `json:"inAccount"`
	CashFlow  string `json:"cashFlow"`
}

type AddEntryRequest struct {
	Entry EntryInput `json:"entry"`
}

type UpdateEntryRequest struct {
	Entry EntryInput `json:"entry"`
}

type EntryResponse struct {
	Entry domain.Entry `json:"entry"`
}

type RemoveEntryRequest struct {
	EntryID string `json:"entryId"`
}

type RemoveEntryResponse struct{}

// ExpenseInput carries the value in Brazilian format; negative is money out
type ExpenseInput struct {
	ID          string   `json:"id,omitempty"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Categories  []string `json:"categories"`
	Sources     []string `json:"sources"`
}

type LogExpenseRequest struct {
	Expense ExpenseInput `json:"expense"`
}

type UpdateExpenseRequest struct {
	Expense ExpenseInput `json:"expense"`
}

type ExpenseResponse struct {
	Expense domain.Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct{}

type GetInvestmentOverviewRequest struct{}

type GetInvestmentOverviewResponse struct {
	Overview *dashboard.InvestmentOverview `json:"overview"`
}

type GetExpenseOverviewRequest struct{}

type GetExpenseOverviewResponse struct {
	Overview *dashboard.ExpenseOverview `json:"overview"`
}

// SimulateRequest simulates Form, or the stored form when Form is nil
type SimulateRequest struct {
	Form *domain.ProjectionForm `json:"form,omitempty"`
}

type SimulateResponse struct {
	Projection *dashboard.ProjectionView `json:"projection"`
}

type SaveProjectionFormRequest struct {
	Form domain.ProjectionForm `json:"form"`
}

type SaveProjectionFormResponse struct {
	Form domain.ProjectionForm `json:"form"`
}

// ImportDocumentRequest carries the raw export file
type ImportDocumentRequest struct {
	Data []byte `json:"data"`
}

type ImportDocumentResponse struct {
	Kind     string        `json:"kind"`
	Areas    []domain.Area `json:"areas"`
	Entries  int           `json:"entries"`
	Expenses int           `json:"expenses"`
	Revision uint64        `json:"revision"`
}

// ExportDocumentRequest selects "unified" (default) or "investimentos"
type ExportDocumentRequest struct {
	Format string `json:"format,omitempty"`
}

type ExportDocumentResponse struct {
	Document json.RawMessage `json:"document"`
}
