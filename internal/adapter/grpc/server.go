package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/usecase/dashboard"
	"github.com/simaogato/wealthtrack/internal/usecase/expense"
	"github.com/simaogato/wealthtrack/internal/usecase/importer"
	"github.com/simaogato/wealthtrack/internal/usecase/investment"
)

// Server implements the WealthTrackService gRPC server
type Server struct {
	InvestmentService *investment.InvestmentService
	ExpenseService    *expense.ExpenseService
	DashboardService  *dashboard.DashboardService
	ImportService     *importer.ImportService
}

// NewServer creates a new gRPC server instance
func NewServer(
	investmentService *investment.InvestmentService,
	expenseService *expense.ExpenseService,
	dashboardService *dashboard.DashboardService,
	importService *importer.ImportService,
) *Server {
	return &Server{
		InvestmentService: investmentService,
		ExpenseService:    expenseService,
		DashboardService:  dashboardService,
		ImportService:     importService,
	}
}

// AddEntry handles the AddEntry RPC
func (s *Server) AddEntry(ctx context.Context, req *AddEntryRequest) (*EntryResponse, error) {
	created, err := s.InvestmentService.AddEntry(ctx, toEntry(req.Entry))
	if err != nil {
		return nil, mapError(err)
	}
	return &EntryResponse{Entry: created}, nil
}

// UpdateEntry handles the UpdateEntry RPC
func (s *Server) UpdateEntry(ctx context.Context, req *UpdateEntryRequest) (*EntryResponse, error) {
	if strings.TrimSpace(req.Entry.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "entry id is required")
	}
	updated, err := s.InvestmentService.UpdateEntry(ctx, toEntry(req.Entry))
	if err != nil {
		return nil, mapError(err)
	}
	return &EntryResponse{Entry: updated}, nil
}

// RemoveEntry handles the RemoveEntry RPC
func (s *Server) RemoveEntry(ctx context.Context, req *RemoveEntryRequest) (*RemoveEntryResponse, error) {
	if err := s.InvestmentService.RemoveEntry(ctx, req.EntryID); err != nil {
		return nil, mapError(err)
	}
	return &RemoveEntryResponse{}, nil
}

// LogExpense handles the LogExpense RPC
func (s *Server) LogExpense(ctx context.Context, req *LogExpenseRequest) (*ExpenseResponse, error) {
	e, err := toExpense(req.Expense)
	if err != nil {
		return nil, mapError(err)
	}

	created, err := s.ExpenseService.LogExpense(ctx, e)
	if err != nil {
		return nil, mapError(err)
	}
	return &ExpenseResponse{Expense: created}, nil
}

// UpdateExpense handles the UpdateExpense RPC
func (s *Server) UpdateExpense(ctx context.Context, req *UpdateExpenseRequest) (*ExpenseResponse, error) {
	if strings.TrimSpace(req.Expense.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "expense id is required")
	}
	e, err := toExpense(req.Expense)
	if err != nil {
		return nil, mapError(err)
	}

	updated, err := s.ExpenseService.UpdateExpense(ctx, e)
	if err != nil {
		return nil, mapError(err)
	}
	return &ExpenseResponse{Expense: updated}, nil
}

// RemoveExpense handles the RemoveExpense RPC
func (s *Server) RemoveExpense(ctx context.Context, req *RemoveExpenseRequest) (*RemoveExpenseResponse, error) {
	if err := s.ExpenseService.RemoveExpense(ctx, req.ExpenseID); err != nil {
		return nil, mapError(err)
	}
	return &RemoveExpenseResponse{}, nil
}

// GetInvestmentOverview handles the GetInvestmentOverview RPC
func (s *Server) GetInvestmentOverview(ctx context.Context, _ *GetInvestmentOverviewRequest) (*GetInvestmentOverviewResponse, error) {
	return &GetInvestmentOverviewResponse{Overview: s.DashboardService.InvestmentOverview(ctx)}, nil
}

// GetExpenseOverview handles the GetExpenseOverview RPC
func (s *Server) GetExpenseOverview(ctx context.Context, _ *GetExpenseOverviewRequest) (*GetExpenseOverviewResponse, error) {
	return &GetExpenseOverviewResponse{Overview: s.DashboardService.ExpenseOverview(ctx)}, nil
}

// Simulate handles the Simulate RPC
func (s *Server) Simulate(ctx context.Context, req *SimulateRequest) (*SimulateResponse, error) {
	return &SimulateResponse{Projection: s.DashboardService.Projection(ctx, req.Form)}, nil
}

// SaveProjectionForm handles the SaveProjectionForm RPC
func (s *Server) SaveProjectionForm(ctx context.Context, req *SaveProjectionFormRequest) (*SaveProjectionFormResponse, error) {
	form, err := s.DashboardService.SaveProjectionForm(ctx, req.Form)
	if err != nil {
		return nil, mapError(err)
	}
	return &SaveProjectionFormResponse{Form: form}, nil
}

// ImportDocument handles the ImportDocument RPC
func (s *Server) ImportDocument(ctx context.Context, req *ImportDocumentRequest) (*ImportDocumentResponse, error) {
	if len(req.Data) == 0 {
		return nil, status.Error(codes.InvalidArgument, "import data is empty")
	}

	res, rev, err := s.ImportService.Import(ctx, req.Data)
	if err != nil {
		return nil, mapError(err)
	}
	return &ImportDocumentResponse{
		Kind:     string(res.Kind),
		Areas:    res.Areas,
		Entries:  res.Entries,
		Expenses: res.Expenses,
		Revision: rev,
	}, nil
}

// ExportDocument handles the ExportDocument RPC
func (s *Server) ExportDocument(ctx context.Context, req *ExportDocumentRequest) (*ExportDocumentResponse, error) {
	data, err := s.ImportService.Export(ctx, importer.Format(req.Format))
	if err != nil {
		return nil, mapError(err)
	}
	return &ExportDocumentResponse{Document: data}, nil
}

func toEntry(in EntryInput) domain.Entry {
	return domain.Entry{
		ID:        strings.TrimSpace(in.ID),
		Bank:      in.Bank,
		Source:    in.Source,
		Date:      strings.TrimSpace(in.Date),
		Invested:  domain.ToNumber(in.Invested),
		InAccount: domain.ToNumber(in.InAccount),
		CashFlow:  domain.ToNumber(in.CashFlow),
	}
}

// toExpense reads the value like every other amount; only a blank value is refused
func toExpense(in ExpenseInput) (domain.Expense, error) {
	if strings.TrimSpace(in.Value) == "" {
		return domain.Expense{}, fmt.Errorf("%w: value is required", domain.ErrInvalidInput)
	}

	return domain.Expense{
		ID:          strings.TrimSpace(in.ID),
		Date:        strings.TrimSpace(in.Date),
		Description: in.Description,
		Value:       domain.ToNumber(in.Value),
		Categories:  in.Categories,
		Sources:     in.Sources,
	}, nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var validation *importer.ValidationError
	switch {
	case errors.As(err, &validation):
		return status.Error(codes.InvalidArgument, validation.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
