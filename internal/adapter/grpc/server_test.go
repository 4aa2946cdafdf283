package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/wealthtrack/internal/adapter/repository/memory"
	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/dashboard"
	"github.com/simaogato/wealthtrack/internal/usecase/expense"
	"github.com/simaogato/wealthtrack/internal/usecase/importer"
	"github.com/simaogato/wealthtrack/internal/usecase/investment"
	"github.com/simaogato/wealthtrack/internal/usecase/store"
)

const testToken = "test-token"

func setupClient(t *testing.T) *Client {
	t.Helper()

	logger := log.Discard()
	st := store.NewStore(memory.NewDocumentRepository(), logger)
	srv := NewServer(
		investment.NewInvestmentService(st, logger),
		expense.NewExpenseService(st, logger),
		dashboard.NewDashboardService(st, logger, 8, time.Minute),
		importer.NewImportService(st, logger),
	)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		AuthInterceptor(testToken),
	))
	RegisterWealthTrackServiceServer(grpcServer, srv)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func authed() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", testToken)
}

func TestServer_RejectsMissingToken(t *testing.T) {
	client := setupClient(t)

	_, err := client.GetInvestmentOverview(context.Background(), &GetInvestmentOverviewRequest{})

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_EntryLifecycle(t *testing.T) {
	client := setupClient(t)
	ctx := authed()

	first, err := client.AddEntry(ctx, &AddEntryRequest{Entry: EntryInput{
		Bank: "Inter", Source: "Salário", Date: "2025-01-10", Invested: "1000", CashFlow: "1000",
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, first.Entry.ID)

	_, err = client.AddEntry(ctx, &AddEntryRequest{Entry: EntryInput{
		Bank: "Inter", Date: "2025-02-10", Invested: "1.050,50",
	}})
	require.NoError(t, err)

	resp, err := client.GetInvestmentOverview(ctx, &GetInvestmentOverviewRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Overview.Entries, 2)
	second := resp.Overview.Entries[1]
	require.True(t, second.YieldValue.Valid)
	assert.Equal(t, "50.5", second.YieldValue.Decimal.String())
	assert.Len(t, resp.Overview.Timeline, 2)

	_, err = client.RemoveEntry(ctx, &RemoveEntryRequest{EntryID: first.Entry.ID})
	require.NoError(t, err)

	_, err = client.RemoveEntry(ctx, &RemoveEntryRequest{EntryID: first.Entry.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_AddEntryReadsBrazilianAmounts(t *testing.T) {
	client := setupClient(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands and cents", "1.234,56", "1234.56"},
		{"dot is a thousands separator", "1.234", "1234"},
		{"currency symbol", "R$ 10", "10"},
		{"no digits", "mil reais", "0"},
		{"blank", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.AddEntry(authed(), &AddEntryRequest{Entry: EntryInput{
				Bank: "Inter", Date: "2025-01-10", Invested: tt.input,
			}})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Entry.Invested.String())
		})
	}
}

func TestServer_LogExpenseReadsBrazilianValue(t *testing.T) {
	client := setupClient(t)

	resp, err := client.LogExpense(authed(), &LogExpenseRequest{Expense: ExpenseInput{
		Date: "2025-03-05", Description: "Aluguel", Value: "-1.500,00",
	}})

	require.NoError(t, err)
	assert.True(t, resp.Expense.Value.Equal(decimal.NewFromInt(-1500)))
}

func TestServer_UpdateEntryRequiresID(t *testing.T) {
	client := setupClient(t)

	_, err := client.UpdateEntry(authed(), &UpdateEntryRequest{Entry: EntryInput{Bank: "Inter", Date: "2025-01-10"}})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_ExpenseLifecycle(t *testing.T) {
	client := setupClient(t)
	ctx := authed()

	logged, err := client.LogExpense(ctx, &LogExpenseRequest{Expense: ExpenseInput{
		Date: "2025-03-05", Description: "Mercado", Value: "-250,40", Categories: []string{"Alimentação"},
	}})
	require.NoError(t, err)

	updated, err := client.UpdateExpense(ctx, &UpdateExpenseRequest{Expense: ExpenseInput{
		ID: logged.Expense.ID, Date: "2025-03-05", Description: "Feira", Value: "-250,40",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Feira", updated.Expense.Description)

	resp, err := client.GetExpenseOverview(ctx, &GetExpenseOverviewRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Overview.Months, 1)
	assert.Equal(t, "250.4", resp.Overview.Months[0].Spent.String())

	_, err = client.RemoveExpense(ctx, &RemoveExpenseRequest{ExpenseID: logged.Expense.ID})
	require.NoError(t, err)
}

func TestServer_LogExpenseRequiresValue(t *testing.T) {
	client := setupClient(t)

	_, err := client.LogExpense(authed(), &LogExpenseRequest{Expense: ExpenseInput{
		Date: "2025-03-05", Description: "Mercado",
	}})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_SimulateAndSaveForm(t *testing.T) {
	client := setupClient(t)
	ctx := authed()

	form := domain.ProjectionForm{InitialBalance: 1000, MonthlyContribution: 100, HorizonMonths: 12}
	sim, err := client.Simulate(ctx, &SimulateRequest{Form: &form})
	require.NoError(t, err)
	assert.Equal(t, 12, sim.Projection.Form.HorizonMonths)
	assert.InDelta(t, 2200, sim.Projection.Result.NominalBalance, 0.001)

	saved, err := client.SaveProjectionForm(ctx, &SaveProjectionFormRequest{Form: domain.ProjectionForm{
		InitialBalance: -5, HorizonMonths: 24,
	}})
	require.NoError(t, err)
	assert.Zero(t, saved.Form.InitialBalance)

	stored, err := client.Simulate(ctx, &SimulateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 24, stored.Projection.Form.HorizonMonths)
}

func TestServer_SimulateCapsHorizon(t *testing.T) {
	client := setupClient(t)

	sim, err := client.Simulate(authed(), &SimulateRequest{Form: &domain.ProjectionForm{HorizonMonths: 300_000_000}})

	require.NoError(t, err)
	assert.Equal(t, domain.MaxHorizonMonths, sim.Projection.Form.HorizonMonths)
	assert.Len(t, sim.Projection.Result.Checkpoints, domain.MaxHorizonMonths/12)
}

func TestServer_ImportExport(t *testing.T) {
	client := setupClient(t)
	ctx := authed()

	payload := `{"version": 3, "inputs": [{"entries": [
		{"id": "a", "bank": "XP", "date": "2025-01-01", "invested": 500, "inAccount": 0, "cashFlow": 500}
	]}]}`
	imported, err := client.ImportDocument(ctx, &ImportDocumentRequest{Data: []byte(payload)})
	require.NoError(t, err)
	assert.Equal(t, "investimentos", imported.Kind)
	assert.Equal(t, 1, imported.Entries)

	exported, err := client.ExportDocument(ctx, &ExportDocumentRequest{})
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(exported.Document, &out))
	assert.Equal(t, "unified", out["type"])

	_, err = client.ExportDocument(ctx, &ExportDocumentRequest{Format: "xml"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_ImportRejectsInvalidPayload(t *testing.T) {
	client := setupClient(t)

	_, err := client.ImportDocument(authed(), &ImportDocumentRequest{Data: []byte(`{"version": 9, "inputs": []}`)})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"invalid input", fmt.Errorf("%w: bank", domain.ErrInvalidInput), codes.InvalidArgument},
		{"not found", fmt.Errorf("entry x: %w", domain.ErrNotFound), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"other", errors.New("disk on fire"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(mapError(tt.err)))
		})
	}
	assert.NoError(t, mapError(nil))
}
