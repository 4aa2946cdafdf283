//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/domain"
)

var grpcClient *grpcadapter.Client

// baseline replaces both areas so every run starts from the same ledger
const baseline = `{
  "type": "unified",
  "version": 3,
  "investimentos": {
    "banks": [{"name": "Inter", "color": "hsl(4, 65%, 55%)"}],
    "sources": [],
    "entries": [
      {"id": "e2e-1", "bank": "Inter", "source": "Salário", "date": "2025-01-10", "invested": 1000, "inAccount": 0, "cashFlow": 1000},
      {"id": "e2e-2", "bank": "Inter", "source": "Salário", "date": "2025-03-10", "invested": 1100, "inAccount": 20, "cashFlow": 100}
    ]
  },
  "gastos": {
    "categories": [],
    "sources": [],
    "expenses": [
      {"id": "g-1", "date": "2025-03-02", "description": "Aluguel", "value": -1500, "categories": ["Moradia"]},
      {"id": "g-2", "date": "2025-03-05", "description": "Salário", "value": 5000}
    ]
  }
}`

// TestMain connects to a running server
func TestMain(m *testing.M) {
	conn, err := grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}
	grpcClient = grpcadapter.NewClient(conn)

	code := m.Run()

	_ = conn.Close()
	os.Exit(code)
}

func getAuthContext() context.Context {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", token)
}

func getGRPCAddress() string {
	addr := os.Getenv("GRPC_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}
	return addr
}

func resetDocument(t *testing.T) {
	t.Helper()
	_, err := grpcClient.ImportDocument(getAuthContext(), &grpcadapter.ImportDocumentRequest{Data: []byte(baseline)})
	require.NoError(t, err)
}

// TestEndToEndFlow covers import, a new entry and the derived yield
func TestEndToEndFlow(t *testing.T) {
	resetDocument(t)
	ctx := getAuthContext()

	_, err := grpcClient.AddEntry(ctx, &grpcadapter.AddEntryRequest{Entry: grpcadapter.EntryInput{
		Bank: "Inter", Source: "Salário", Date: "2025-04-10", Invested: "1200", InAccount: "0", CashFlow: "50",
	}})
	require.NoError(t, err)

	resp, err := grpcClient.GetInvestmentOverview(ctx, &grpcadapter.GetInvestmentOverviewRequest{})
	require.NoError(t, err)
	ov := resp.Overview

	require.Len(t, ov.Entries, 3)
	assert.False(t, ov.Entries[0].YieldValue.Valid)
	assert.Equal(t, "20", ov.Entries[1].YieldValue.Decimal.String(), "1120 - (1000 + 100)")
	assert.Equal(t, "30", ov.Entries[2].YieldValue.Decimal.String(), "1200 - (1120 + 50)")

	require.Len(t, ov.Timeline, 4, "jan through apr with february zero-filled")
	assert.Equal(t, "fev/2025", ov.Timeline[1].Label)
	assert.Empty(t, ov.Timeline[1].Sources)

	require.Len(t, ov.Latest, 1)
	assert.Equal(t, "1200", ov.Latest[0].ComputedTotal.String())
}

// TestExpenseFlow covers expense aggregation per month and category
func TestExpenseFlow(t *testing.T) {
	resetDocument(t)
	ctx := getAuthContext()

	_, err := grpcClient.LogExpense(ctx, &grpcadapter.LogExpenseRequest{Expense: grpcadapter.ExpenseInput{
		Date: "2025-03-20", Description: "Mercado", Value: "-300", Categories: []string{"Alimentação", "Moradia"},
	}})
	require.NoError(t, err)

	resp, err := grpcClient.GetExpenseOverview(ctx, &grpcadapter.GetExpenseOverviewRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Overview.Months, 1)

	march := resp.Overview.Months[0]
	assert.Equal(t, "1800", march.Spent.String())
	assert.Equal(t, "5000", march.Earned.String())
	assert.Equal(t, "3200", march.Net.String())
	assert.Equal(t, 3, march.Count)
}

// TestProjectionFlow saves a form and simulates it
func TestProjectionFlow(t *testing.T) {
	ctx := getAuthContext()

	_, err := grpcClient.SaveProjectionForm(ctx, &grpcadapter.SaveProjectionFormRequest{Form: domain.ProjectionForm{
		InitialBalance: 1000, MonthlyContribution: 100, HorizonMonths: 24, GoalAmount: 2000,
	}})
	require.NoError(t, err)

	resp, err := grpcClient.Simulate(ctx, &grpcadapter.SimulateRequest{})
	require.NoError(t, err)

	result := resp.Projection.Result
	assert.InDelta(t, 3400, result.NominalBalance, 0.001)
	require.Len(t, result.Checkpoints, 2)
	require.NotNil(t, result.GoalMonths)
	assert.Equal(t, 10, *result.GoalMonths)
}

// TestExportRoundTrip re-imports an export and expects the same ledger
func TestExportRoundTrip(t *testing.T) {
	resetDocument(t)
	ctx := getAuthContext()

	exported, err := grpcClient.ExportDocument(ctx, &grpcadapter.ExportDocumentRequest{})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(exported.Document, &out))
	assert.Equal(t, "unified", out["type"])

	imported, err := grpcClient.ImportDocument(ctx, &grpcadapter.ImportDocumentRequest{Data: exported.Document})
	require.NoError(t, err)
	assert.Equal(t, 2, imported.Entries)
	assert.Equal(t, 2, imported.Expenses)
}

// TestNegativeScenarios covers rejected calls
func TestNegativeScenarios(t *testing.T) {
	ctx := getAuthContext()

	t.Run("Missing token", func(t *testing.T) {
		_, err := grpcClient.GetInvestmentOverview(context.Background(), &grpcadapter.GetInvestmentOverviewRequest{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("Invalid entry date", func(t *testing.T) {
		_, err := grpcClient.AddEntry(ctx, &grpcadapter.AddEntryRequest{Entry: grpcadapter.EntryInput{Bank: "Inter", Date: "10/01/2025"}})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Unknown expense", func(t *testing.T) {
		_, err := grpcClient.RemoveExpense(ctx, &grpcadapter.RemoveExpenseRequest{ExpenseID: "does-not-exist"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("Invalid import", func(t *testing.T) {
		_, err := grpcClient.ImportDocument(ctx, &grpcadapter.ImportDocumentRequest{Data: []byte(`{"version": 1, "entries": []}`)})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
