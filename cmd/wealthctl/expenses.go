package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/report"
)

type expensesCmd struct {
	remote
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "display expense totals and the monthly timeline" }
func (*expensesCmd) Usage() string {
	return `wealthctl expenses

  Displays spent and earned totals, month by month, and the categories of the last month.
`
}

func (c *expensesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.GetExpenseOverview(ctx, &grpcadapter.GetExpenseOverviewRequest{})
	if err != nil {
		fail("load expenses: %v", err)
		return subcommands.ExitFailure
	}
	c.printMarkdown(report.Expenses(resp.Overview))
	return subcommands.ExitSuccess
}

type logExpenseCmd struct {
	remote
	expense    grpcadapter.ExpenseInput
	categories string
	sources    string
}

func (*logExpenseCmd) Name() string     { return "log-expense" }
func (*logExpenseCmd) Synopsis() string { return "record an expense or income" }
func (*logExpenseCmd) Usage() string {
	return `wealthctl log-expense -date <yyyy-mm-dd> -desc <text> -value <n> [-categories a,b] [-sources a,b]

  Records an expense (negative value) or income (positive value).
`
}

func (c *logExpenseCmd) SetFlags(f *flag.FlagSet) {
	c.remote.SetFlags(f)
	f.StringVar(&c.expense.Date, "date", "", "Expense date (yyyy-mm-dd)")
	f.StringVar(&c.expense.Description, "desc", "", "Description")
	f.StringVar(&c.expense.Value, "value", "", "Value like -1.234,56, negative for money out")
	f.StringVar(&c.categories, "categories", "", "Comma separated categories")
	f.StringVar(&c.sources, "sources", "", "Comma separated sources")
}

func (c *logExpenseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.expense.Categories = splitList(c.categories)
	c.expense.Sources = splitList(c.sources)

	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.LogExpense(ctx, &grpcadapter.LogExpenseRequest{Expense: c.expense})
	if err != nil {
		fail("log expense: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Expense %s recorded\n", resp.Expense.ID)
	return subcommands.ExitSuccess
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
