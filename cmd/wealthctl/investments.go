package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/report"
)

type entriesCmd struct {
	remote
}

func (*entriesCmd) Name() string     { return "entries" }
func (*entriesCmd) Synopsis() string { return "list investment entries with their yield" }
func (*entriesCmd) Usage() string {
	return `wealthctl entries

  Lists every entry with the yield against the previous entry of its bank.
`
}

func (c *entriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.GetInvestmentOverview(ctx, &grpcadapter.GetInvestmentOverviewRequest{})
	if err != nil {
		fail("load investments: %v", err)
		return subcommands.ExitFailure
	}
	c.printMarkdown(report.Entries(resp.Overview.Entries))
	return subcommands.ExitSuccess
}

type timelineCmd struct {
	remote
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display investment totals and the monthly timeline" }
func (*timelineCmd) Usage() string {
	return `wealthctl timeline

  Displays totals, the current balance per bank and the month by month evolution.
`
}

func (c *timelineCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.GetInvestmentOverview(ctx, &grpcadapter.GetInvestmentOverviewRequest{})
	if err != nil {
		fail("load investments: %v", err)
		return subcommands.ExitFailure
	}
	c.printMarkdown(report.Investments(resp.Overview))
	return subcommands.ExitSuccess
}

type addEntryCmd struct {
	remote
	entry grpcadapter.EntryInput
}

func (*addEntryCmd) Name() string     { return "add-entry" }
func (*addEntryCmd) Synopsis() string { return "record an investment entry" }
func (*addEntryCmd) Usage() string {
	return `wealthctl add-entry -bank <bank> -date <yyyy-mm-dd> [-invested n] [-in-account n] [-cash-flow n] [-source s]

  Records the balance of a bank account on a date.
`
}

func (c *addEntryCmd) SetFlags(f *flag.FlagSet) {
	c.remote.SetFlags(f)
	f.StringVar(&c.entry.Bank, "bank", "", "Bank or account name")
	f.StringVar(&c.entry.Source, "source", "", "Source of the money")
	f.StringVar(&c.entry.Date, "date", "", "Entry date (yyyy-mm-dd)")
	f.StringVar(&c.entry.Invested, "invested", "0", "Amount invested, like 1.234,56")
	f.StringVar(&c.entry.InAccount, "in-account", "0", "Amount idle in the account")
	f.StringVar(&c.entry.CashFlow, "cash-flow", "0", "Money moved in (positive) or out (negative) since the previous entry")
}

func (c *addEntryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.AddEntry(ctx, &grpcadapter.AddEntryRequest{Entry: c.entry})
	if err != nil {
		fail("add entry: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Entry %s recorded\n", resp.Entry.ID)
	return subcommands.ExitSuccess
}
