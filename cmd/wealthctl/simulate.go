package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/report"
)

type simulateCmd struct {
	remote
	form    domain.ProjectionForm
	stored  bool
	suggest bool
	save    bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "project the portfolio balance over time" }
func (*simulateCmd) Usage() string {
	return `wealthctl simulate [-stored] [-suggest] [-initial n] [-monthly n] [-months n] [-return pct] [-inflation pct] [-growth pct] [-goal n] [-withdrawal pct] [-save]

  Simulates compound growth with monthly contributions. Without -stored the
  flags define the form; -suggest fills balance and contribution from history.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.remote.SetFlags(f)
	def := domain.DefaultProjectionForm()
	f.BoolVar(&c.stored, "stored", false, "Simulate the saved form and ignore the form flags")
	f.BoolVar(&c.suggest, "suggest", false, "Use balance and contribution suggested from history")
	f.BoolVar(&c.save, "save", false, "Save the form as the default")
	f.Float64Var(&c.form.InitialBalance, "initial", 0, "Initial balance")
	f.Float64Var(&c.form.MonthlyContribution, "monthly", 0, "Monthly contribution")
	f.IntVar(&c.form.HorizonMonths, "months", def.HorizonMonths, "Horizon in months")
	f.Float64Var(&c.form.MonthlyReturnPct, "return", def.MonthlyReturnPct, "Monthly return, in percent")
	f.Float64Var(&c.form.InflationPct, "inflation", def.InflationPct, "Annual inflation, in percent")
	f.Float64Var(&c.form.ContributionGrowthPct, "growth", def.ContributionGrowthPct, "Annual contribution growth, in percent")
	f.Float64Var(&c.form.GoalAmount, "goal", 0, "Goal balance")
	f.Float64Var(&c.form.WithdrawalRatePct, "withdrawal", def.WithdrawalRatePct, "Monthly withdrawal rate for passive income, in percent")
}

func (c *simulateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	req := &grpcadapter.SimulateRequest{}
	if !c.stored {
		req.Form = &c.form
	}
	if c.suggest {
		first, err := client.Simulate(ctx, req)
		if err != nil {
			fail("simulate: %v", err)
			return subcommands.ExitFailure
		}
		form := first.Projection.Form
		form.InitialBalance = first.Projection.Suggested.InitialBalance
		form.MonthlyContribution = first.Projection.Suggested.MonthlyContribution
		req.Form = &form
	}

	resp, err := client.Simulate(ctx, req)
	if err != nil {
		fail("simulate: %v", err)
		return subcommands.ExitFailure
	}

	if c.save {
		if _, err := client.SaveProjectionForm(ctx, &grpcadapter.SaveProjectionFormRequest{Form: resp.Projection.Form}); err != nil {
			fail("save form: %v", err)
			return subcommands.ExitFailure
		}
	}
	c.printMarkdown(report.Projection(resp.Projection))
	return subcommands.ExitSuccess
}
