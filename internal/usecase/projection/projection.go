// Package projection simulates compound growth of a portfolio.
package projection

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// MaxGoalMonths bounds the time-to-goal search.
const MaxGoalMonths = 600

// MonthlyRate converts an annual rate to its compounded monthly equivalent.
func MonthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}

// Simulate runs the projection described by form.
// Non-finite inputs are treated as zero; it never fails.
func Simulate(form domain.ProjectionForm) domain.ProjectionResult {
	balance := domain.FiniteOrZero(form.InitialBalance)
	contribution := domain.FiniteOrZero(form.MonthlyContribution)
	horizon := min(form.HorizonMonths, domain.MaxHorizonMonths)
	monthlyReturn := domain.FiniteOrZero(form.MonthlyReturnPct) / 100
	inflation := MonthlyRate(domain.FiniteOrZero(form.InflationPct) / 100)
	growth := MonthlyRate(domain.FiniteOrZero(form.ContributionGrowthPct) / 100)
	goal := domain.FiniteOrZero(form.GoalAmount)
	withdrawal := domain.FiniteOrZero(form.WithdrawalRatePct) / 100

	result := domain.ProjectionResult{
		AnnualReturnRate: math.Pow(1+monthlyReturn, 12) - 1,
		Checkpoints:      []domain.Checkpoint{},
	}

	totalContribution := balance
	if horizon > 0 {
		monthly := contribution
		for month := 1; month <= horizon; month++ {
			balance += monthly
			totalContribution += monthly
			balance *= 1 + monthlyReturn

			if month%12 == 0 || month == horizon {
				result.Checkpoints = append(result.Checkpoints, domain.Checkpoint{
					Month:             month,
					Balance:           balance,
					ContributionTotal: totalContribution,
					MonthlyYield:      balance * monthlyReturn,
				})
			}
			if month < horizon {
				monthly *= 1 + growth
			}
		}
	}

	result.NominalBalance = balance
	result.TotalContribution = totalContribution
	if horizon > 0 {
		result.TotalYield = balance - totalContribution
		result.RealBalance = balance / math.Pow(1+inflation, float64(horizon))
	} else {
		result.RealBalance = balance
	}

	result.GoalMonths = GoalMonths(domain.FiniteOrZero(form.InitialBalance), contribution, monthlyReturn, growth, goal)

	if goal > 0 && balance >= goal {
		result.PassiveIncome = goal * withdrawal
	} else {
		result.PassiveIncome = balance * withdrawal
	}
	return result
}

// GoalMonths counts the months needed for balance to reach goal, starting
// from the initial balance and the ungrown contribution. Rates are monthly
// decimals. It returns nil for a non-positive goal or when the goal is not
// reached within MaxGoalMonths.
func GoalMonths(initial, contribution, monthlyReturn, growth, goal float64) *int {
	if goal <= 0 {
		return nil
	}
	if initial >= goal {
		months := 0
		return &months
	}

	balance, monthly := initial, contribution
	for month := 1; month <= MaxGoalMonths; month++ {
		balance = (balance + monthly) * (1 + monthlyReturn)
		if balance >= goal {
			return &month
		}
		monthly *= 1 + growth
	}
	return nil
}

// SuggestForm pre-fills base with the current balance across banks and the
// mean monthly cash flow of the timeline. Other fields are kept.
func SuggestForm(rows []domain.TimelineRow, latest []domain.DerivedEntry, base domain.ProjectionForm) domain.ProjectionForm {
	current := decimal.Zero
	for _, e := range latest {
		current = current.Add(e.ComputedTotal)
	}
	base.InitialBalance = current.InexactFloat64()

	if len(rows) > 0 {
		flow := decimal.Zero
		for _, r := range rows {
			flow = flow.Add(r.CashFlow)
		}
		base.MonthlyContribution = flow.Div(decimal.NewFromInt(int64(len(rows)))).Round(2).InexactFloat64()
	}
	return base.Clamp()
}
