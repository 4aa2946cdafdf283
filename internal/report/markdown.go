// Package report renders dashboard views as markdown for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/usecase/dashboard"
)

// Render renders markdown for a terminal of the given width.
// style is a glamour standard style name; empty picks one from the terminal.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Entries lists derived entries with their yield
func Entries(entries []domain.DerivedEntry) string {
	var b strings.Builder
	b.WriteString("# Lançamentos\n\n")
	if len(entries) == 0 {
		b.WriteString("Nenhum lançamento.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		yield := "-"
		if e.YieldValue.Valid {
			yield = BRL(e.YieldValue.Decimal)
		}
		rows = append(rows, []string{
			e.Date, e.Bank, e.Source,
			BRL(e.Invested), BRL(e.InAccount), BRL(e.CashFlow),
			BRL(e.ComputedTotal), yield, Percent(e.YieldPct),
		})
	}
	table(&b, []string{"Data", "Banco", "Fonte", "Investido", "Em conta", "Aporte", "Total", "Rendimento", "%"}, rows)
	return b.String()
}

// Investments summarizes totals, current balances and the monthly timeline
func Investments(v *dashboard.InvestmentOverview) string {
	var b strings.Builder
	b.WriteString("# Investimentos\n\n")
	fmt.Fprintf(&b, "- Investido: %s\n", BRL(v.Totals.TotalInvested))
	fmt.Fprintf(&b, "- Em conta: %s\n", BRL(v.Totals.TotalInAccount))
	fmt.Fprintf(&b, "- Aportes: %s\n", BRL(v.Totals.TotalInput))
	fmt.Fprintf(&b, "- Rendimento: %s\n\n", BRL(v.Totals.TotalYieldValue))

	if len(v.Latest) > 0 {
		b.WriteString("## Saldo atual\n\n")
		rows := make([][]string, 0, len(v.Latest))
		for _, e := range v.Latest {
			rows = append(rows, []string{e.Bank, e.Date, BRL(e.ComputedTotal)})
		}
		table(&b, []string{"Banco", "Data", "Total"}, rows)
	}

	b.WriteString("## Evolução mensal\n\n")
	if len(v.Timeline) == 0 {
		b.WriteString("Sem dados.\n")
		return b.String()
	}
	rows := make([][]string, 0, len(v.Timeline))
	for _, r := range v.Timeline {
		rows = append(rows, []string{
			r.Label, BRL(r.Total()), BRL(r.CashFlow), BRL(r.YieldValue), Percent(r.YieldPct),
		})
	}
	table(&b, []string{"Mês", "Total", "Aportes", "Rendimento", "%"}, rows)
	return b.String()
}

// Expenses summarizes totals and the monthly expense timeline
func Expenses(v *dashboard.ExpenseOverview) string {
	var b strings.Builder
	b.WriteString("# Gastos\n\n")
	fmt.Fprintf(&b, "- Gasto: %s\n", BRL(v.Totals.TotalSpent))
	fmt.Fprintf(&b, "- Recebido: %s\n", BRL(v.Totals.TotalEarned))
	fmt.Fprintf(&b, "- Saldo: %s\n\n", BRL(v.Totals.Balance))

	if len(v.Timeline) == 0 {
		b.WriteString("Sem dados.\n")
		return b.String()
	}
	rows := make([][]string, 0, len(v.Timeline))
	for _, r := range v.Timeline {
		rows = append(rows, []string{
			r.Label, BRL(r.Spent), BRL(r.Earned), BRL(r.Net), strconv.Itoa(r.Count),
		})
	}
	table(&b, []string{"Mês", "Gasto", "Recebido", "Saldo", "Lançamentos"}, rows)

	last := v.Months[len(v.Months)-1]
	if len(last.Categories) > 0 {
		fmt.Fprintf(&b, "## Categorias em %s\n\n", last.Month)
		rows := make([][]string, 0, len(last.Categories))
		for _, c := range last.Categories {
			rows = append(rows, []string{c.Name, BRL(c.Spent), BRL(c.Earned)})
		}
		table(&b, []string{"Categoria", "Gasto", "Recebido"}, rows)
	}
	return b.String()
}

// Projection shows the simulated form, its outcome and yearly checkpoints
func Projection(v *dashboard.ProjectionView) string {
	f, r := v.Form, v.Result

	var b strings.Builder
	b.WriteString("# Projeção\n\n")
	fmt.Fprintf(&b, "- Saldo inicial: %s\n", BRLFloat(f.InitialBalance))
	fmt.Fprintf(&b, "- Aporte mensal: %s\n", BRLFloat(f.MonthlyContribution))
	fmt.Fprintf(&b, "- Prazo: %d meses\n", f.HorizonMonths)
	fmt.Fprintf(&b, "- Rentabilidade: %s a.m. (%s a.a.)\n", PercentFloat(f.MonthlyReturnPct), PercentFloat(r.AnnualReturnRate*100))
	fmt.Fprintf(&b, "- Inflação: %s a.a.\n\n", PercentFloat(f.InflationPct))

	b.WriteString("## Resultado\n\n")
	fmt.Fprintf(&b, "- Saldo nominal: %s\n", BRLFloat(r.NominalBalance))
	fmt.Fprintf(&b, "- Saldo real: %s\n", BRLFloat(r.RealBalance))
	fmt.Fprintf(&b, "- Total aportado: %s\n", BRLFloat(r.TotalContribution))
	fmt.Fprintf(&b, "- Rendimento total: %s\n", BRLFloat(r.TotalYield))
	fmt.Fprintf(&b, "- Renda passiva: %s/mês\n", BRLFloat(r.PassiveIncome))
	switch {
	case f.GoalAmount <= 0:
	case r.GoalMonths == nil:
		fmt.Fprintf(&b, "- Meta de %s: não atingida\n", BRLFloat(f.GoalAmount))
	default:
		fmt.Fprintf(&b, "- Meta de %s: %d meses\n", BRLFloat(f.GoalAmount), *r.GoalMonths)
	}
	b.WriteString("\n")

	if len(r.Checkpoints) > 0 {
		rows := make([][]string, 0, len(r.Checkpoints))
		for _, c := range r.Checkpoints {
			rows = append(rows, []string{
				strconv.Itoa(c.Month), BRLFloat(c.Balance), BRLFloat(c.ContributionTotal), BRLFloat(c.MonthlyYield),
			})
		}
		table(&b, []string{"Mês", "Saldo", "Aportado", "Rendimento mensal"}, rows)
	}

	s := v.Suggested
	fmt.Fprintf(&b, "Sugestão pelo histórico: saldo inicial %s, aporte mensal %s.\n",
		BRLFloat(s.InitialBalance), BRLFloat(s.MonthlyContribution))
	return b.String()
}

func table(b *strings.Builder, header []string, rows [][]string) {
	writeRow(b, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)
	for _, r := range rows {
		writeRow(b, r)
	}
	b.WriteString("\n")
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
