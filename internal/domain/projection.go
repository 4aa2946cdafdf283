package domain

// ProjectionForm holds the user-editable simulation parameters.
// Percent fields are whole percents (1.25 means 1.25%).
type ProjectionForm struct {
	InitialBalance        float64 `json:"initialBalance"`
	MonthlyContribution   float64 `json:"monthlyContribution"`
	HorizonMonths         int     `json:"horizonMonths"`
	MonthlyReturnPct      float64 `json:"monthlyReturnPct"`
	InflationPct          float64 `json:"inflationPct"`
	ContributionGrowthPct float64 `json:"contributionGrowthPct"`
	GoalAmount            float64 `json:"goalAmount"`
	WithdrawalRatePct     float64 `json:"withdrawalRatePct"`
}

// MaxHorizonMonths bounds the simulated horizon (100 years)
const MaxHorizonMonths = 1200

// Clamp floors balance, contribution and horizon at zero, caps the horizon
// at MaxHorizonMonths and maps non-finite numbers to zero.
// Callers apply it before simulating.
func (f ProjectionForm) Clamp() ProjectionForm {
	f.InitialBalance = max(FiniteOrZero(f.InitialBalance), 0)
	f.MonthlyContribution = max(FiniteOrZero(f.MonthlyContribution), 0)
	f.HorizonMonths = min(max(f.HorizonMonths, 0), MaxHorizonMonths)
	f.MonthlyReturnPct = FiniteOrZero(f.MonthlyReturnPct)
	f.InflationPct = FiniteOrZero(f.InflationPct)
	f.ContributionGrowthPct = FiniteOrZero(f.ContributionGrowthPct)
	f.GoalAmount = FiniteOrZero(f.GoalAmount)
	f.WithdrawalRatePct = FiniteOrZero(f.WithdrawalRatePct)
	return f
}

// DefaultProjectionForm is the form seeded into new documents
func DefaultProjectionForm() ProjectionForm {
	return ProjectionForm{
		HorizonMonths:         120,
		MonthlyReturnPct:      0.8,
		InflationPct:          4.5,
		ContributionGrowthPct: 0,
		WithdrawalRatePct:     0.5,
	}
}

// Checkpoint is a yearly (or final) snapshot of the projection.
type Checkpoint struct {
	Month             int     `json:"month"`
	Balance           float64 `json:"balance"`
	ContributionTotal float64 `json:"contributionTotal"`
	MonthlyYield      float64 `json:"monthlyYield"`
}

// ProjectionResult is the outcome of a simulation.
type ProjectionResult struct {
	NominalBalance    float64      `json:"nominalBalance"`
	RealBalance       float64      `json:"realBalance"`
	TotalContribution float64      `json:"totalContribution"`
	TotalYield        float64      `json:"totalYield"`
	AnnualReturnRate  float64      `json:"annualReturnRate"`
	Checkpoints       []Checkpoint `json:"checkpoints"`
	GoalMonths        *int         `json:"goalMonths"`
	PassiveIncome     float64      `json:"passiveIncome"`
}
