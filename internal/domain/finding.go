package domain

import "github.com/shopspring/decimal"

// FindingCategory names one of the analyzer domains.
type FindingCategory string

const (
	CategoryCashflow    FindingCategory = "CASHFLOW"
	CategoryDebt        FindingCategory = "DEBT"
	CategoryInvestment  FindingCategory = "INVESTMENT"
	CategoryProperty    FindingCategory = "PROPERTY"
	CategoryRisk        FindingCategory = "RISK"
	CategoryLiquidity   FindingCategory = "LIQUIDITY"
	CategoryTax         FindingCategory = "TAX"
	CategoryTimeHorizon FindingCategory = "TIME_HORIZON"
)

// Severity grades how pressing a finding is.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityUrgent  Severity = "URGENT"
)

// MaxFindingScore bounds the strategy benefit score.
var MaxFindingScore = decimal.NewFromInt(100)

// StrategyFinding is the atomic output of one analyzer. Score is the
// strategy benefit score in [0,100]; Confidence is a fraction in [0,1].
// ProjectedBenefit is a signed annual currency amount; negative values
// are costs.
type StrategyFinding struct {
	Category         FindingCategory `json:"category"`
	Severity         Severity        `json:"severity"`
	Title            string          `json:"title"`
	Summary          string          `json:"summary"`
	Detail           string          `json:"detail"`
	Score            decimal.Decimal `json:"score"`
	Confidence       decimal.Decimal `json:"confidence"`
	ProjectedBenefit decimal.Decimal `json:"projected_benefit"`
	AffectedEntities []string        `json:"affected_entities"`
	ActionSteps      []string        `json:"action_steps"`
}

// PrimaryEntity returns the first affected entity id, or "general" when the
// finding is not tied to a specific entity.
func (f *StrategyFinding) PrimaryEntity() string {
	if len(f.AffectedEntities) > 0 {
		return f.AffectedEntities[0]
	}
	return "general"
}

// SemanticKey identifies the finding for deduplication: category plus
// primary affected entity.
func (f *StrategyFinding) SemanticKey() string {
	return string(f.Category) + ":" + f.PrimaryEntity()
}

// Clamp bounds Score to [0,100] and Confidence to [0,1]. Analyzers call it
// before emitting so pipeline invariants hold regardless of rule math.
func (f *StrategyFinding) Clamp() {
	if f.Score.LessThan(decimal.Zero) {
		f.Score = decimal.Zero
	}
	if f.Score.GreaterThan(MaxFindingScore) {
		f.Score = MaxFindingScore
	}
	if f.Confidence.LessThan(decimal.Zero) {
		f.Confidence = decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if f.Confidence.GreaterThan(one) {
		f.Confidence = one
	}
}
