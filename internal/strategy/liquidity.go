package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

var (
	liquidShareFloor  = decimal.NewFromFloat(0.05)
	idleCashThreshold = decimal.NewFromInt(20000)
)

// LiquidityAnalyzer checks the liquid share of total assets and spots idle
// cash earning nothing in transaction accounts.
type LiquidityAnalyzer struct{}

func NewLiquidityAnalyzer() *LiquidityAnalyzer { return &LiquidityAnalyzer{} }

func (a *LiquidityAnalyzer) Name() string { return "liquidity" }

func (a *LiquidityAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	if metrics.TotalAssets.GreaterThan(decimalZero) {
		liquidShare := snapshot.LiquidCash().Div(metrics.TotalAssets)
		if liquidShare.LessThan(liquidShareFloor) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryLiquidity,
				Severity:         domain.SeverityWarning,
				Title:            "Assets are illiquid",
				Summary:          fmt.Sprintf("Only %s%% of assets can be accessed quickly.", liquidShare.Mul(decimal.NewFromInt(100)).StringFixed(1)),
				Detail:           "Property-heavy balance sheets can force distressed sales when cash is needed; a liquid sleeve avoids that.",
				Score:            score(55),
				Confidence:       confidence(0.75),
				ProjectedBenefit: decimalZero,
				AffectedEntities: []string{"portfolio"},
				ActionSteps: []string{
					"Hold new surplus in cash or listed assets until the liquid share recovers",
				},
			})
		}
	}

	hasOffsetCapacity := false
	for _, loan := range snapshot.Loans {
		if loan.Principal.GreaterThan(decimalZero) {
			hasOffsetCapacity = true
			break
		}
	}

	for _, account := range snapshot.Accounts {
		if account.Type != domain.AccountTransaction {
			continue
		}
		if account.Balance.GreaterThan(idleCashThreshold) && account.InterestRate.LessThanOrEqual(decimalZero) {
			steps := []string{"Move the balance above a working float into a high-interest savings account"}
			benefit := account.Balance.Mul(decimal.NewFromFloat(0.04))
			if hasOffsetCapacity {
				steps = append(steps, "Or park it in an offset account against the highest-rate loan")
			}
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryLiquidity,
				Severity:         domain.SeverityInfo,
				Title:            fmt.Sprintf("Idle cash in %s", account.Name),
				Summary:          fmt.Sprintf("$%s sits in a transaction account earning nothing.", account.Balance.StringFixed(0)),
				Detail:           "Cash above the monthly working float should offset loan interest or earn deposit interest.",
				Score:            score(50),
				Confidence:       confidence(0.85),
				ProjectedBenefit: benefit,
				AffectedEntities: []string{account.ID},
				ActionSteps:      steps,
			})
		}
	}

	return findings, nil
}
