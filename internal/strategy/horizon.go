package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// DefaultRetirementAge anchors time-horizon rules when no scenario has been
// chosen yet; it matches the DEFAULT forecast preset.
const DefaultRetirementAge = 65

// TimeHorizonAnalyzer relates the years remaining to retirement to the
// shape of the balance sheet.
type TimeHorizonAnalyzer struct{}

func NewTimeHorizonAnalyzer() *TimeHorizonAnalyzer { return &TimeHorizonAnalyzer{} }

func (a *TimeHorizonAnalyzer) Name() string { return "time_horizon" }

func (a *TimeHorizonAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	if snapshot.CurrentAge <= 0 {
		// Age unknown; horizon rules would be guesses.
		return nil, nil
	}
	yearsToRetirement := DefaultRetirementAge - snapshot.CurrentAge
	if yearsToRetirement < 0 {
		yearsToRetirement = 0
	}

	var findings []domain.StrategyFinding

	if yearsToRetirement <= 10 && metrics.AggregateLVR.GreaterThan(decimal.NewFromFloat(0.5)) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryTimeHorizon,
			Severity:         domain.SeverityWarning,
			Title:            "Debt heavy this close to retirement",
			Summary:          fmt.Sprintf("Roughly %d years to retirement with aggregate LVR above 50%%.", yearsToRetirement),
			Detail:           "Carrying significant debt into retirement forces asset sales or a working-life extension; the payoff runway is shrinking.",
			Score:            score(75),
			Confidence:       confidence(0.8),
			ProjectedBenefit: decimalZero,
			AffectedEntities: []string{"portfolio"},
			ActionSteps: []string{
				"Run the debt planner with retirement as the payoff deadline",
				"Defer new leveraged purchases",
			},
		})
	}

	cash := snapshot.TotalCash()
	invested := snapshot.TotalInvestmentValue()
	if yearsToRetirement > 20 && cash.GreaterThan(invested) && cash.GreaterThan(decimal.NewFromInt(30000)) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryTimeHorizon,
			Severity:         domain.SeverityInfo,
			Title:            "Long horizon favours growth assets",
			Summary:          "Cash outweighs investments despite decades of compounding runway.",
			Detail:           fmt.Sprintf("With about %d years to retirement, cash above the emergency buffer has a high opportunity cost versus diversified growth assets.", yearsToRetirement),
			Score:            score(50),
			Confidence:       confidence(0.7),
			ProjectedBenefit: cash.Sub(invested).Mul(decimal.NewFromFloat(0.04)),
			AffectedEntities: []string{"portfolio"},
			ActionSteps: []string{
				"Keep the emergency fund in cash and invest the remainder on a schedule",
			},
		})
	}

	return findings, nil
}
