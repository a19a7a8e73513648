package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

var (
	lowGrossYieldFloor  = decimal.NewFromFloat(0.025)
	highPropertyLVRLine = decimal.NewFromFloat(0.80)
)

// PropertyAnalyzer reviews each property's yield, gearing and depreciation
// position using the intel per-property metrics.
type PropertyAnalyzer struct{}

func NewPropertyAnalyzer() *PropertyAnalyzer { return &PropertyAnalyzer{} }

func (a *PropertyAnalyzer) Name() string { return "property" }

func (a *PropertyAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	byID := make(map[string]intel.PropertyMetrics, len(metrics.Properties))
	for _, pm := range metrics.Properties {
		byID[pm.PropertyID] = pm
	}

	for _, p := range snapshot.Properties {
		pm := byID[p.ID]

		if p.IsInvestment && p.AnnualRentalIncome.GreaterThan(decimalZero) && pm.GrossYield.LessThan(lowGrossYieldFloor) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryProperty,
				Severity:         domain.SeverityInfo,
				Title:            fmt.Sprintf("Low rental yield on %s", p.Name),
				Summary:          fmt.Sprintf("Gross yield of %s%% trails typical market yields.", pm.GrossYield.Mul(decimal.NewFromInt(100)).StringFixed(2)),
				Detail:           "A persistently low yield ties up equity that could work harder elsewhere; compare against a rent review or recycling the equity.",
				Score:            score(50),
				Confidence:       confidence(0.65),
				ProjectedBenefit: p.Value.Mul(lowGrossYieldFloor.Sub(pm.GrossYield)),
				AffectedEntities: []string{p.ID},
				ActionSteps: []string{
					"Obtain a market rent appraisal",
					"Model selling and redeploying the equity",
				},
			})
		}

		if pm.LVR.GreaterThan(highPropertyLVRLine) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryProperty,
				Severity:         domain.SeverityWarning,
				Title:            fmt.Sprintf("High gearing on %s", p.Name),
				Summary:          fmt.Sprintf("LVR of %s%% leaves little buffer against a price fall.", pm.LVR.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				Detail:           "Above 80% LVR, lenders mortgage insurance and refinancing constraints both bite.",
				Score:            score(70),
				Confidence:       confidence(0.8),
				ProjectedBenefit: decimalZero,
				AffectedEntities: []string{p.ID},
				ActionSteps: []string{
					"Direct surplus repayments at this property's loan",
					"Revalue the property before the next fixed-rate rollover",
				},
			})
		}

		if p.IsInvestment && p.BuildingCost.LessThanOrEqual(decimalZero) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryProperty,
				Severity:         domain.SeverityInfo,
				Title:            fmt.Sprintf("Missing depreciation schedule for %s", p.Name),
				Summary:          "No capital works cost is recorded, so depreciation deductions go unclaimed.",
				Detail:           "A quantity surveyor's schedule typically unlocks several thousand dollars of annual deductions on an investment property.",
				Score:            score(40),
				Confidence:       confidence(0.6),
				ProjectedBenefit: decimal.NewFromInt(2000),
				AffectedEntities: []string{p.ID},
				ActionSteps: []string{
					"Commission a tax depreciation schedule",
				},
			})
		}
	}

	return findings, nil
}
