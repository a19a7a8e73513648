package strategy

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// Concentration thresholds for a single holding and a single sector, as
// fractions of total investment value.
var (
	holdingConcentrationLimit = decimal.NewFromFloat(0.40)
	sectorConcentrationLimit  = decimal.NewFromFloat(0.60)
)

// InvestmentAnalyzer flags concentration risk and rebalancing opportunities.
type InvestmentAnalyzer struct{}

func NewInvestmentAnalyzer() *InvestmentAnalyzer { return &InvestmentAnalyzer{} }

func (a *InvestmentAnalyzer) Name() string { return "investment" }

func (a *InvestmentAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	total := snapshot.TotalInvestmentValue()
	if total.LessThanOrEqual(decimalZero) {
		// No holdings is a valid degraded state, not an analyzer failure.
		return nil, nil
	}

	var findings []domain.StrategyFinding

	for _, inv := range snapshot.Investments {
		share := inv.Value.Div(total)
		if share.GreaterThan(holdingConcentrationLimit) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryInvestment,
				Severity:         domain.SeverityWarning,
				Title:            fmt.Sprintf("Concentrated position in %s", inv.Name),
				Summary:          fmt.Sprintf("%s%% of the portfolio sits in a single holding.", share.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				Detail:           "A single-name drawdown would move the whole portfolio; spreading the position reduces idiosyncratic risk.",
				Score:            score(60).Add(share.Mul(decimal.NewFromInt(30))),
				Confidence:       confidence(0.85),
				ProjectedBenefit: decimalZero,
				AffectedEntities: []string{inv.ID},
				ActionSteps: []string{
					"Stage sales across tax years to manage capital gains",
					"Redirect new contributions to underweight holdings",
				},
			})
		}
	}

	sectorTotals := make(map[string]decimal.Decimal)
	sectorIDs := make(map[string][]string)
	for _, inv := range snapshot.Investments {
		if inv.Sector == "" {
			continue
		}
		sectorTotals[inv.Sector] = sectorTotals[inv.Sector].Add(inv.Value)
		sectorIDs[inv.Sector] = append(sectorIDs[inv.Sector], inv.ID)
	}
	sectors := make([]string, 0, len(sectorTotals))
	for sector := range sectorTotals {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		share := sectorTotals[sector].Div(total)
		if share.GreaterThan(sectorConcentrationLimit) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryInvestment,
				Severity:         domain.SeverityInfo,
				Title:            fmt.Sprintf("Rebalance away from %s", sector),
				Summary:          fmt.Sprintf("The %s sector is %s%% of the portfolio.", sector, share.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				Detail:           "Sector weight above target suggests trimming winners into broader exposure.",
				Score:            score(45),
				Confidence:       confidence(0.7),
				ProjectedBenefit: decimalZero,
				AffectedEntities: sectorIDs[sector],
				ActionSteps: []string{
					"Set a target sector allocation and rebalance toward it annually",
				},
			})
		}
	}

	return findings, nil
}
