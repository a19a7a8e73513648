package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// MarketReferenceRate approximates the market variable home-loan rate used
// to spot refinance opportunities.
var MarketReferenceRate = decimal.NewFromFloat(0.055)

// refinanceMargin is how far above the reference rate a loan must sit
// before a refinance finding is worth raising.
var refinanceMargin = decimal.NewFromFloat(0.005)

var smallDebtThreshold = decimal.NewFromInt(50000)

// DebtAnalyzer flags refinance and consolidation opportunities.
type DebtAnalyzer struct{}

func NewDebtAnalyzer() *DebtAnalyzer { return &DebtAnalyzer{} }

func (a *DebtAnalyzer) Name() string { return "debt" }

func (a *DebtAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	for _, loan := range snapshot.Loans {
		if loan.Principal.LessThanOrEqual(decimalZero) {
			continue
		}
		gap := loan.AnnualRate.Sub(MarketReferenceRate)
		if loan.RateType == domain.RateTypeVariable && gap.GreaterThanOrEqual(refinanceMargin) {
			annualSaving := loan.Principal.Mul(gap)
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryDebt,
				Severity:         domain.SeverityWarning,
				Title:            fmt.Sprintf("Refinance %s", loan.Name),
				Summary:          fmt.Sprintf("Rate of %s%% is above the market reference of %s%%.", loan.AnnualRate.Mul(decimal.NewFromInt(100)).StringFixed(2), MarketReferenceRate.Mul(decimal.NewFromInt(100)).StringFixed(2)),
				Detail:           fmt.Sprintf("Refinancing $%s at the reference rate would save about $%s in interest per year.", loan.Principal.StringFixed(0), annualSaving.StringFixed(0)),
				Score:            score(70).Add(gap.Mul(decimal.NewFromInt(1000))),
				Confidence:       confidence(0.8),
				ProjectedBenefit: annualSaving,
				AffectedEntities: []string{loan.ID},
				ActionSteps: []string{
					"Request a rate review from the current lender",
					"Compare comparison rates across at least three lenders",
				},
			})
		}
	}

	var smallHighRate []domain.LoanInput
	for _, loan := range snapshot.Loans {
		if loan.Principal.GreaterThan(decimalZero) &&
			loan.Principal.LessThan(smallDebtThreshold) &&
			loan.AnnualRate.GreaterThan(MarketReferenceRate.Add(decimal.NewFromFloat(0.02))) {
			smallHighRate = append(smallHighRate, loan)
		}
	}
	if len(smallHighRate) >= 2 {
		total := decimalZero
		ids := make([]string, 0, len(smallHighRate))
		for _, loan := range smallHighRate {
			total = total.Add(loan.Principal)
			ids = append(ids, loan.ID)
		}
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryDebt,
			Severity:         domain.SeverityWarning,
			Title:            "Consolidate high-rate debts",
			Summary:          fmt.Sprintf("%d small high-rate debts total $%s.", len(smallHighRate), total.StringFixed(0)),
			Detail:           "Rolling several small facilities into one lower-rate facility cuts both the average rate and fee drag.",
			Score:            score(65),
			Confidence:       confidence(0.7),
			ProjectedBenefit: total.Mul(decimal.NewFromFloat(0.03)),
			AffectedEntities: ids,
			ActionSteps: []string{
				"Price a consolidation facility against the combined repayments",
				"Close paid-out facilities to avoid redraw temptation",
			},
		})
	}

	return findings, nil
}
