package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

var aggregateLVRLine = decimal.NewFromFloat(0.70)

// fixedExpiryWindowMonths is how far ahead a fixed-rate expiry is flagged.
const fixedExpiryWindowMonths = 12

// RiskAnalyzer looks at portfolio-level gearing, interest-only exposure and
// imminent fixed-rate expiries.
type RiskAnalyzer struct{}

func NewRiskAnalyzer() *RiskAnalyzer { return &RiskAnalyzer{} }

func (a *RiskAnalyzer) Name() string { return "risk" }

func (a *RiskAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	if metrics.AggregateLVR.GreaterThan(aggregateLVRLine) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryRisk,
			Severity:         domain.SeverityUrgent,
			Title:            "Portfolio gearing is high",
			Summary:          fmt.Sprintf("Aggregate LVR of %s%% exceeds the %s%% comfort line.", metrics.AggregateLVR.Mul(decimal.NewFromInt(100)).StringFixed(0), aggregateLVRLine.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			Detail:           "High portfolio gearing amplifies rate rises and valuation falls at the same time.",
			Score:            score(80),
			Confidence:       confidence(0.85),
			ProjectedBenefit: decimalZero,
			AffectedEntities: []string{"portfolio"},
			ActionSteps: []string{
				"Prioritise principal reduction over new acquisitions",
				"Stress-test repayments at a rate 3% higher",
			},
		})
	}

	interestOnlyDebt := decimalZero
	var ioIDs []string
	for _, loan := range snapshot.Loans {
		if loan.InterestOnly && loan.Principal.GreaterThan(decimalZero) {
			interestOnlyDebt = interestOnlyDebt.Add(loan.Principal)
			ioIDs = append(ioIDs, loan.ID)
		}
	}
	if metrics.TotalDebt.GreaterThan(decimalZero) {
		ioShare := interestOnlyDebt.Div(metrics.TotalDebt)
		if ioShare.GreaterThan(decimal.NewFromFloat(0.5)) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryRisk,
				Severity:         domain.SeverityWarning,
				Title:            "Most debt is interest-only",
				Summary:          fmt.Sprintf("%s%% of total debt is not amortising.", ioShare.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				Detail:           "Interest-only periods end with a repayment step-up; principal untouched today is principal owed later.",
				Score:            score(60),
				Confidence:       confidence(0.8),
				ProjectedBenefit: decimalZero,
				AffectedEntities: ioIDs,
				ActionSteps: []string{
					"Model the repayment step-up at the end of each interest-only term",
					"Switch at least one facility to principal and interest",
				},
			})
		}
	}

	for _, loan := range snapshot.Loans {
		if loan.RateType != domain.RateTypeFixed || loan.FixedRateExpiry == nil {
			continue
		}
		expiry := *loan.FixedRateExpiry
		if expiry.After(snapshot.AsOf) && expiry.Before(snapshot.AsOf.AddDate(0, fixedExpiryWindowMonths, 0)) {
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryRisk,
				Severity:         domain.SeverityWarning,
				Title:            fmt.Sprintf("Fixed rate on %s expires soon", loan.Name),
				Summary:          fmt.Sprintf("The fixed term ends %s; the loan then rolls to a revert rate.", expiry.Format("Jan 2006")),
				Detail:           "Revert rates typically sit well above negotiated rates. A rollover left unmanaged is a silent rate rise.",
				Score:            score(65),
				Confidence:       confidence(0.9),
				ProjectedBenefit: loan.Principal.Mul(decimal.NewFromFloat(0.01)),
				AffectedEntities: []string{loan.ID},
				ActionSteps: []string{
					"Start refinance comparisons 3 months before expiry",
				},
			})
		}
	}

	return findings, nil
}
