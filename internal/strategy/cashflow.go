package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// EmergencyFundMonths is the essential-expense coverage target for the
// emergency fund rule.
const EmergencyFundMonths = 3

// CashflowAnalyzer flags an insufficient emergency fund and surplus
// available for redirection to debt or investment.
type CashflowAnalyzer struct{}

func NewCashflowAnalyzer() *CashflowAnalyzer { return &CashflowAnalyzer{} }

func (a *CashflowAnalyzer) Name() string { return "cashflow" }

func (a *CashflowAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	monthlyEssential := snapshot.AnnualEssentialExpenses().Div(decimal.NewFromInt(12))
	liquid := snapshot.LiquidCash()
	if monthlyEssential.GreaterThan(decimalZero) {
		target := monthlyEssential.Mul(decimal.NewFromInt(EmergencyFundMonths))
		if liquid.LessThan(target) {
			shortfall := target.Sub(liquid)
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryCashflow,
				Severity:         domain.SeverityUrgent,
				Title:            "Build an emergency fund",
				Summary:          fmt.Sprintf("Liquid cash covers less than %d months of essential expenses.", EmergencyFundMonths),
				Detail:           fmt.Sprintf("Liquid cash of $%s falls $%s short of a %d-month essential expense buffer.", liquid.StringFixed(0), shortfall.StringFixed(0), EmergencyFundMonths),
				Score:            score(85),
				Confidence:       confidence(0.9),
				ProjectedBenefit: decimalZero,
				AffectedEntities: nil,
				ActionSteps: []string{
					"Pause non-essential investing until the buffer is funded",
					fmt.Sprintf("Direct surplus into savings until the balance reaches $%s", target.StringFixed(0)),
				},
			})
		}
	}

	surplus := snapshot.AnnualIncome().Sub(snapshot.AnnualExpenses())
	if surplus.GreaterThan(decimal.NewFromInt(1200)) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryCashflow,
			Severity:         domain.SeverityInfo,
			Title:            "Redirect uncommitted surplus",
			Summary:          fmt.Sprintf("Around $%s per year is not allocated to debt or investment.", surplus.StringFixed(0)),
			Detail:           "Annualised income exceeds annualised expenses; the difference can accelerate debt payoff or compound in investments.",
			Score:            score(55),
			Confidence:       confidence(0.75),
			ProjectedBenefit: surplus.Mul(decimal.NewFromFloat(0.05)),
			AffectedEntities: []string{"surplus"},
			ActionSteps: []string{
				"Run the debt planner with this surplus to compare payoff strategies",
				"Consider an automatic transfer on payday",
			},
		})
	} else if surplus.LessThan(decimalZero) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryCashflow,
			Severity:         domain.SeverityUrgent,
			Title:            "Spending exceeds income",
			Summary:          fmt.Sprintf("Expenses outpace income by $%s per year.", surplus.Neg().StringFixed(0)),
			Detail:           "A persistent deficit erodes cash buffers and forces new borrowing.",
			Score:            score(95),
			Confidence:       confidence(0.85),
			ProjectedBenefit: surplus,
			AffectedEntities: []string{"deficit"},
			ActionSteps: []string{
				"Review discretionary expense categories",
				"Check loan repayments against refinancing options",
			},
		})
	}

	return findings, nil
}
