package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

var concessionalSalaryLine = decimal.NewFromInt(90000)

// TaxAnalyzer surfaces franking credit value, negative gearing deductions
// and concessional super contribution headroom.
type TaxAnalyzer struct{}

func NewTaxAnalyzer() *TaxAnalyzer { return &TaxAnalyzer{} }

func (a *TaxAnalyzer) Name() string { return "tax" }

func (a *TaxAnalyzer) Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error) {
	var findings []domain.StrategyFinding

	if metrics.AnnualFrankingCredits.GreaterThan(decimalZero) {
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryTax,
			Severity:         domain.SeverityInfo,
			Title:            "Claim franking credits",
			Summary:          fmt.Sprintf("Holdings generate about $%s of franking credits a year.", metrics.AnnualFrankingCredits.StringFixed(0)),
			Detail:           "Franking credits offset tax payable dollar-for-dollar and are refundable below the corporate rate.",
			Score:            score(45),
			Confidence:       confidence(0.9),
			ProjectedBenefit: metrics.AnnualFrankingCredits,
			AffectedEntities: []string{"portfolio"},
			ActionSteps: []string{
				"Ensure dividend statements flow into the tax return",
			},
		})
	}

	for _, p := range snapshot.Properties {
		if !p.IsInvestment {
			continue
		}
		netRent := p.AnnualRentalIncome.Sub(p.AnnualExpenses).Sub(interestOnSecuredDebt(snapshot, p.ID))
		if netRent.LessThan(decimalZero) {
			deduction := netRent.Neg()
			findings = append(findings, domain.StrategyFinding{
				Category:         domain.CategoryTax,
				Severity:         domain.SeverityInfo,
				Title:            fmt.Sprintf("Negative gearing deduction on %s", p.Name),
				Summary:          fmt.Sprintf("The property runs at a $%s annual loss that is deductible against other income.", deduction.StringFixed(0)),
				Detail:           "Rental losses reduce taxable income now, though the strategy still relies on capital growth to pay off.",
				Score:            score(40),
				Confidence:       confidence(0.7),
				ProjectedBenefit: deduction.Mul(decimal.NewFromFloat(0.345)),
				AffectedEntities: []string{p.ID},
				ActionSteps: []string{
					"Lodge a PAYG withholding variation to smooth the refund",
				},
			})
		}
	}

	salary := snapshot.AnnualEmploymentIncome()
	if salary.GreaterThan(concessionalSalaryLine) {
		marginalRate := decimal.NewFromFloat(0.345)
		contributionsTax := decimal.NewFromFloat(0.15)
		headroom := decimal.NewFromInt(10000)
		findings = append(findings, domain.StrategyFinding{
			Category:         domain.CategoryTax,
			Severity:         domain.SeverityInfo,
			Title:            "Use concessional super headroom",
			Summary:          "Salary sacrifice into super is taxed at 15% instead of the marginal rate.",
			Detail:           fmt.Sprintf("On a salary of $%s, each sacrificed dollar saves the gap between the marginal rate and the 15%% contributions tax.", salary.StringFixed(0)),
			Score:            score(55),
			Confidence:       confidence(0.65),
			ProjectedBenefit: headroom.Mul(marginalRate.Sub(contributionsTax)),
			AffectedEntities: []string{"super"},
			ActionSteps: []string{
				"Check concessional cap usage on myGov before increasing contributions",
				"Set up a salary sacrifice arrangement with payroll",
			},
		})
	}

	return findings, nil
}

func interestOnSecuredDebt(snapshot *domain.Snapshot, propertyID string) decimal.Decimal {
	total := decimalZero
	for _, loan := range snapshot.Loans {
		if loan.SecuredPropertyID == propertyID {
			total = total.Add(loan.Principal.Mul(loan.AnnualRate))
		}
	}
	return total
}
