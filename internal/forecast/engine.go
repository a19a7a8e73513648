// Package forecast projects net worth, cash, equity and retirement
// readiness forward under named assumption scenarios.
package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/finmath"
)

var (
	decimalZero = decimal.Zero
	decimalOne  = decimal.NewFromInt(1)
)

const monthsPerYear = 12

// ComfortableReplacementRatio is the retirement-income replacement target
// used for the comfortable-retirement verdict.
var ComfortableReplacementRatio = decimal.NewFromFloat(0.70)

// RetirementIncomeFunc models income drawn from accumulated investable
// assets once employment income stops.
type RetirementIncomeFunc func(investableAssets decimal.Decimal) decimal.Decimal

// FourPercentDrawdown is the default retirement income model: a 4% annual
// draw on investable assets.
func FourPercentDrawdown(investableAssets decimal.Decimal) decimal.Decimal {
	if investableAssets.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return investableAssets.Mul(decimal.NewFromFloat(0.04))
}

// Engine generates multi-year forecasts. The retirement income model is
// pluggable; the zero value is usable via NewEngine.
type Engine struct {
	RetirementIncome RetirementIncomeFunc
}

// NewEngine creates a forecast engine with the default retirement model.
func NewEngine() *Engine {
	return &Engine{RetirementIncome: FourPercentDrawdown}
}

// loanProjection tracks one loan's balance through the year loop. Surplus
// amounts from an externally computed debt plan are blended in on top of
// minimum repayments.
type loanProjection struct {
	input      domain.LoanInput
	balance    decimal.Decimal
	monthlyMin decimal.Decimal
	closed     bool
}

// GenerateForecast projects the snapshot forward. Horizon must be one of
// domain.ValidHorizons; overrides are merged field-by-field onto the
// scenario preset. A debt plan, when supplied, blends strategic surplus
// paydown into the loan amortization. Inputs are never mutated.
func (e *Engine) GenerateForecast(
	snapshot *domain.Snapshot,
	overrides *domain.AssumptionOverrides,
	scenario domain.Scenario,
	horizon int,
	plan *domain.DebtPlanResult,
) (*domain.ForecastResult, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("forecast requires a snapshot")
	}
	if !scenario.Valid() {
		return nil, fmt.Errorf("unknown scenario %q", string(scenario))
	}
	if !domain.ValidHorizon(horizon) {
		return nil, fmt.Errorf("horizon must be one of %v, got %d", domain.ValidHorizons, horizon)
	}

	assumptions := domain.AssumptionsForScenario(scenario).Merge(overrides)

	retirementModel := e.RetirementIncome
	if retirementModel == nil {
		retirementModel = FourPercentDrawdown
	}

	loans := make([]*loanProjection, len(snapshot.Loans))
	for i, loan := range snapshot.Loans {
		loans[i] = newLoanProjection(loan)
	}
	surplusByLoanPeriod := planAllocationIndex(plan)

	investments := make([]decimal.Decimal, len(snapshot.Investments))
	for i, inv := range snapshot.Investments {
		investments[i] = inv.Value
	}

	cash := snapshot.TotalCash()
	employmentIncome := snapshot.AnnualEmploymentIncome()
	otherIncome := nonEmploymentFlatIncome(snapshot)
	annualExpenses := snapshot.AnnualExpenses()
	preRetirementIncome := employmentIncome

	summary := domain.ForecastSummary{DebtFreeYear: -1}
	retirementYear := assumptions.RetirementAge - snapshot.CurrentAge
	if retirementYear < 0 {
		retirementYear = 0
	}
	summary.YearsToRetirement = retirementYear

	projections := make([]domain.ForecastProjection, 0, horizon+1)

	for year := 0; year <= horizon; year++ {
		retired := snapshot.CurrentAge+year >= assumptions.RetirementAge

		propertyValue := decimalZero
		rentIncome := decimalZero
		for _, p := range snapshot.Properties {
			propertyValue = propertyValue.Add(finmath.CompoundGrowth(p.Value, assumptions.PropertyGrowthRate, year))
			rentIncome = rentIncome.Add(finmath.CompoundGrowth(p.AnnualRentalIncome, assumptions.InflationRate, year))
		}

		if year > 0 {
			// Investment value compounds at the portfolio return, then the
			// year's dividends are reinvested.
			for i, inv := range snapshot.Investments {
				grown := investments[i].Mul(decimalOne.Add(assumptions.PortfolioReturnRate))
				dividends := grown.Mul(inv.DividendYield)
				investments[i] = grown.Add(dividends)
			}

			for _, lp := range loans {
				amortizeYear(lp, year, surplusByLoanPeriod)
			}

			if !retired && employmentIncome.GreaterThan(decimalZero) {
				employmentIncome = employmentIncome.Mul(decimalOne.Add(assumptions.WageGrowthRate))
				preRetirementIncome = employmentIncome
			}
			annualExpenses = annualExpenses.Mul(decimalOne.Add(assumptions.InflationRate))
		}

		totalDebt := decimalZero
		loanPayments := decimalZero
		for _, lp := range loans {
			totalDebt = totalDebt.Add(lp.balance)
			if !lp.closed {
				loanPayments = loanPayments.Add(lp.monthlyMin.Mul(decimal.NewFromInt(monthsPerYear)))
			}
		}

		investmentValue := decimalZero
		for _, v := range investments {
			investmentValue = investmentValue.Add(v)
		}

		incomeForYear := otherIncome.Add(rentIncome)
		if retired {
			retirementIncome := retirementModel(investmentValue.Add(cash))
			incomeForYear = incomeForYear.Add(retirementIncome)
			if summary.RetirementIncome.IsZero() {
				summary.RetirementIncome = retirementIncome
			}
		} else {
			incomeForYear = incomeForYear.Add(employmentIncome)
		}

		if year > 0 {
			cash = cash.Add(incomeForYear).Sub(annualExpenses).Sub(loanPayments)
		}

		netWorth := propertyValue.Add(investmentValue).Add(cash).Sub(totalDebt)

		if summary.DebtFreeYear < 0 && totalDebt.LessThanOrEqual(decimalZero) {
			summary.DebtFreeYear = year
		}

		projections = append(projections, domain.ForecastProjection{
			Year:            year,
			NetWorth:        netWorth,
			CashBalance:     cash,
			TotalEquity:     finmath.Equity(propertyValue, totalDebt),
			TotalDebt:       totalDebt,
			PropertyValue:   propertyValue,
			InvestmentValue: investmentValue,
			AnnualIncome:    incomeForYear,
			Retired:         retired,
		})
	}

	last := projections[len(projections)-1]
	summary.FinalNetWorth = last.NetWorth
	summary.FinalCashBalance = last.CashBalance
	summary.PreRetirementIncome = preRetirementIncome
	if preRetirementIncome.GreaterThan(decimalZero) && !summary.RetirementIncome.IsZero() {
		summary.ReplacementRatio = summary.RetirementIncome.Div(preRetirementIncome)
	}
	summary.ComfortableRetirement = summary.ReplacementRatio.GreaterThanOrEqual(ComfortableReplacementRatio)

	return &domain.ForecastResult{
		Scenario:    scenario,
		Assumptions: assumptions,
		Projections: projections,
		Summary:     summary,
	}, nil
}

func newLoanProjection(loan domain.LoanInput) *loanProjection {
	lp := &loanProjection{input: loan, balance: loan.Principal}
	if loan.Principal.LessThanOrEqual(decimalZero) {
		lp.closed = true
		lp.balance = decimalZero
	}
	lp.monthlyMin = finmath.Convert(loan.MinimumRepayment, loan.RepaymentFrequency, domain.FrequencyMonthly)
	if lp.monthlyMin.LessThanOrEqual(decimalZero) {
		if loan.InterestOnly {
			effective := finmath.EffectivePrincipal(loan.Principal, loan.OffsetBalance)
			lp.monthlyMin = finmath.InterestForPeriod(effective, loan.AnnualRate, monthsPerYear)
		} else {
			lp.monthlyMin = finmath.PIRepayment(loan.Principal, loan.AnnualRate, loan.RemainingTermMonths)
		}
	}
	return lp
}

// amortizeYear advances a loan twelve periods using the same periodic
// interest logic as the debt planner, folding in any plan surplus recorded
// for those periods.
func amortizeYear(lp *loanProjection, year int, surplus map[string]map[int]decimal.Decimal) {
	if lp.closed {
		return
	}
	for month := 1; month <= monthsPerYear; month++ {
		period := (year-1)*monthsPerYear + month
		effective := finmath.EffectivePrincipal(lp.balance, lp.input.OffsetBalance)
		interest := finmath.InterestForPeriod(effective, lp.input.AnnualRate, monthsPerYear)

		repayment := lp.monthlyMin
		owed := lp.balance.Add(interest)
		if repayment.GreaterThan(owed) {
			repayment = owed
		}
		lp.balance = owed.Sub(repayment)

		if extra, ok := surplus[lp.input.ID][period]; ok {
			lp.balance = lp.balance.Sub(extra)
		}

		if lp.balance.LessThanOrEqual(decimalZero) {
			lp.balance = decimalZero
			lp.closed = true
			return
		}
	}
}

func planAllocationIndex(plan *domain.DebtPlanResult) map[string]map[int]decimal.Decimal {
	if plan == nil {
		return nil
	}
	index := make(map[string]map[int]decimal.Decimal)
	for _, alloc := range plan.Allocations {
		byPeriod, ok := index[alloc.LoanID]
		if !ok {
			byPeriod = make(map[int]decimal.Decimal)
			index[alloc.LoanID] = byPeriod
		}
		byPeriod[alloc.Period] = byPeriod[alloc.Period].Add(alloc.Amount)
	}
	return index
}

// nonEmploymentFlatIncome annualises income streams that are neither salary
// nor rent nor dividends. Rent is projected off property values and
// dividends are reinvested inside the investment growth model, so both are
// excluded here to avoid double counting.
func nonEmploymentFlatIncome(s *domain.Snapshot) decimal.Decimal {
	total := decimalZero
	for _, inc := range s.Income {
		switch inc.Type {
		case domain.IncomeSalary, domain.IncomeRent, domain.IncomeDividendFranked, domain.IncomeDividendUnfranked:
			continue
		}
		if inc.Frequency.Valid() {
			total = total.Add(inc.Amount.Mul(inc.Frequency.PeriodsPerYearDecimal()))
		}
	}
	return total
}
