// Package debtplan simulates period-by-period amortization of a loan
// portfolio under a surplus allocation strategy and reports payoff
// schedules, surplus ordering and interest saved against a
// minimum-repayments-only baseline.
package debtplan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/finmath"
)

// MaxPlanPeriods caps every simulation at 600 monthly periods (50 years).
// The cap is a termination guarantee: portfolios whose minimum repayments
// never cover interest would otherwise run forever.
const MaxPlanPeriods = 600

const monthsPerYear = 12

// ErrNoLoans is returned when a planning run is requested with no loans.
var ErrNoLoans = errors.New("debt plan requires at least one loan")

var decimalZero = decimal.Zero

// loanState tracks one loan through a simulation run.
type loanState struct {
	input         domain.LoanInput
	balance       decimal.Decimal
	offset        decimal.Decimal
	monthlyMin    decimal.Decimal
	monthlyCap    *decimal.Decimal
	totalInterest decimal.Decimal
	payoffPeriod  int
	closed        bool
}

// RunDebtPlan simulates the portfolio under the configured strategy and
// differences it against a minimum-only baseline run over the same horizon.
func RunDebtPlan(loans []domain.LoanInput, settings domain.PlannerSettings) (*domain.DebtPlanResult, error) {
	if len(loans) == 0 {
		return nil, ErrNoLoans
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	for i, loan := range loans {
		if loan.Principal.LessThan(decimalZero) {
			return nil, fmt.Errorf("loan %d (%s) has negative principal", i, loan.ID)
		}
		if err := domain.ValidateFrequency(loan.RepaymentFrequency); err != nil {
			return nil, fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}
	}

	strategy, err := CreateStrategy(settings, loans)
	if err != nil {
		return nil, err
	}

	monthlySurplus := finmath.Convert(settings.Surplus, settings.SurplusFrequency, domain.FrequencyMonthly)

	strategic := simulate(loans, monthlySurplus, strategy)
	// Baseline runs with zero surplus over the identical horizon so the
	// interest-saved comparison is fair even when neither run fully pays off.
	baseline := simulate(loans, decimalZero, strategy)

	saved := baseline.totalInterest.Sub(strategic.totalInterest)
	if saved.LessThan(decimalZero) {
		saved = decimalZero
	}

	return &domain.DebtPlanResult{
		Strategy:             settings.Strategy,
		Schedules:            strategic.schedules,
		Allocations:          strategic.allocations,
		TotalInterestPaid:    strategic.totalInterest,
		BaselineInterestPaid: baseline.totalInterest,
		InterestSaved:        saved,
		MonthsToDebtFree:     strategic.monthsToDebtFree,
		HorizonReached:       strategic.horizonReached,
	}, nil
}

func validateSettings(settings domain.PlannerSettings) error {
	if settings.Strategy == "" {
		return errors.New("planner settings missing allocation strategy")
	}
	if settings.Surplus.LessThan(decimalZero) {
		return errors.New("planner surplus cannot be negative")
	}
	if err := domain.ValidateFrequency(settings.SurplusFrequency); err != nil {
		return fmt.Errorf("planner surplus frequency: %w", err)
	}
	return nil
}

type simulationResult struct {
	schedules        []domain.LoanSchedule
	allocations      []domain.SurplusAllocation
	totalInterest    decimal.Decimal
	monthsToDebtFree int
	horizonReached   bool
}

func simulate(loans []domain.LoanInput, monthlySurplus decimal.Decimal, strategy AllocationStrategy) simulationResult {
	states := make([]*loanState, len(loans))
	for i, loan := range loans {
		states[i] = newLoanState(loan)
	}

	result := simulationResult{totalInterest: decimalZero}

	for period := 1; period <= MaxPlanPeriods; period++ {
		open := openLoans(states)
		if len(open) == 0 {
			break
		}

		// Interest accrues on the offset-adjusted principal, then the
		// minimum repayment lands. A repayment below the accrued interest
		// grows the balance; interest-only loans tread water here.
		for _, st := range open {
			effective := finmath.EffectivePrincipal(st.balance, st.offset)
			interest := finmath.InterestForPeriod(effective, st.input.AnnualRate, monthsPerYear)
			st.totalInterest = st.totalInterest.Add(interest)
			result.totalInterest = result.totalInterest.Add(interest)

			repayment := st.monthlyMin
			owed := st.balance.Add(interest)
			if repayment.GreaterThan(owed) {
				repayment = owed
			}
			st.balance = owed.Sub(repayment)
			maybeClose(st, period)
		}

		remaining := monthlySurplus
		if remaining.GreaterThan(decimalZero) {
			for _, st := range strategy.Order(openLoans(states)) {
				if remaining.LessThanOrEqual(decimalZero) {
					break
				}
				extra := remaining
				if st.monthlyCap != nil && extra.GreaterThan(*st.monthlyCap) {
					extra = *st.monthlyCap
				}
				if extra.GreaterThan(st.balance) {
					extra = st.balance
				}
				if extra.LessThanOrEqual(decimalZero) {
					continue
				}
				st.balance = st.balance.Sub(extra)
				remaining = remaining.Sub(extra)
				result.allocations = append(result.allocations, domain.SurplusAllocation{
					Period: period,
					LoanID: st.input.ID,
					Amount: extra,
				})
				maybeClose(st, period)
			}
		}

		if len(openLoans(states)) == 0 {
			result.monthsToDebtFree = period
			break
		}
	}

	if len(openLoans(states)) > 0 {
		result.horizonReached = true
		result.monthsToDebtFree = MaxPlanPeriods
	}

	result.schedules = make([]domain.LoanSchedule, len(states))
	for i, st := range states {
		result.schedules[i] = domain.LoanSchedule{
			LoanID:        st.input.ID,
			LoanName:      st.input.Name,
			PaidOff:       st.closed,
			PayoffPeriod:  st.payoffPeriod,
			TotalInterest: st.totalInterest,
			EndingBalance: st.balance,
		}
	}
	return result
}

func newLoanState(loan domain.LoanInput) *loanState {
	st := &loanState{
		input:         loan,
		balance:       loan.Principal,
		offset:        loan.OffsetBalance,
		totalInterest: decimalZero,
	}
	if loan.Principal.IsZero() {
		st.closed = true
	}

	st.monthlyMin = finmath.Convert(loan.MinimumRepayment, loan.RepaymentFrequency, domain.FrequencyMonthly)
	if st.monthlyMin.LessThanOrEqual(decimalZero) {
		if loan.InterestOnly {
			effective := finmath.EffectivePrincipal(loan.Principal, loan.OffsetBalance)
			st.monthlyMin = finmath.InterestForPeriod(effective, loan.AnnualRate, monthsPerYear)
		} else {
			st.monthlyMin = finmath.PIRepayment(loan.Principal, loan.AnnualRate, loan.RemainingTermMonths)
		}
	}

	if loan.ExtraRepaymentCap != nil {
		capMonthly := finmath.Convert(*loan.ExtraRepaymentCap, loan.RepaymentFrequency, domain.FrequencyMonthly)
		st.monthlyCap = &capMonthly
	}
	return st
}

func maybeClose(st *loanState, period int) {
	if st.closed {
		return
	}
	if st.balance.LessThanOrEqual(decimalZero) {
		st.balance = decimalZero
		st.closed = true
		st.payoffPeriod = period
	}
}

func openLoans(states []*loanState) []*loanState {
	open := make([]*loanState, 0, len(states))
	for _, st := range states {
		if !st.closed {
			open = append(open, st)
		}
	}
	return open
}
