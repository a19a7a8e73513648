package debtplan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
)

func testLoan(id string, principal, rate float64) domain.LoanInput {
	return domain.LoanInput{
		ID:                  id,
		Name:                id,
		Category:            domain.LoanCategoryHome,
		Principal:           decimal.NewFromFloat(principal),
		AnnualRate:          decimal.NewFromFloat(rate),
		RateType:            domain.RateTypeVariable,
		RemainingTermMonths: 360,
		RepaymentFrequency:  domain.FrequencyMonthly,
	}
}

func avalancheSettings(monthlySurplus float64) domain.PlannerSettings {
	return domain.PlannerSettings{
		Strategy:         domain.AllocationAvalanche,
		Surplus:          decimal.NewFromFloat(monthlySurplus),
		SurplusFrequency: domain.FrequencyMonthly,
	}
}

func TestRunDebtPlanNoLoans(t *testing.T) {
	_, err := RunDebtPlan(nil, avalancheSettings(500))
	require.ErrorIs(t, err, ErrNoLoans)
}

func TestRunDebtPlanValidation(t *testing.T) {
	loans := []domain.LoanInput{testLoan("a", 10000, 0.05)}

	_, err := RunDebtPlan(loans, domain.PlannerSettings{
		Surplus:          decimal.NewFromInt(100),
		SurplusFrequency: domain.FrequencyMonthly,
	})
	require.Error(t, err, "missing strategy must be rejected")

	_, err = RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationAvalanche,
		Surplus:          decimal.NewFromInt(-1),
		SurplusFrequency: domain.FrequencyMonthly,
	})
	require.Error(t, err, "negative surplus must be rejected")

	_, err = RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationAvalanche,
		Surplus:          decimal.NewFromInt(100),
		SurplusFrequency: domain.Frequency("DAILY"),
	})
	require.Error(t, err, "unknown frequency must be rejected")

	negative := testLoan("neg", 1000, 0.05)
	negative.Principal = decimal.NewFromInt(-1)
	_, err = RunDebtPlan([]domain.LoanInput{negative}, avalancheSettings(100))
	require.Error(t, err, "negative principal must be rejected")
}

func TestAvalancheTargetsHighestRateFirst(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("loan-a", 50000, 0.08),
		testLoan("loan-b", 20000, 0.05),
	}

	result, err := RunDebtPlan(loans, avalancheSettings(1000))
	require.NoError(t, err)
	require.NotEmpty(t, result.Allocations)

	// Every surplus dollar goes to the 8% loan until it closes.
	scheduleA := result.ScheduleFor("loan-a")
	require.NotNil(t, scheduleA)
	require.True(t, scheduleA.PaidOff)

	for _, alloc := range result.Allocations {
		if alloc.Period < scheduleA.PayoffPeriod {
			assert.Equal(t, "loan-a", alloc.LoanID,
				"period %d surplus went to %s before the high-rate loan closed", alloc.Period, alloc.LoanID)
		}
	}

	scheduleB := result.ScheduleFor("loan-b")
	require.NotNil(t, scheduleB)
	assert.True(t, scheduleB.PaidOff)
	assert.Greater(t, scheduleB.PayoffPeriod, scheduleA.PayoffPeriod)
}

func TestSnowballTargetsSmallestBalanceFirst(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("big", 50000, 0.08),
		testLoan("small", 20000, 0.05),
	}

	result, err := RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationSnowball,
		Surplus:          decimal.NewFromInt(1000),
		SurplusFrequency: domain.FrequencyMonthly,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Allocations)
	assert.Equal(t, "small", result.Allocations[0].LoanID)
}

func TestAvalancheNeverPaysMoreInterestThanSnowball(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("loan-a", 50000, 0.08),
		testLoan("loan-b", 20000, 0.05),
		testLoan("loan-c", 35000, 0.065),
	}

	avalanche, err := RunDebtPlan(loans, avalancheSettings(800))
	require.NoError(t, err)

	snowball, err := RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationSnowball,
		Surplus:          decimal.NewFromInt(800),
		SurplusFrequency: domain.FrequencyMonthly,
	})
	require.NoError(t, err)

	assert.True(t, avalanche.TotalInterestPaid.LessThanOrEqual(snowball.TotalInterestPaid),
		"avalanche %s vs snowball %s", avalanche.TotalInterestPaid, snowball.TotalInterestPaid)
}

func TestInterestSavedAgainstBaseline(t *testing.T) {
	loans := []domain.LoanInput{testLoan("loan-a", 100000, 0.06)}

	result, err := RunDebtPlan(loans, avalancheSettings(500))
	require.NoError(t, err)

	assert.True(t, result.InterestSaved.GreaterThan(decimal.Zero),
		"surplus repayments must save interest against the minimum-only baseline")
	assert.True(t, result.BaselineInterestPaid.GreaterThan(result.TotalInterestPaid))
}

func TestZeroSurplusSavesNothing(t *testing.T) {
	loans := []domain.LoanInput{testLoan("loan-a", 100000, 0.06)}

	result, err := RunDebtPlan(loans, avalancheSettings(0))
	require.NoError(t, err)

	assert.True(t, result.InterestSaved.IsZero())
	assert.Empty(t, result.Allocations)
	assert.True(t, result.BaselineInterestPaid.Equal(result.TotalInterestPaid))
}

func TestInterestOnlyLoanHitsHorizon(t *testing.T) {
	loan := testLoan("io", 300000, 0.06)
	loan.InterestOnly = true

	result, err := RunDebtPlan([]domain.LoanInput{loan}, avalancheSettings(0))
	require.NoError(t, err)

	// Interest-only repayments never touch principal, so the simulation
	// runs to its cap and reports the loan still open.
	assert.True(t, result.HorizonReached)
	assert.Equal(t, MaxPlanPeriods, result.MonthsToDebtFree)

	schedule := result.ScheduleFor("io")
	require.NotNil(t, schedule)
	assert.False(t, schedule.PaidOff)
	assert.True(t, schedule.EndingBalance.Equal(loan.Principal))
}

func TestOffsetBalanceReducesInterest(t *testing.T) {
	plain := testLoan("loan-a", 200000, 0.06)

	offset := plain
	offset.OffsetBalance = decimal.NewFromInt(50000)

	withOffset, err := RunDebtPlan([]domain.LoanInput{offset}, avalancheSettings(0))
	require.NoError(t, err)
	without, err := RunDebtPlan([]domain.LoanInput{plain}, avalancheSettings(0))
	require.NoError(t, err)

	assert.True(t, withOffset.TotalInterestPaid.LessThan(without.TotalInterestPaid))
}

func TestExtraRepaymentCapLimitsSurplus(t *testing.T) {
	capAmount := decimal.NewFromInt(200)
	capped := testLoan("capped", 50000, 0.08)
	capped.ExtraRepaymentCap = &capAmount

	loans := []domain.LoanInput{
		capped,
		testLoan("free", 30000, 0.05),
	}

	result, err := RunDebtPlan(loans, avalancheSettings(1000))
	require.NoError(t, err)

	// The capped high-rate loan takes at most $200; the remainder rolls
	// over to the next loan in order.
	for _, alloc := range result.Allocations {
		if alloc.LoanID == "capped" {
			assert.True(t, alloc.Amount.LessThanOrEqual(capAmount),
				"period %d allocation %s exceeds cap", alloc.Period, alloc.Amount)
		}
	}
	var sawRollover bool
	for _, alloc := range result.Allocations {
		if alloc.Period == 1 && alloc.LoanID == "free" {
			sawRollover = true
			assert.True(t, decimal.NewFromInt(800).Equal(alloc.Amount))
		}
	}
	assert.True(t, sawRollover, "capped surplus must roll over to the next loan")
}

func TestCustomOrderValidation(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("loan-a", 10000, 0.05),
		testLoan("loan-b", 20000, 0.06),
	}

	tests := []struct {
		name  string
		order []string
		valid bool
	}{
		{"exact permutation", []string{"loan-b", "loan-a"}, true},
		{"missing loan", []string{"loan-a"}, false},
		{"repeated id", []string{"loan-a", "loan-a"}, false},
		{"unknown id", []string{"loan-a", "loan-x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunDebtPlan(loans, domain.PlannerSettings{
				Strategy:         domain.AllocationCustom,
				Surplus:          decimal.NewFromInt(100),
				SurplusFrequency: domain.FrequencyMonthly,
				CustomOrder:      tt.order,
			})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCustomOrderIsHonored(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("loan-a", 10000, 0.09),
		testLoan("loan-b", 20000, 0.04),
	}

	// Custom order deliberately targets the low-rate loan first.
	result, err := RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationCustom,
		Surplus:          decimal.NewFromInt(500),
		SurplusFrequency: domain.FrequencyMonthly,
		CustomOrder:      []string{"loan-b", "loan-a"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Allocations)
	assert.Equal(t, "loan-b", result.Allocations[0].LoanID)
}

func TestPlanIsDeterministic(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("loan-a", 50000, 0.06),
		testLoan("loan-b", 50000, 0.06),
		testLoan("loan-c", 20000, 0.08),
	}

	first, err := RunDebtPlan(loans, avalancheSettings(750))
	require.NoError(t, err)
	second, err := RunDebtPlan(loans, avalancheSettings(750))
	require.NoError(t, err)

	require.Equal(t, len(first.Allocations), len(second.Allocations))
	for i := range first.Allocations {
		assert.Equal(t, first.Allocations[i].LoanID, second.Allocations[i].LoanID)
		assert.Equal(t, first.Allocations[i].Period, second.Allocations[i].Period)
		assert.True(t, first.Allocations[i].Amount.Equal(second.Allocations[i].Amount))
	}
	assert.True(t, first.TotalInterestPaid.Equal(second.TotalInterestPaid))
	assert.Equal(t, first.MonthsToDebtFree, second.MonthsToDebtFree)
}

func TestRateTiesBreakOnLoanID(t *testing.T) {
	loans := []domain.LoanInput{
		testLoan("zeta", 30000, 0.06),
		testLoan("alpha", 30000, 0.06),
	}

	result, err := RunDebtPlan(loans, avalancheSettings(400))
	require.NoError(t, err)
	require.NotEmpty(t, result.Allocations)
	assert.Equal(t, "alpha", result.Allocations[0].LoanID)
}

func TestWeeklySurplusIsConvertedMonthly(t *testing.T) {
	loans := []domain.LoanInput{testLoan("loan-a", 50000, 0.06)}

	result, err := RunDebtPlan(loans, domain.PlannerSettings{
		Strategy:         domain.AllocationAvalanche,
		Surplus:          decimal.NewFromInt(120),
		SurplusFrequency: domain.FrequencyWeekly,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Allocations)

	// $120/week is $520/month.
	expected := decimal.NewFromInt(120 * 52).Div(decimal.NewFromInt(12))
	assert.True(t, expected.Equal(result.Allocations[0].Amount),
		"expected %s, got %s", expected, result.Allocations[0].Amount)
}
