package intel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
)

func TestComputePropertyMetrics(t *testing.T) {
	snapshot := &domain.Snapshot{
		UserID: "user-1",
		Properties: []domain.Property{
			{
				ID:                 "ip-1",
				Value:              decimal.NewFromInt(650000),
				IsInvestment:       true,
				AnnualRentalIncome: decimal.NewFromInt(26000),
				AnnualExpenses:     decimal.NewFromInt(6500),
				BuildingCost:       decimal.NewFromInt(300000),
			},
		},
		Loans: []domain.LoanInput{
			{
				ID:                 "loan-1",
				Principal:          decimal.NewFromInt(520000),
				AnnualRate:         decimal.NewFromFloat(0.06),
				RepaymentFrequency: domain.FrequencyMonthly,
				SecuredPropertyID:  "ip-1",
			},
		},
	}

	metrics := Compute(snapshot)
	require.Len(t, metrics.Properties, 1)
	pm := metrics.Properties[0]

	assert.True(t, decimal.NewFromFloat(0.8).Equal(pm.LVR), "lvr %s", pm.LVR)
	assert.True(t, decimal.NewFromInt(130000).Equal(pm.Equity))
	assert.True(t, decimal.NewFromFloat(0.04).Equal(pm.GrossYield))
	assert.True(t, decimal.NewFromFloat(0.03).Equal(pm.NetYield))
	// Division 43: 2.5% of a $300,000 building cost.
	assert.True(t, decimal.NewFromInt(7500).Equal(pm.AnnualDepreciation))
}

func TestComputeDepreciationRequiresInvestmentProperty(t *testing.T) {
	snapshot := &domain.Snapshot{
		Properties: []domain.Property{
			{ID: "home", Value: decimal.NewFromInt(800000), BuildingCost: decimal.NewFromInt(400000)},
		},
	}

	metrics := Compute(snapshot)
	require.Len(t, metrics.Properties, 1)
	assert.True(t, metrics.Properties[0].AnnualDepreciation.IsZero(),
		"owner-occupied property must not accrue capital works deductions")
}

func TestComputeAggregates(t *testing.T) {
	snapshot := &domain.Snapshot{
		Accounts: []domain.Account{
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(50000)},
		},
		Properties: []domain.Property{
			{ID: "p1", Value: decimal.NewFromInt(600000)},
		},
		Investments: []domain.Investment{
			{ID: "etf", Value: decimal.NewFromInt(100000), DividendYield: decimal.NewFromFloat(0.04), FrankingPercent: decimal.NewFromInt(100)},
		},
		Loans: []domain.LoanInput{
			{ID: "l1", Principal: decimal.NewFromInt(300000), RepaymentFrequency: domain.FrequencyMonthly},
		},
	}

	metrics := Compute(snapshot)

	assert.True(t, decimal.NewFromInt(750000).Equal(metrics.TotalAssets))
	assert.True(t, decimal.NewFromInt(300000).Equal(metrics.TotalDebt))
	assert.True(t, decimal.NewFromInt(450000).Equal(metrics.NetWorth))
	assert.True(t, decimal.NewFromFloat(0.5).Equal(metrics.AggregateLVR))
	assert.True(t, decimal.NewFromInt(300000).Equal(metrics.TotalEquity))

	// $4,000 of fully franked dividends carries 4000 * 0.3/0.7 of credits.
	assert.True(t, decimal.NewFromInt(4000).Equal(metrics.AnnualDividendIncome))
	expectedCredits := decimal.NewFromInt(4000).Mul(decimal.NewFromFloat(0.3)).Div(decimal.NewFromFloat(0.7))
	assert.True(t, expectedCredits.Equal(metrics.AnnualFrankingCredits),
		"expected %s, got %s", expectedCredits, metrics.AnnualFrankingCredits)
}

func TestDataQuality(t *testing.T) {
	empty := &domain.Snapshot{}
	assert.True(t, DataQuality(empty).IsZero())

	full := &domain.Snapshot{
		Income:      []domain.IncomeItem{{ID: "i"}},
		Expenses:    []domain.ExpenseItem{{ID: "e"}},
		Accounts:    []domain.Account{{ID: "a"}},
		Investments: []domain.Investment{{ID: "v"}},
		Loans:       []domain.LoanInput{{ID: "l"}},
		Properties:  []domain.Property{{ID: "p"}},
	}
	assert.True(t, decimal.NewFromInt(1).Equal(DataQuality(full)))

	// Income and expenses dominate the weighting.
	incomeOnly := &domain.Snapshot{Income: []domain.IncomeItem{{ID: "i"}}}
	assert.True(t, decimal.NewFromFloat(0.25).Equal(DataQuality(incomeOnly)))

	accountsOnly := &domain.Snapshot{Accounts: []domain.Account{{ID: "a"}}}
	assert.True(t, decimal.NewFromFloat(0.15).Equal(DataQuality(accountsOnly)))
}
