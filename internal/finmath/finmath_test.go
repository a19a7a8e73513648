package finmath

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
)

func TestFrequencyConversions(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		from     domain.Frequency
		to       domain.Frequency
		expected decimal.Decimal
	}{
		{
			name:     "weekly to annual",
			amount:   decimal.NewFromInt(100),
			from:     domain.FrequencyWeekly,
			to:       domain.FrequencyAnnual,
			expected: decimal.NewFromInt(5200),
		},
		{
			name:     "annual to monthly",
			amount:   decimal.NewFromInt(1200),
			from:     domain.FrequencyAnnual,
			to:       domain.FrequencyMonthly,
			expected: decimal.NewFromInt(100),
		},
		{
			name:     "fortnightly to monthly",
			amount:   decimal.NewFromInt(1000),
			from:     domain.FrequencyFortnightly,
			to:       domain.FrequencyMonthly,
			expected: decimal.NewFromInt(26000).Div(decimal.NewFromInt(12)),
		},
		{
			name:     "same frequency is identity",
			amount:   decimal.NewFromFloat(123.45),
			from:     domain.FrequencyQuarterly,
			to:       domain.FrequencyQuarterly,
			expected: decimal.NewFromFloat(123.45),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.amount, tt.from, tt.to)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestConvertInvalidFrequency(t *testing.T) {
	got := Convert(decimal.NewFromInt(100), domain.Frequency("DAILY"), domain.FrequencyMonthly)
	assert.True(t, got.IsZero())

	got = ToAnnual(decimal.NewFromInt(100), domain.Frequency(""))
	assert.True(t, got.IsZero())
}

func TestEffectivePrincipal(t *testing.T) {
	principal := decimal.NewFromInt(400000)
	offset := decimal.NewFromInt(50000)

	got := EffectivePrincipal(principal, offset)
	assert.True(t, decimal.NewFromInt(350000).Equal(got))

	// Offset exceeding the balance never produces a negative principal.
	got = EffectivePrincipal(decimal.NewFromInt(10000), decimal.NewFromInt(25000))
	assert.True(t, got.IsZero())
}

func TestInterestForPeriod(t *testing.T) {
	// $300,000 at 6% annual over 12 periods accrues $1,500 per month.
	got := InterestForPeriod(decimal.NewFromInt(300000), decimal.NewFromFloat(0.06), 12)
	assert.True(t, decimal.NewFromInt(1500).Equal(got), "got %s", got)

	got = InterestForPeriod(decimal.NewFromInt(300000), decimal.NewFromFloat(0.06), 0)
	assert.True(t, got.IsZero())
}

func TestPIRepayment(t *testing.T) {
	// Standard 30-year mortgage check: $400,000 at 6% over 360 months is
	// about $2,398.20 per month.
	repayment := PIRepayment(decimal.NewFromInt(400000), decimal.NewFromFloat(0.06), 360)

	low := decimal.NewFromFloat(2398.10)
	high := decimal.NewFromFloat(2398.30)
	require.True(t, repayment.GreaterThan(low), "repayment %s below expected band", repayment)
	require.True(t, repayment.LessThan(high), "repayment %s above expected band", repayment)
}

func TestPIRepaymentDegenerateCases(t *testing.T) {
	// Zero rate falls back to straight-line amortization.
	got := PIRepayment(decimal.NewFromInt(12000), decimal.Zero, 12)
	assert.True(t, decimal.NewFromInt(1000).Equal(got))

	// Zero or negative term repays the whole principal.
	got = PIRepayment(decimal.NewFromInt(5000), decimal.NewFromFloat(0.05), 0)
	assert.True(t, decimal.NewFromInt(5000).Equal(got))

	// Zero principal owes nothing.
	got = PIRepayment(decimal.Zero, decimal.NewFromFloat(0.05), 360)
	assert.True(t, got.IsZero())
}

func TestLVRAndEquity(t *testing.T) {
	lvr := LVR(decimal.NewFromInt(400000), decimal.NewFromInt(500000))
	assert.True(t, decimal.NewFromFloat(0.8).Equal(lvr))

	assert.True(t, LVR(decimal.NewFromInt(100), decimal.Zero).IsZero())

	equity := Equity(decimal.NewFromInt(500000), decimal.NewFromInt(400000))
	assert.True(t, decimal.NewFromInt(100000).Equal(equity))

	// Underwater properties report zero equity, not negative.
	assert.True(t, Equity(decimal.NewFromInt(300000), decimal.NewFromInt(400000)).IsZero())
}

func TestRentalYield(t *testing.T) {
	yield := RentalYield(decimal.NewFromInt(26000), decimal.NewFromInt(650000))
	assert.True(t, decimal.NewFromFloat(0.04).Equal(yield))

	assert.True(t, RentalYield(decimal.NewFromInt(26000), decimal.Zero).IsZero())
}

func TestCompoundGrowth(t *testing.T) {
	// $100,000 at 7% over 10 years.
	got := CompoundGrowth(decimal.NewFromInt(100000), decimal.NewFromFloat(0.07), 10)
	expected := decimal.NewFromFloat(196715.14)
	diff := got.Sub(expected).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "got %s", got)

	// Year zero returns the base unchanged.
	base := decimal.NewFromInt(100000)
	assert.True(t, base.Equal(CompoundGrowth(base, decimal.NewFromFloat(0.07), 0)))
}
