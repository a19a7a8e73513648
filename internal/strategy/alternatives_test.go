package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
)

func TestAlternativesPerCategory(t *testing.T) {
	categories := []domain.FindingCategory{
		domain.CategoryCashflow,
		domain.CategoryDebt,
		domain.CategoryInvestment,
		domain.CategoryProperty,
		domain.CategoryRisk,
		domain.CategoryLiquidity,
		domain.CategoryTax,
		domain.CategoryTimeHorizon,
	}

	for _, category := range categories {
		t.Run(string(category), func(t *testing.T) {
			rec := &domain.StrategyRecommendation{
				Finding: domain.StrategyFinding{Category: category},
			}
			alts := Alternatives(rec)
			require.GreaterOrEqual(t, len(alts), 2)
			for _, alt := range alts {
				assert.NotEmpty(t, alt.Title)
				assert.NotEmpty(t, alt.Approach)
				assert.NotEmpty(t, alt.TradeOff)
			}
		})
	}
}

func TestAlternativesUnknownCategory(t *testing.T) {
	rec := &domain.StrategyRecommendation{
		Finding: domain.StrategyFinding{Category: domain.FindingCategory("MYSTERY")},
	}
	alts := Alternatives(rec)
	require.Len(t, alts, 1)
	assert.NotEmpty(t, alts[0].Title)
}
