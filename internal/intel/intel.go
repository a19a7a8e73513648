// Package intel computes cross-entity derived metrics from a snapshot:
// per-property LVR and yields, depreciation, franking credit totals and a
// data-quality score. The analyzers and forecast consume these rather than
// re-deriving them.
package intel

import (
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/finmath"
	"github.com/ozplan/ozplan/internal/tax"
)

var decimalZero = decimal.Zero

// CapitalWorksRate is the annual building depreciation rate (2.5% over 40
// years, Division 43).
var CapitalWorksRate = decimal.NewFromFloat(0.025)

// PropertyMetrics summarises one property against its secured debt.
type PropertyMetrics struct {
	PropertyID         string          `json:"property_id"`
	LVR                decimal.Decimal `json:"lvr"`
	Equity             decimal.Decimal `json:"equity"`
	GrossYield         decimal.Decimal `json:"gross_yield"`
	NetYield           decimal.Decimal `json:"net_yield"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
}

// PortfolioMetrics is the cross-entity view of one snapshot.
type PortfolioMetrics struct {
	TotalAssets          decimal.Decimal   `json:"total_assets"`
	TotalDebt            decimal.Decimal   `json:"total_debt"`
	NetWorth             decimal.Decimal   `json:"net_worth"`
	AggregateLVR         decimal.Decimal   `json:"aggregate_lvr"`
	TotalEquity          decimal.Decimal   `json:"total_equity"`
	Properties           []PropertyMetrics `json:"properties"`
	AnnualDividendIncome decimal.Decimal   `json:"annual_dividend_income"`
	AnnualFrankingCredits decimal.Decimal  `json:"annual_franking_credits"`
	DataQuality          decimal.Decimal   `json:"data_quality"`
}

// Compute derives portfolio metrics from a read-only snapshot.
func Compute(snapshot *domain.Snapshot) *PortfolioMetrics {
	metrics := &PortfolioMetrics{
		TotalDebt: snapshot.TotalDebt(),
	}

	propertyValue := snapshot.TotalPropertyValue()
	metrics.TotalAssets = snapshot.TotalCash().
		Add(propertyValue).
		Add(snapshot.TotalInvestmentValue())
	metrics.NetWorth = metrics.TotalAssets.Sub(metrics.TotalDebt)
	metrics.AggregateLVR = finmath.LVR(metrics.TotalDebt, propertyValue)
	metrics.TotalEquity = finmath.Equity(propertyValue, metrics.TotalDebt)

	debtByProperty := make(map[string]decimal.Decimal)
	for _, loan := range snapshot.Loans {
		if loan.SecuredPropertyID != "" {
			debtByProperty[loan.SecuredPropertyID] = debtByProperty[loan.SecuredPropertyID].Add(loan.Principal)
		}
	}

	for _, p := range snapshot.Properties {
		debt := debtByProperty[p.ID]
		pm := PropertyMetrics{
			PropertyID: p.ID,
			LVR:        finmath.LVR(debt, p.Value),
			Equity:     finmath.Equity(p.Value, debt),
			GrossYield: finmath.RentalYield(p.AnnualRentalIncome, p.Value),
			NetYield:   finmath.RentalYield(p.AnnualRentalIncome.Sub(p.AnnualExpenses), p.Value),
		}
		if p.IsInvestment && p.BuildingCost.GreaterThan(decimalZero) {
			pm.AnnualDepreciation = p.BuildingCost.Mul(CapitalWorksRate)
		}
		metrics.Properties = append(metrics.Properties, pm)
	}

	for _, inv := range snapshot.Investments {
		dividends := inv.Value.Mul(inv.DividendYield)
		metrics.AnnualDividendIncome = metrics.AnnualDividendIncome.Add(dividends)
		metrics.AnnualFrankingCredits = metrics.AnnualFrankingCredits.Add(
			tax.FrankingCredit(dividends, inv.FrankingPercent))
	}

	metrics.DataQuality = DataQuality(snapshot)
	return metrics
}

// DataQuality scores snapshot completeness in [0,1]. Income and expense
// coverage matter most: analyzers damp confidence when they are missing.
func DataQuality(snapshot *domain.Snapshot) decimal.Decimal {
	score := decimalZero
	add := func(populated bool, weight float64) {
		if populated {
			score = score.Add(decimal.NewFromFloat(weight))
		}
	}
	add(len(snapshot.Income) > 0, 0.25)
	add(len(snapshot.Expenses) > 0, 0.25)
	add(len(snapshot.Accounts) > 0, 0.15)
	add(len(snapshot.Investments) > 0, 0.15)
	add(len(snapshot.Loans) > 0, 0.10)
	add(len(snapshot.Properties) > 0, 0.10)
	return score
}
