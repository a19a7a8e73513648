package domain

import "github.com/shopspring/decimal"

// ValidHorizons are the supported forecast lengths in years.
var ValidHorizons = []int{5, 10, 20, 30}

// ValidHorizon reports whether years is a supported forecast horizon.
func ValidHorizon(years int) bool {
	for _, h := range ValidHorizons {
		if years == h {
			return true
		}
	}
	return false
}

// ForecastProjection is one point in a forecast series. Year 0 is the
// snapshot date.
type ForecastProjection struct {
	Year            int             `json:"year"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	CashBalance     decimal.Decimal `json:"cash_balance"`
	TotalEquity     decimal.Decimal `json:"total_equity"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
	PropertyValue   decimal.Decimal `json:"property_value"`
	InvestmentValue decimal.Decimal `json:"investment_value"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	Retired         bool            `json:"retired"`
}

// ForecastSummary carries headline figures for one forecast run.
// ReplacementRatio is first-year retirement income over final
// pre-retirement income.
type ForecastSummary struct {
	FinalNetWorth         decimal.Decimal `json:"final_net_worth"`
	FinalCashBalance      decimal.Decimal `json:"final_cash_balance"`
	RetirementIncome      decimal.Decimal `json:"retirement_income"`
	PreRetirementIncome   decimal.Decimal `json:"pre_retirement_income"`
	ReplacementRatio      decimal.Decimal `json:"replacement_ratio"`
	ComfortableRetirement bool            `json:"comfortable_retirement"`
	YearsToRetirement     int             `json:"years_to_retirement"`
	DebtFreeYear          int             `json:"debt_free_year"`
}

// ForecastResult is the full output of one scenario run.
type ForecastResult struct {
	Scenario    Scenario             `json:"scenario"`
	Assumptions ForecastAssumptions  `json:"assumptions"`
	Projections []ForecastProjection `json:"projections"`
	Summary     ForecastSummary      `json:"summary"`
}

// ScenarioComparison holds independent forecast runs keyed by scenario.
type ScenarioComparison struct {
	Horizon int                          `json:"horizon"`
	Results map[Scenario]*ForecastResult `json:"results"`
}
