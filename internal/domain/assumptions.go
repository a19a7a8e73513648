package domain

import "github.com/shopspring/decimal"

// Scenario names a forecast assumption preset.
type Scenario string

const (
	ScenarioConservative Scenario = "CONSERVATIVE"
	ScenarioDefault      Scenario = "DEFAULT"
	ScenarioAggressive   Scenario = "AGGRESSIVE"
)

// AllScenarios lists the scenarios in comparison order.
var AllScenarios = []Scenario{ScenarioConservative, ScenarioDefault, ScenarioAggressive}

// Valid reports whether the scenario is a known preset name.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioConservative, ScenarioDefault, ScenarioAggressive:
		return true
	}
	return false
}

// ForecastAssumptions holds scenario parameters. Rates are annual decimal
// fractions.
type ForecastAssumptions struct {
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	PortfolioReturnRate decimal.Decimal `yaml:"portfolio_return_rate" json:"portfolio_return_rate"`
	PropertyGrowthRate  decimal.Decimal `yaml:"property_growth_rate" json:"property_growth_rate"`
	WageGrowthRate      decimal.Decimal `yaml:"wage_growth_rate" json:"wage_growth_rate"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age"`
}

// AssumptionOverrides is a partial, field-level override of a preset.
// Nil fields leave the preset value untouched.
type AssumptionOverrides struct {
	InflationRate       *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	PortfolioReturnRate *decimal.Decimal `yaml:"portfolio_return_rate,omitempty" json:"portfolio_return_rate,omitempty"`
	PropertyGrowthRate  *decimal.Decimal `yaml:"property_growth_rate,omitempty" json:"property_growth_rate,omitempty"`
	WageGrowthRate      *decimal.Decimal `yaml:"wage_growth_rate,omitempty" json:"wage_growth_rate,omitempty"`
	RetirementAge       *int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
}

// AssumptionsForScenario returns the named immutable preset. Callers always
// receive a fresh copy; presets are never mutated in place.
func AssumptionsForScenario(s Scenario) ForecastAssumptions {
	switch s {
	case ScenarioConservative:
		return ForecastAssumptions{
			InflationRate:       decimal.NewFromFloat(0.03),
			PortfolioReturnRate: decimal.NewFromFloat(0.05),
			PropertyGrowthRate:  decimal.NewFromFloat(0.03),
			WageGrowthRate:      decimal.NewFromFloat(0.02),
			RetirementAge:       67,
		}
	case ScenarioAggressive:
		return ForecastAssumptions{
			InflationRate:       decimal.NewFromFloat(0.025),
			PortfolioReturnRate: decimal.NewFromFloat(0.09),
			PropertyGrowthRate:  decimal.NewFromFloat(0.06),
			WageGrowthRate:      decimal.NewFromFloat(0.035),
			RetirementAge:       60,
		}
	default:
		return ForecastAssumptions{
			InflationRate:       decimal.NewFromFloat(0.025),
			PortfolioReturnRate: decimal.NewFromFloat(0.07),
			PropertyGrowthRate:  decimal.NewFromFloat(0.045),
			WageGrowthRate:      decimal.NewFromFloat(0.03),
			RetirementAge:       65,
		}
	}
}

// Merge applies overrides field-by-field and returns a new record. The
// receiver is not modified.
func (a ForecastAssumptions) Merge(o *AssumptionOverrides) ForecastAssumptions {
	if o == nil {
		return a
	}
	merged := a
	if o.InflationRate != nil {
		merged.InflationRate = *o.InflationRate
	}
	if o.PortfolioReturnRate != nil {
		merged.PortfolioReturnRate = *o.PortfolioReturnRate
	}
	if o.PropertyGrowthRate != nil {
		merged.PropertyGrowthRate = *o.PropertyGrowthRate
	}
	if o.WageGrowthRate != nil {
		merged.WageGrowthRate = *o.WageGrowthRate
	}
	if o.RetirementAge != nil {
		merged.RetirementAge = *o.RetirementAge
	}
	return merged
}
