package domain

import "github.com/shopspring/decimal"

// IncomeType is the closed set of income categories the taxability rules
// dispatch on. New categories must be added here so the tax switch stays
// exhaustive.
type IncomeType string

const (
	IncomeSalary            IncomeType = "SALARY"
	IncomeRent              IncomeType = "RENT"
	IncomeDividendFranked   IncomeType = "DIVIDEND_FRANKED"
	IncomeDividendUnfranked IncomeType = "DIVIDEND_UNFRANKED"
	IncomeInterest          IncomeType = "INTEREST"
	IncomeGift              IncomeType = "GIFT"
	IncomeInheritance       IncomeType = "INHERITANCE"
	IncomeInsurancePayout   IncomeType = "INSURANCE_PAYOUT"
	IncomeGovernmentPayment IncomeType = "GOVERNMENT_PAYMENT"
	IncomeHobby             IncomeType = "HOBBY"
	IncomeOther             IncomeType = "OTHER"
)

// GovernmentSubtype splits government payments into taxable and exempt.
type GovernmentSubtype string

const (
	GovernmentTaxable GovernmentSubtype = "TAXABLE"
	GovernmentExempt  GovernmentSubtype = "EXEMPT"
)

// IncomeContext is the input to the taxability classification.
// FrankingPercent is 0-100 and only meaningful for franked dividends.
type IncomeContext struct {
	Type              IncomeType        `yaml:"type" json:"type"`
	Amount            decimal.Decimal   `yaml:"amount" json:"amount"`
	FrankingPercent   decimal.Decimal   `yaml:"franking_percent" json:"franking_percent"`
	GovernmentSubtype GovernmentSubtype `yaml:"government_subtype,omitempty" json:"government_subtype,omitempty"`
}

// TaxabilityResult classifies one income item under ATO rules.
type TaxabilityResult struct {
	Category        string          `json:"category"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	ExemptAmount    decimal.Decimal `json:"exempt_amount"`
	FrankingCredits decimal.Decimal `json:"franking_credits"`
	GrossedUpAmount decimal.Decimal `json:"grossed_up_amount"`
	Explanation     string          `json:"explanation"`
}
