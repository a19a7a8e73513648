package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanCategory distinguishes owner-occupier debt from investment debt.
type LoanCategory string

const (
	LoanCategoryHome       LoanCategory = "HOME"
	LoanCategoryInvestment LoanCategory = "INVESTMENT"
)

// RateType indicates whether a loan's rate is variable or fixed.
type RateType string

const (
	RateTypeVariable RateType = "VARIABLE"
	RateTypeFixed    RateType = "FIXED"
)

// LoanInput represents one liability as supplied by the data layer.
// AnnualRate is a decimal fraction (0.0625 for 6.25%), never a percentage.
type LoanInput struct {
	ID                  string           `yaml:"id" json:"id"`
	Name                string           `yaml:"name" json:"name"`
	Category            LoanCategory     `yaml:"category" json:"category"`
	Principal           decimal.Decimal  `yaml:"principal" json:"principal"`
	AnnualRate          decimal.Decimal  `yaml:"annual_rate" json:"annual_rate"`
	RateType            RateType         `yaml:"rate_type" json:"rate_type"`
	FixedRateExpiry     *time.Time       `yaml:"fixed_rate_expiry,omitempty" json:"fixed_rate_expiry,omitempty"`
	InterestOnly        bool             `yaml:"interest_only" json:"interest_only"`
	RemainingTermMonths int              `yaml:"remaining_term_months" json:"remaining_term_months"`
	MinimumRepayment    decimal.Decimal  `yaml:"minimum_repayment" json:"minimum_repayment"`
	RepaymentFrequency  Frequency        `yaml:"repayment_frequency" json:"repayment_frequency"`
	OffsetBalance       decimal.Decimal  `yaml:"offset_balance" json:"offset_balance"`
	SecuredPropertyID   string           `yaml:"secured_property_id,omitempty" json:"secured_property_id,omitempty"`
	ExtraRepaymentCap   *decimal.Decimal `yaml:"extra_repayment_cap,omitempty" json:"extra_repayment_cap,omitempty"`
}

// AllocationMethod names the surplus allocation strategy for the debt planner.
type AllocationMethod string

const (
	AllocationAvalanche AllocationMethod = "AVALANCHE"
	AllocationSnowball  AllocationMethod = "SNOWBALL"
	AllocationCustom    AllocationMethod = "CUSTOM"
)

// PlannerSettings configures one debt planning run. Strategy, Surplus and
// SurplusFrequency must all be present for a run to execute. CustomOrder is
// only consulted for AllocationCustom and must be a permutation of loan ids.
type PlannerSettings struct {
	Strategy         AllocationMethod `yaml:"strategy" json:"strategy"`
	Surplus          decimal.Decimal  `yaml:"surplus" json:"surplus"`
	SurplusFrequency Frequency        `yaml:"surplus_frequency" json:"surplus_frequency"`
	CustomOrder      []string         `yaml:"custom_order,omitempty" json:"custom_order,omitempty"`
}
