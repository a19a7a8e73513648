package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Frequency represents how often a payment or amount recurs.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyAnnual      Frequency = "ANNUAL"
)

// PeriodsPerYear returns the number of periods in a year for the frequency.
// Unknown frequencies return 0 so callers can detect bad input rather than
// silently annualising with a wrong factor.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyFortnightly:
		return 26
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyAnnual:
		return 1
	default:
		return 0
	}
}

// PeriodsPerYearDecimal returns PeriodsPerYear as a decimal for rate math.
func (f Frequency) PeriodsPerYearDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(f.PeriodsPerYear()))
}

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	return f.PeriodsPerYear() > 0
}

// ValidateFrequency returns an error for unsupported frequency values.
func ValidateFrequency(f Frequency) error {
	if !f.Valid() {
		return fmt.Errorf("unsupported frequency %q", string(f))
	}
	return nil
}
