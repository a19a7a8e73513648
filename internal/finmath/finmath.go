// Package finmath provides the pure frequency and amortization primitives
// shared by the debt planner, forecast engine and analyzers. Every function
// guards numeric degeneracy inline and returns decimal.Zero rather than
// propagating division by zero.
package finmath

import (
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
)

var (
	decimalZero   = decimal.Zero
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
)

// ToAnnual converts a periodic amount to its annual equivalent.
func ToAnnual(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	if !freq.Valid() {
		return decimalZero
	}
	return amount.Mul(freq.PeriodsPerYearDecimal())
}

// FromAnnual converts an annual amount to a periodic one.
func FromAnnual(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	if !freq.Valid() {
		return decimalZero
	}
	return amount.Div(freq.PeriodsPerYearDecimal())
}

// Convert re-expresses an amount from one frequency in another.
func Convert(amount decimal.Decimal, from, to domain.Frequency) decimal.Decimal {
	if !from.Valid() || !to.Valid() {
		return decimalZero
	}
	return FromAnnual(ToAnnual(amount, from), to)
}

// EffectivePrincipal is the interest-bearing principal after the linked
// offset balance is applied. Never negative.
func EffectivePrincipal(principal, offsetBalance decimal.Decimal) decimal.Decimal {
	effective := principal.Sub(offsetBalance)
	if effective.LessThan(decimalZero) {
		return decimalZero
	}
	return effective
}

// InterestForPeriod accrues one period of interest on a principal at an
// annual rate split across periodsPerYear.
func InterestForPeriod(principal, annualRate decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodsPerYear <= 0 {
		return decimalZero
	}
	return principal.Mul(annualRate.Div(decimal.NewFromInt(int64(periodsPerYear))))
}

// PIRepayment computes the standard monthly principal-and-interest
// repayment P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate. A zero
// rate or term degenerates to straight-line principal/termMonths.
func PIRepayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if principal.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	if termMonths <= 0 {
		return principal
	}
	if annualRate.LessThanOrEqual(decimalZero) {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}

	monthlyRate := annualRate.Div(decimalTwelve)
	compound := decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
	denominator := compound.Sub(decimalOne)
	if denominator.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	return principal.Mul(monthlyRate).Mul(compound).Div(denominator)
}

// LVR is the loan-to-value ratio as a fraction. A zero asset value yields 0.
func LVR(loanBalance, assetValue decimal.Decimal) decimal.Decimal {
	if assetValue.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return loanBalance.Div(assetValue)
}

// Equity is asset value less debt. Never negative.
func Equity(assetValue, loanBalance decimal.Decimal) decimal.Decimal {
	equity := assetValue.Sub(loanBalance)
	if equity.LessThan(decimalZero) {
		return decimalZero
	}
	return equity
}

// RentalYield is gross annual rent over property value as a fraction.
// A zero property value yields 0.
func RentalYield(annualRent, propertyValue decimal.Decimal) decimal.Decimal {
	if propertyValue.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return annualRent.Div(propertyValue)
}

// CompoundGrowth returns base*(1+rate)^years. Negative year counts return
// the base unchanged.
func CompoundGrowth(base, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return base
	}
	return base.Mul(decimalOne.Add(rate).Pow(decimal.NewFromInt(int64(years))))
}
