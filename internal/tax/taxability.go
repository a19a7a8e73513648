// Package tax classifies income items under ATO taxability rules. The
// classification is a pure function of the income context: no I/O, no
// persisted state, deterministic output.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
)

// CorporateTaxRate is the company tax rate used to gross up franking
// credits.
var CorporateTaxRate = decimal.NewFromFloat(0.30)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// FrankingCredit computes the credit attached to a franked dividend:
// dividend * (frankingPct/100) * (rate / (1 - rate)).
func FrankingCredit(dividend, frankingPercent decimal.Decimal) decimal.Decimal {
	if dividend.LessThanOrEqual(decimalZero) || frankingPercent.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	frankedPortion := frankingPercent.Div(decimalHundred)
	gross := CorporateTaxRate.Div(decimalOne.Sub(CorporateTaxRate))
	return dividend.Mul(frankedPortion).Mul(gross)
}

// DetermineTaxability classifies one income item. The dispatch is over the
// closed domain.IncomeType set; unknown types are classified fully taxable
// so classification failures never understate a tax liability.
func DetermineTaxability(ctx domain.IncomeContext) domain.TaxabilityResult {
	amount := ctx.Amount
	if amount.LessThan(decimalZero) {
		amount = decimalZero
	}

	switch ctx.Type {
	case domain.IncomeSalary:
		return taxable("salary", amount, "Salary and wages are assessable income under s6-5 ITAA 1997.")
	case domain.IncomeRent:
		return taxable("rent", amount, "Rental income is assessable; associated expenses may be deductible.")
	case domain.IncomeDividendFranked:
		credit := FrankingCredit(amount, ctx.FrankingPercent)
		grossed := amount.Add(credit)
		return domain.TaxabilityResult{
			Category:        "franked_dividend",
			TaxableAmount:   grossed,
			ExemptAmount:    decimalZero,
			FrankingCredits: credit,
			GrossedUpAmount: grossed,
			Explanation:     "Franked dividends are grossed up by attached franking credits; the credits offset tax payable.",
		}
	case domain.IncomeDividendUnfranked:
		return taxable("unfranked_dividend", amount, "Unfranked dividends are fully assessable with no attached credits.")
	case domain.IncomeInterest:
		return taxable("interest", amount, "Interest earned on deposits is assessable income.")
	case domain.IncomeGift:
		return exempt("gift", amount, "Genuine gifts are not assessable income.")
	case domain.IncomeInheritance:
		return exempt("inheritance", amount, "Inherited amounts are not assessable; later earnings on them are.")
	case domain.IncomeInsurancePayout:
		return exempt("insurance_payout", amount, "Personal insurance payouts are generally capital receipts, not income.")
	case domain.IncomeGovernmentPayment:
		if ctx.GovernmentSubtype == domain.GovernmentExempt {
			return exempt("government_payment", amount, "This government payment subtype is exempt income.")
		}
		return taxable("government_payment", amount, "Most government payments are assessable unless specifically exempt.")
	case domain.IncomeHobby:
		return exempt("hobby", amount, "Hobby receipts are not assessable while the activity is not a business.")
	default:
		// Fail-safe toward tax liability, never toward exemption.
		return taxable("other", amount, "Unclassified income is treated as assessable.")
	}
}

func taxable(category string, amount decimal.Decimal, explanation string) domain.TaxabilityResult {
	return domain.TaxabilityResult{
		Category:        category,
		TaxableAmount:   amount,
		ExemptAmount:    decimalZero,
		FrankingCredits: decimalZero,
		GrossedUpAmount: amount,
		Explanation:     explanation,
	}
}

func exempt(category string, amount decimal.Decimal, explanation string) domain.TaxabilityResult {
	return domain.TaxabilityResult{
		Category:        category,
		TaxableAmount:   decimalZero,
		ExemptAmount:    amount,
		FrankingCredits: decimalZero,
		GrossedUpAmount: decimalZero,
		Explanation:     explanation,
	}
}
