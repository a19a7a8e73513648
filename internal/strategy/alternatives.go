package strategy

import "github.com/ozplan/ozplan/internal/domain"

// Alternative is one different approach to the same underlying finding.
// Alternatives are computed on demand and never persisted.
type Alternative struct {
	Title    string `json:"title"`
	Approach string `json:"approach"`
	TradeOff string `json:"trade_off"`
}

// Alternatives derives two or three alternative approaches for a
// recommendation based on its category.
func Alternatives(rec *domain.StrategyRecommendation) []Alternative {
	switch rec.Finding.Category {
	case domain.CategoryCashflow:
		return []Alternative{
			{Title: "Zero-based budget", Approach: "Allocate every dollar of income to a category each month.", TradeOff: "High upkeep; works best with stable income."},
			{Title: "Automate transfers", Approach: "Split pay into spending, saving and investing accounts on payday.", TradeOff: "Less flexible when expenses spike."},
		}
	case domain.CategoryDebt:
		return []Alternative{
			{Title: "Rate renegotiation", Approach: "Ask the current lender to match a written competitor offer.", TradeOff: "Smaller saving than refinancing but no switching costs."},
			{Title: "Offset instead of repay", Approach: "Park surplus in an offset account rather than making extra repayments.", TradeOff: "Same interest saving with redraw flexibility, but more temptation to spend."},
			{Title: "Shorten the term", Approach: "Refinance to a shorter loan term at the same rate.", TradeOff: "Locks in the higher repayment; less cash-flow slack."},
		}
	case domain.CategoryInvestment:
		return []Alternative{
			{Title: "Rebalance with new money", Approach: "Direct contributions to underweight assets instead of selling.", TradeOff: "Slower to correct; avoids capital gains tax."},
			{Title: "Switch to a diversified fund", Approach: "Replace single holdings with a broad index fund.", TradeOff: "Realises gains now; removes single-name upside."},
		}
	case domain.CategoryProperty:
		return []Alternative{
			{Title: "Rent review", Approach: "Reprice the lease to market at the next renewal.", TradeOff: "Tenant turnover risk."},
			{Title: "Equity recycle", Approach: "Sell and redeploy equity into higher-yielding assets.", TradeOff: "Transaction costs and capital gains tax."},
		}
	case domain.CategoryRisk:
		return []Alternative{
			{Title: "Fix part of the book", Approach: "Fix the rate on a portion of debt to cap repayment risk.", TradeOff: "No benefit if rates fall; break costs apply."},
			{Title: "Income protection", Approach: "Insure the income that services the debt.", TradeOff: "Premium cost; policy definitions matter."},
		}
	case domain.CategoryLiquidity:
		return []Alternative{
			{Title: "Laddered term deposits", Approach: "Stagger maturities so some cash is always near-term.", TradeOff: "Lower rate than the longest term."},
			{Title: "Offset as buffer", Approach: "Hold the buffer in an offset account against the home loan.", TradeOff: "Saves interest instead of earning it; same liquidity."},
		}
	case domain.CategoryTax:
		return []Alternative{
			{Title: "Spouse contribution", Approach: "Contribute to a lower-earning spouse's super for the tax offset.", TradeOff: "Funds locked until preservation age."},
			{Title: "Deductible prepayment", Approach: "Prepay up to 12 months of investment loan interest before June 30.", TradeOff: "Brings forward the deduction once; needs the cash now."},
		}
	case domain.CategoryTimeHorizon:
		return []Alternative{
			{Title: "Glide path", Approach: "Shift allocation toward defensive assets on a fixed schedule.", TradeOff: "Mechanical; ignores valuations."},
			{Title: "Work longer part-time", Approach: "Extend earning years at reduced hours instead of selling assets.", TradeOff: "Depends on health and employer flexibility."},
		}
	default:
		return []Alternative{
			{Title: "Seek advice", Approach: "Take the finding to a licensed adviser for tailored options.", TradeOff: "Advice cost."},
		}
	}
}
