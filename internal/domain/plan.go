package domain

import "github.com/shopspring/decimal"

// LoanSchedule summarises how one loan fared over a planning run.
// PayoffPeriod is the 1-based period in which the balance reached zero;
// it is 0 when the loan was still open at the end of the run.
type LoanSchedule struct {
	LoanID        string          `json:"loan_id"`
	LoanName      string          `json:"loan_name"`
	PaidOff       bool            `json:"paid_off"`
	PayoffPeriod  int             `json:"payoff_period"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// SurplusAllocation records surplus directed to one loan in one period.
type SurplusAllocation struct {
	Period int             `json:"period"`
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
}

// DebtPlanResult is the output of one debt planning run. InterestSaved is
// measured against a minimum-repayments-only baseline simulated over the
// same bounded horizon. HorizonReached reports that the simulation hit its
// period cap before every loan closed; it is a legitimate outcome, not an
// error.
type DebtPlanResult struct {
	Strategy             AllocationMethod    `json:"strategy"`
	Schedules            []LoanSchedule      `json:"schedules"`
	Allocations          []SurplusAllocation `json:"allocations"`
	TotalInterestPaid    decimal.Decimal     `json:"total_interest_paid"`
	BaselineInterestPaid decimal.Decimal     `json:"baseline_interest_paid"`
	InterestSaved        decimal.Decimal     `json:"interest_saved"`
	MonthsToDebtFree     int                 `json:"months_to_debt_free"`
	HorizonReached       bool                `json:"horizon_reached"`
}

// ScheduleFor returns the schedule for a loan id, or nil if absent.
func (r *DebtPlanResult) ScheduleFor(loanID string) *LoanSchedule {
	for i := range r.Schedules {
		if r.Schedules[i].LoanID == loanID {
			return &r.Schedules[i]
		}
	}
	return nil
}
