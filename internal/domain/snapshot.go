package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a deposit account.
type AccountType string

const (
	AccountTransaction AccountType = "TRANSACTION"
	AccountSavings     AccountType = "SAVINGS"
	AccountOffset      AccountType = "OFFSET"
	AccountTermDeposit AccountType = "TERM_DEPOSIT"
)

// Account is a deposit account. Offset accounts carry the id of the loan
// whose interest-bearing principal they reduce.
type Account struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Type         AccountType     `yaml:"type" json:"type"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	LinkedLoanID string          `yaml:"linked_loan_id,omitempty" json:"linked_loan_id,omitempty"`
}

// Property is a real-estate holding.
type Property struct {
	ID                 string          `yaml:"id" json:"id"`
	Name               string          `yaml:"name" json:"name"`
	Value              decimal.Decimal `yaml:"value" json:"value"`
	PurchasePrice      decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	PurchaseDate       *time.Time      `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	IsInvestment       bool            `yaml:"is_investment" json:"is_investment"`
	AnnualRentalIncome decimal.Decimal `yaml:"annual_rental_income" json:"annual_rental_income"`
	AnnualExpenses     decimal.Decimal `yaml:"annual_expenses" json:"annual_expenses"`
	BuildingCost       decimal.Decimal `yaml:"building_cost" json:"building_cost"`
}

// InvestmentType classifies an investment holding.
type InvestmentType string

const (
	InvestmentShares      InvestmentType = "SHARES"
	InvestmentETF         InvestmentType = "ETF"
	InvestmentManagedFund InvestmentType = "MANAGED_FUND"
	InvestmentSuper       InvestmentType = "SUPER"
	InvestmentCrypto      InvestmentType = "CRYPTO"
)

// Investment is one investment holding. DividendYield is an annual decimal
// fraction of Value; FrankingPercent is 0-100.
type Investment struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Type            InvestmentType  `yaml:"type" json:"type"`
	Value           decimal.Decimal `yaml:"value" json:"value"`
	DividendYield   decimal.Decimal `yaml:"dividend_yield" json:"dividend_yield"`
	FrankingPercent decimal.Decimal `yaml:"franking_percent" json:"franking_percent"`
	Sector          string          `yaml:"sector,omitempty" json:"sector,omitempty"`
}

// IncomeItem is a recurring income stream.
type IncomeItem struct {
	ID                string          `yaml:"id" json:"id"`
	Name              string          `yaml:"name" json:"name"`
	Type              IncomeType      `yaml:"type" json:"type"`
	Amount            decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency         Frequency       `yaml:"frequency" json:"frequency"`
	FrankingPercent   decimal.Decimal `yaml:"franking_percent" json:"franking_percent"`
	GovernmentSubtype GovernmentSubtype `yaml:"government_subtype,omitempty" json:"government_subtype,omitempty"`
}

// ExpenseItem is a recurring expense. Essential expenses feed the
// emergency-fund calculation.
type ExpenseItem struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	Essential bool            `yaml:"essential" json:"essential"`
}

// Snapshot is the fully materialised view of one user's financial entities
// handed to the engines by the data layer. Engines treat it as read-only.
type Snapshot struct {
	UserID      string        `yaml:"user_id" json:"user_id"`
	AsOf        time.Time     `yaml:"as_of" json:"as_of"`
	CurrentAge  int           `yaml:"current_age" json:"current_age"`
	Accounts    []Account     `yaml:"accounts" json:"accounts"`
	Loans       []LoanInput   `yaml:"loans" json:"loans"`
	Properties  []Property    `yaml:"properties" json:"properties"`
	Investments []Investment  `yaml:"investments" json:"investments"`
	Income      []IncomeItem  `yaml:"income" json:"income"`
	Expenses    []ExpenseItem `yaml:"expenses" json:"expenses"`
}

// LiquidCash sums transaction, savings and offset balances.
func (s *Snapshot) LiquidCash() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		switch a.Type {
		case AccountTransaction, AccountSavings, AccountOffset:
			total = total.Add(a.Balance)
		}
	}
	return total
}

// TotalCash sums every account balance.
func (s *Snapshot) TotalCash() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalDebt sums all loan principals.
func (s *Snapshot) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Loans {
		total = total.Add(l.Principal)
	}
	return total
}

// TotalPropertyValue sums current property values.
func (s *Snapshot) TotalPropertyValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Properties {
		total = total.Add(p.Value)
	}
	return total
}

// TotalInvestmentValue sums investment holding values.
func (s *Snapshot) TotalInvestmentValue() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range s.Investments {
		total = total.Add(inv.Value)
	}
	return total
}

// AnnualIncome annualises every income stream.
func (s *Snapshot) AnnualIncome() decimal.Decimal {
	total := decimal.Zero
	for _, inc := range s.Income {
		if inc.Frequency.Valid() {
			total = total.Add(inc.Amount.Mul(inc.Frequency.PeriodsPerYearDecimal()))
		}
	}
	return total
}

// AnnualEmploymentIncome annualises salary income only. The forecast engine
// replaces this portion with retirement income at the retirement age.
func (s *Snapshot) AnnualEmploymentIncome() decimal.Decimal {
	total := decimal.Zero
	for _, inc := range s.Income {
		if inc.Type == IncomeSalary && inc.Frequency.Valid() {
			total = total.Add(inc.Amount.Mul(inc.Frequency.PeriodsPerYearDecimal()))
		}
	}
	return total
}

// AnnualExpenses annualises every expense stream.
func (s *Snapshot) AnnualExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		if e.Frequency.Valid() {
			total = total.Add(e.Amount.Mul(e.Frequency.PeriodsPerYearDecimal()))
		}
	}
	return total
}

// AnnualEssentialExpenses annualises expenses flagged essential.
func (s *Snapshot) AnnualEssentialExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		if e.Essential && e.Frequency.Valid() {
			total = total.Add(e.Amount.Mul(e.Frequency.PeriodsPerYearDecimal()))
		}
	}
	return total
}

// NetWorth is assets minus liabilities at the snapshot date.
func (s *Snapshot) NetWorth() decimal.Decimal {
	return s.TotalCash().
		Add(s.TotalPropertyValue()).
		Add(s.TotalInvestmentValue()).
		Sub(s.TotalDebt())
}
