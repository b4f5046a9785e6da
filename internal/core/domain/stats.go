package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rollup is the income/expense reduction of a transaction window over an owned account set.
type Rollup struct {
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	Savings        decimal.Decimal `json:"savings"`
	SavingsRate    decimal.Decimal `json:"savingsRate"`
}

// DashboardStats is a Rollup plus the total of all owned account balances.
type DashboardStats struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Rollup
}

// Dashboard is everything the landing view needs in one response.
type Dashboard struct {
	Accounts           []Account      `json:"accounts"`
	RecentTransactions []Transaction  `json:"recentTransactions"`
	Stats              DashboardStats `json:"stats"`
	Month              time.Time      `json:"month"`
}

// MonthView is the transactions of one calendar month along with their rollup.
type MonthView struct {
	Month        time.Time     `json:"month"`
	Transactions []Transaction `json:"transactions"`
	Rollup       Rollup        `json:"rollup"`
}

// AccountFlows holds the summed credits and debits recorded against an account.
type AccountFlows struct {
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Count   int64
}

// CategorySpend is the expense total of one category within a window.
type CategorySpend struct {
	CategoryID   *int64          `json:"categoryID,omitempty"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Share        decimal.Decimal `json:"share"`
}

// MonthlyTotals is one point on the income/expense trend.
type MonthlyTotals struct {
	Month   time.Time       `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
