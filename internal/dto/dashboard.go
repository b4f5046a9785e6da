package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the landing view payload. Error is set when loading failed and
// every other field holds its zero state.
type DashboardResponse struct {
	Month              string                `json:"month"`
	Accounts           []AccountResponse     `json:"accounts"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	Stats              domain.DashboardStats `json:"stats"`
	Error              string                `json:"error,omitempty"`
}

// ToDashboardResponse converts a domain.Dashboard to its DTO.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Month:              d.Month.Format("2006-01"),
		Accounts:           ToListAccountResponse(d.Accounts),
		RecentTransactions: ToTransactionResponses(d.RecentTransactions),
		Stats:              d.Stats,
	}
}

// EmptyDashboardResponse is the zero state rendered when the dashboard could not load.
func EmptyDashboardResponse(month time.Time, errMsg string) DashboardResponse {
	return DashboardResponse{
		Month:              month.Format("2006-01"),
		Accounts:           []AccountResponse{},
		RecentTransactions: []TransactionResponse{},
		Stats: domain.DashboardStats{
			TotalBalance: decimal.Zero,
			Rollup: domain.Rollup{
				MonthlyIncome:  decimal.Zero,
				MonthlyExpense: decimal.Zero,
				Savings:        decimal.Zero,
				SavingsRate:    decimal.Zero,
			},
		},
		Error: errMsg,
	}
}

// MonthRangeResponse lists the selectable months as YYYY-MM strings, ascending.
type MonthRangeResponse struct {
	Months  []string `json:"months"`
	Current string   `json:"current"`
}

// ToMonthRangeResponse formats a month range.
func ToMonthRangeResponse(months []time.Time, current time.Time) MonthRangeResponse {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.Format("2006-01")
	}
	return MonthRangeResponse{Months: out, Current: current.Format("2006-01")}
}

// BalancesParams controls the multi-currency view.
type BalancesParams struct {
	Hidden bool `form:"hidden"`
}

// AccountBalanceView is one account expressed in both its own and the home currency.
// The decimal fields are omitted while balances are hidden.
type AccountBalanceView struct {
	AccountID     string           `json:"accountID"`
	Name          string           `json:"name"`
	CurrencyCode  string           `json:"currencyCode"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	HomeBalance   *decimal.Decimal `json:"homeBalance,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	Formatted     string           `json:"formatted"`
	HomeFormatted string           `json:"homeFormatted"`
	ApproximateFX bool             `json:"approximateFx"`
}

// BalancesResponse is the multi-currency balances view.
type BalancesResponse struct {
	HomeCurrency       string               `json:"homeCurrency"`
	Hidden             bool                 `json:"hidden"`
	Accounts           []AccountBalanceView `json:"accounts"`
	TotalHome          *decimal.Decimal     `json:"totalHome,omitempty"`
	TotalHomeFormatted string               `json:"totalHomeFormatted"`
}
