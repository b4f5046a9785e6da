package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,notblank,max=100"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=bank card wallet cash investment crypto"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3,alpha"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	Color          string             `json:"color" binding:"omitempty,max=32"`
	Icon           string             `json:"icon" binding:"omitempty,max=64"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Balance fields are deliberately absent; balances only move through transactions.
type UpdateAccountRequest struct {
	Name  *string `json:"name" binding:"omitempty,notblank,max=100"`
	Color *string `json:"color" binding:"omitempty,max=32"`
	Icon  *string `json:"icon" binding:"omitempty,max=64"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CurrencyCode   string             `json:"currencyCode"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	Color          string             `json:"color"`
	Icon           string             `json:"icon"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		CurrencyCode:   acc.CurrencyCode,
		InitialBalance: acc.InitialBalance,
		CurrentBalance: acc.CurrentBalance,
		Color:          acc.Color,
		Icon:           acc.Icon,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ReconcileAccountResponse reports the balance before and after a reconcile.
type ReconcileAccountResponse struct {
	Account         AccountResponse `json:"account"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Adjusted        bool            `json:"adjusted"`
}
