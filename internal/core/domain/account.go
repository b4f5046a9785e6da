package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType tags the kind of store of value an account represents.
type AccountType string

const (
	Bank       AccountType = "bank"
	Card       AccountType = "card"
	Wallet     AccountType = "wallet"
	Cash       AccountType = "cash"
	Investment AccountType = "investment"
	Crypto     AccountType = "crypto"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Bank, Card, Wallet, Cash, Investment, Crypto:
		return true
	}
	return false
}

// Account represents a financial account owned by a single user.
//
// CurrentBalance is InitialBalance plus every settled transaction that credits the
// account as destination, minus every one that debits it as source.
type Account struct {
	AccountID      string          `json:"accountID"`
	OwnerID        string          `json:"ownerID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
	AuditFields
}

// AccountIDs returns the identifiers of the given accounts, preserving order.
func AccountIDs(accounts []Account) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.AccountID)
	}
	return ids
}
