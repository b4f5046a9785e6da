package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row shape of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id" json:"account_id"`
	OwnerID        string          `db:"owner_id" json:"owner_id"`
	Name           string          `db:"name" json:"name"`
	AccountType    string          `db:"account_type" json:"account_type"`
	CurrencyCode   string          `db:"currency_code" json:"currency_code"`
	InitialBalance decimal.Decimal `db:"initial_balance" json:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance" json:"current_balance"`
	Color          string          `db:"color" json:"color"`
	Icon           string          `db:"icon" json:"icon"`
	AuditFields
}
