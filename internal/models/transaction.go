package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
// Amount is always positive; Type carries the direction.
type Transaction struct {
	TransactionID     string          `db:"transaction_id" json:"transaction_id"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Type              string          `db:"type" json:"type"`
	CategoryID        *int64          `db:"category_id" json:"category_id"`
	PaidFromAccountID *string         `db:"paid_from_account_id" json:"paid_from_account_id"`
	PaidToAccountID   *string         `db:"paid_to_account_id" json:"paid_to_account_id"`
	TransactionDate   time.Time       `db:"transaction_date" json:"transaction_date"`
	Description       string          `db:"description" json:"description"`
	Note              string          `db:"note" json:"note"`
	CreatedBy         string          `db:"created_by" json:"created_by"`
	AuditFields

	// CategoryName is joined from categories, never written.
	CategoryName string `db:"category_name" json:"-"`
}
