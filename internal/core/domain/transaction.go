package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Transaction is a single money movement. Amount is always positive; the direction comes
// from Type together with which account references are populated.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`
	Amount            decimal.Decimal `json:"amount"`
	Type              TransactionType `json:"type"`
	CategoryID        *int64          `json:"categoryID,omitempty"`
	CategoryName      string          `json:"categoryName,omitempty"`
	PaidFromAccountID *string         `json:"paidFromAccountID,omitempty"`
	PaidToAccountID   *string         `json:"paidToAccountID,omitempty"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	Note              string          `json:"note"`
	CreatedBy         string          `json:"createdBy"`
	AuditFields
}

// Validate checks the amount and the account-reference shape required by Type.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	from, to := ptrValue(t.PaidFromAccountID), ptrValue(t.PaidToAccountID)
	switch t.Type {
	case Expense:
		if from == "" || to != "" {
			return errors.New("an expense needs a source account and no destination account")
		}
	case Income:
		if to == "" || from != "" {
			return errors.New("an income needs a destination account and no source account")
		}
	case Transfer:
		if from == "" || to == "" {
			return errors.New("a transfer needs both a source and a destination account")
		}
		if from == to {
			return errors.New("a transfer cannot use the same account on both sides")
		}
	default:
		return errors.New("unknown transaction type '" + string(t.Type) + "'")
	}
	return nil
}

// AccountRefs returns the non-empty account references of the transaction.
func (t *Transaction) AccountRefs() []string {
	refs := make([]string, 0, 2)
	if v := ptrValue(t.PaidFromAccountID); v != "" {
		refs = append(refs, v)
	}
	if v := ptrValue(t.PaidToAccountID); v != "" {
		refs = append(refs, v)
	}
	return refs
}

// TransactionFilter selects a window of transactions touching a set of accounts.
// Start and End are both inclusive.
type TransactionFilter struct {
	AccountIDs []string
	Start      time.Time
	End        time.Time
	Type       *TransactionType
	Search     string
}

func ptrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
