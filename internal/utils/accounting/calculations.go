package accounting

import (
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges returns the signed effect a transaction has on each account it references.
// EXPENSE debits the source, INCOME credits the destination and TRANSFER does both.
// This is used by every storage backend so they apply the same arithmetic.
func BalanceChanges(txn domain.Transaction) (map[string]decimal.Decimal, error) {
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("transaction %s: %w", txn.TransactionID, err)
	}

	changes := make(map[string]decimal.Decimal, 2)
	switch txn.Type {
	case domain.Expense:
		changes[*txn.PaidFromAccountID] = txn.Amount.Neg()
	case domain.Income:
		changes[*txn.PaidToAccountID] = txn.Amount
	case domain.Transfer:
		changes[*txn.PaidFromAccountID] = txn.Amount.Neg()
		changes[*txn.PaidToAccountID] = txn.Amount
	}
	return changes, nil
}

// ReverseChanges negates every delta, used when a transaction is deleted.
func ReverseChanges(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	reversed := make(map[string]decimal.Decimal, len(changes))
	for accountID, delta := range changes {
		reversed[accountID] = delta.Neg()
	}
	return reversed
}

// ReconciledBalance recomputes a balance from history: initial + credits - debits.
func ReconciledBalance(initial decimal.Decimal, flows domain.AccountFlows) decimal.Decimal {
	return initial.Add(flows.Inflow).Sub(flows.Outflow)
}
