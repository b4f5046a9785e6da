package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
// Every method taking a set of account IDs returns an empty result for an empty set
// without querying the store.
type TransactionReader interface {
	// ListTransactionsInWindow returns transactions whose source or destination is in
	// filter.AccountIDs and whose date lies in [filter.Start, filter.End], newest first.
	ListTransactionsInWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListRecentTransactions returns the newest transactions touching any of accountIDs.
	ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error)

	// ListTransactionsByAccount pages through the transactions touching one account.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEarliestTransactionDate returns the oldest transaction date touching any of
	// accountIDs, or nil when there is none.
	FindEarliestTransactionDate(ctx context.Context, accountIDs []string) (*time.Time, error)

	// CountTransactionsByAccount counts transactions referencing the account on either side.
	CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error)

	// SumAccountFlows totals credits and debits recorded against the account.
	SumAccountFlows(ctx context.Context, accountID string) (domain.AccountFlows, error)
}

// TransactionWriter defines write operations for transaction data.
// Both methods apply the balance effect of the transaction as one unit of work.
type TransactionWriter interface {
	// CreateTransaction inserts the transaction and applies its balance changes.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes the transaction and reverses its balance changes.
	DeleteTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
