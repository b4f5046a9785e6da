package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// ListAccountsByOwner returns every account owned by ownerID, ordered by name.
	// An owner without accounts yields an empty slice.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)

	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's display details. Balances are untouched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Returns apperrors.ErrConflict while transactions
	// still reference it.
	DeleteAccount(ctx context.Context, accountID string) error

	// SetAccountBalance overwrites the current balance, used by reconciliation.
	SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
