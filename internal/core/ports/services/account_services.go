package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccounts returns the accounts owned by userID, ordered by name.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// GetAccount retrieves an account the user owns. Foreign accounts read as not found.
	GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account nothing references any more.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountReconcilerSvc recomputes stored balances from transaction history.
type AccountReconcilerSvc interface {
	ReconcileAccount(ctx context.Context, userID string, accountID string) (*dto.ReconcileAccountResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountReconcilerSvc
}
