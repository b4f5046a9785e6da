package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// LoadWindow returns the transactions of filter's window, newest first.
	// An empty account set returns an empty slice.
	LoadWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// MonthView loads one calendar month for the user, with optional type and search filters.
	MonthView(ctx context.Context, userID string, params dto.MonthViewParams) (*domain.MonthView, error)

	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListAccountTransactions pages through the history of one owned account.
	ListAccountTransactions(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
