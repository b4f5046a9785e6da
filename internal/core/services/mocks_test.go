package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockAccountRepository) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	return m.Called(ctx, accountID, balance, now).Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactionsInWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEarliestTransactionDate(ctx context.Context, accountIDs []string) (*time.Time, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumAccountFlows(ctx context.Context, accountID string) (domain.AccountFlows, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.AccountFlows), args.Error(1)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, ownerID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	if len(args) > 1 {
		category.CategoryID = args.Get(1).(int64)
	}
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	return m.Called(ctx, categoryID).Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
