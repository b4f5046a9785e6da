package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	return m.Called(ctx, userID, accountID).Error(0)
}

func (m *MockAccountService) ReconcileAccount(ctx context.Context, userID string, accountID string) (*dto.ReconcileAccountResponse, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconcileAccountResponse), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) LoadWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) MonthView(ctx context.Context, userID string, params dto.MonthViewParams) (*domain.MonthView, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthView), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListAccountTransactions(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockDashboardService) MonthRange(ctx context.Context, userID string) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockDashboardService) Balances(ctx context.Context, userID string, hidden bool) (*dto.BalancesResponse, error) {
	args := m.Called(ctx, userID, hidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalancesResponse), args.Error(1)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CategoryBreakdown(ctx context.Context, userID string, params dto.ReportMonthParams) (*dto.CategoryBreakdownResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryBreakdownResponse), args.Error(1)
}

func (m *MockReportService) StatementXLSX(ctx context.Context, userID string, params dto.ReportMonthParams) ([]byte, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockReportService) TrendPNG(ctx context.Context, userID string, params dto.TrendParams) ([]byte, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.ReportSvc = (*MockReportService)(nil)
