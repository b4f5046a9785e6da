package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/utils/currency"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	service     portssvc.DashboardSvc
	now         time.Time
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	opts := []services.ServiceOption{
		services.WithClock(func() time.Time { return suite.now }),
		services.WithHomeCurrency("INR"),
	}
	accountSvc := services.NewAccountService(suite.accountRepo, suite.txnRepo, opts...)
	txnSvc := services.NewTransactionService(suite.txnRepo, suite.accountRepo, new(MockCategoryRepository), opts...)
	suite.service = services.NewDashboardService(accountSvc, txnSvc, suite.txnRepo, opts...)
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.accountRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_Scenario() {
	accounts := []domain.Account{
		{AccountID: "acc-1", OwnerID: "user-1", Name: "Checking", CurrencyCode: "INR", CurrentBalance: dec("100000")},
		{AccountID: "acc-2", OwnerID: "user-1", Name: "Savings", CurrencyCode: "INR", CurrentBalance: dec("50000")},
	}
	window := []domain.Transaction{
		{TransactionID: "t1", Type: domain.Income, Amount: dec("50000"), PaidToAccountID: strPtr("acc-1")},
		{TransactionID: "t2", Type: domain.Expense, Amount: dec("20000"), PaidFromAccountID: strPtr("acc-1")},
		{TransactionID: "t3", Type: domain.Transfer, Amount: dec("10000"), PaidFromAccountID: strPtr("acc-1"), PaidToAccountID: strPtr("acc-2")},
	}

	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return(accounts, nil).Once()
	suite.txnRepo.On("ListTransactionsInWindow", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return len(f.AccountIDs) == 2 && f.Start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(window, nil).Once()
	suite.txnRepo.On("ListRecentTransactions", mock.Anything, []string{"acc-1", "acc-2"}, services.RecentTransactionsLimit).
		Return(window, nil).Once()

	dash, err := suite.service.GetDashboard(context.Background(), "user-1")

	suite.Require().NoError(err)
	suite.Len(dash.Accounts, 2)
	suite.Len(dash.RecentTransactions, 3)
	suite.True(dash.Stats.TotalBalance.Equal(dec("150000")))
	suite.True(dash.Stats.MonthlyIncome.Equal(dec("50000")))
	suite.True(dash.Stats.MonthlyExpense.Equal(dec("20000")))
	suite.True(dash.Stats.Savings.Equal(dec("30000")))
	suite.True(dash.Stats.SavingsRate.Equal(dec("60")))
	suite.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), dash.Month)
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_NoAccountsSkipsTransactionQueries() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return(nil, nil).Once()

	dash, err := suite.service.GetDashboard(context.Background(), "user-1")

	suite.Require().NoError(err)
	suite.Empty(dash.Accounts)
	suite.NotNil(dash.RecentTransactions)
	suite.True(dash.Stats.TotalBalance.IsZero())
	suite.True(dash.Stats.SavingsRate.IsZero())
	suite.txnRepo.AssertNotCalled(suite.T(), "ListTransactionsInWindow", mock.Anything, mock.Anything)
	suite.txnRepo.AssertNotCalled(suite.T(), "ListRecentTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_AccountErrorPropagates() {
	repoErr := errors.New("connection refused")
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return(nil, repoErr).Once()

	dash, err := suite.service.GetDashboard(context.Background(), "user-1")

	suite.Nil(dash)
	suite.ErrorIs(err, repoErr)
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_RecentErrorFailsWhole() {
	accounts := []domain.Account{{AccountID: "acc-1", OwnerID: "user-1", CurrentBalance: dec("1")}}
	repoErr := errors.New("timeout")
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return(accounts, nil).Once()
	suite.txnRepo.On("ListTransactionsInWindow", mock.Anything, mock.Anything).Return([]domain.Transaction{}, nil).Maybe()
	suite.txnRepo.On("ListRecentTransactions", mock.Anything, []string{"acc-1"}, services.RecentTransactionsLimit).
		Return(nil, repoErr).Once()

	dash, err := suite.service.GetDashboard(context.Background(), "user-1")

	suite.Nil(dash)
	suite.ErrorIs(err, repoErr)
}

func (suite *DashboardServiceTestSuite) TestMonthRange_SeededByEarliestTransaction() {
	earliest := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").
		Return([]domain.Account{{AccountID: "acc-1", OwnerID: "user-1"}}, nil).Once()
	suite.txnRepo.On("FindEarliestTransactionDate", mock.Anything, []string{"acc-1"}).Return(&earliest, nil).Once()

	months, err := suite.service.MonthRange(context.Background(), "user-1")

	suite.Require().NoError(err)
	suite.Require().NotEmpty(months)
	suite.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), months[0])
	for i := 1; i < len(months); i++ {
		suite.Equal(months[i-1].AddDate(0, 1, 0), months[i])
	}
}

func (suite *DashboardServiceTestSuite) TestMonthRange_NoAccountsSkipsEarliestLookup() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return([]domain.Account{}, nil).Once()

	months, err := suite.service.MonthRange(context.Background(), "user-1")

	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), months[0])
	suite.txnRepo.AssertNotCalled(suite.T(), "FindEarliestTransactionDate", mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestBalances_ConvertsToHomeCurrency() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return([]domain.Account{
		{AccountID: "acc-1", OwnerID: "user-1", Name: "Brokerage", CurrencyCode: "USD", CurrentBalance: dec("500")},
		{AccountID: "acc-2", OwnerID: "user-1", Name: "Checking", CurrencyCode: "INR", CurrentBalance: dec("1000")},
	}, nil).Once()

	resp, err := suite.service.Balances(context.Background(), "user-1", false)

	suite.Require().NoError(err)
	suite.Equal("INR", resp.HomeCurrency)
	suite.Require().Len(resp.Accounts, 2)
	suite.True(resp.Accounts[0].HomeBalance.Equal(dec("41750")))
	suite.True(resp.Accounts[0].ApproximateFX)
	suite.False(resp.Accounts[1].ApproximateFX)
	suite.True(resp.TotalHome.Equal(dec("42750")))
	suite.Contains(resp.Accounts[0].Formatted, "$")
}

func (suite *DashboardServiceTestSuite) TestBalances_HiddenMasksEveryAmount() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, "user-1").Return([]domain.Account{
		{AccountID: "acc-1", OwnerID: "user-1", Name: "Brokerage", CurrencyCode: "USD", CurrentBalance: dec("500")},
	}, nil).Once()

	resp, err := suite.service.Balances(context.Background(), "user-1", true)

	suite.Require().NoError(err)
	suite.True(resp.Hidden)
	suite.Nil(resp.TotalHome)
	suite.Equal(currency.HiddenMask, resp.TotalHomeFormatted)
	suite.Nil(resp.Accounts[0].Balance)
	suite.Nil(resp.Accounts[0].HomeBalance)
	suite.Equal(currency.HiddenMask, resp.Accounts[0].Formatted)
	suite.Equal(currency.HiddenMask, resp.Accounts[0].HomeFormatted)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
