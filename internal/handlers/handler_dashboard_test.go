package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestGetDashboard_Success() {
	suite.dashboardService.On("GetDashboard", mock.Anything, testUserID).Return(&domain.Dashboard{
		Accounts:           []domain.Account{{AccountID: "a1", Name: "Cash", CurrentBalance: decimal.NewFromInt(500)}},
		RecentTransactions: []domain.Transaction{},
		Stats: domain.DashboardStats{
			TotalBalance: decimal.NewFromInt(500),
			Rollup: domain.Rollup{
				MonthlyIncome:  decimal.NewFromInt(50000),
				MonthlyExpense: decimal.NewFromInt(20000),
				Savings:        decimal.NewFromInt(30000),
				SavingsRate:    decimal.NewFromInt(60),
			},
		},
		Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	suite.decode(w, &resp)
	suite.Equal("2025-03", resp.Month)
	suite.Empty(resp.Error)
	suite.Len(resp.Accounts, 1)
	suite.True(resp.Stats.SavingsRate.Equal(decimal.NewFromInt(60)))
}

func (suite *HandlerTestSuite) TestGetDashboard_FailureReturnsZeroState() {
	suite.dashboardService.On("GetDashboard", mock.Anything, testUserID).Return(nil, errors.New("upstream timeout")).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard", nil)

	suite.Equal(http.StatusBadGateway, w.Code)
	var resp dto.DashboardResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp.Error)
	suite.NotContains(resp.Error, "upstream timeout")
	suite.NotNil(resp.Accounts)
	suite.Empty(resp.Accounts)
	suite.NotNil(resp.RecentTransactions)
	suite.True(resp.Stats.TotalBalance.IsZero())
	suite.True(resp.Stats.SavingsRate.IsZero())
}

func (suite *HandlerTestSuite) TestGetMonthRange() {
	suite.dashboardService.On("MonthRange", mock.Anything, testUserID).Return([]time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/months", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MonthRangeResponse
	suite.decode(w, &resp)
	suite.Equal([]string{"2025-01", "2025-02"}, resp.Months)
	suite.Equal(time.Now().Format("2006-01"), resp.Current)
}

func (suite *HandlerTestSuite) TestGetBalances_Hidden() {
	suite.dashboardService.On("Balances", mock.Anything, testUserID, true).Return(&dto.BalancesResponse{
		HomeCurrency:       "INR",
		Hidden:             true,
		Accounts:           []dto.AccountBalanceView{{AccountID: "a1", Formatted: currency.HiddenMask}},
		TotalHomeFormatted: currency.HiddenMask,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/balances?hidden=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "totalHome\":")
	suite.Contains(w.Body.String(), currency.HiddenMask)
}

func (suite *HandlerTestSuite) TestGetBalances_BadFlag() {
	w := suite.do(http.MethodGet, "/api/v1/dashboard/balances?hidden=maybe", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
