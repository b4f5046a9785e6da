package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestMonthView_Success() {
	month := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.transactionService.On("MonthView", mock.Anything, testUserID, mock.MatchedBy(func(p dto.MonthViewParams) bool {
		return p.Month == "2025-02" && p.Type != nil && *p.Type == domain.Expense && p.Search == "rent"
	})).Return(&domain.MonthView{
		Month:        month,
		Transactions: []domain.Transaction{{TransactionID: "t1", Type: domain.Expense, Amount: decimal.NewFromInt(900)}},
		Rollup: domain.Rollup{
			MonthlyIncome:  decimal.Zero,
			MonthlyExpense: decimal.NewFromInt(900),
			Savings:        decimal.NewFromInt(-900),
			SavingsRate:    decimal.Zero,
		},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?month=2025-02&type=EXPENSE&q=rent", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MonthViewResponse
	suite.decode(w, &resp)
	suite.Equal("2025-02", resp.Month)
	suite.Len(resp.Transactions, 1)
	suite.True(resp.Rollup.MonthlyExpense.Equal(decimal.NewFromInt(900)))
}

func (suite *HandlerTestSuite) TestMonthView_InvalidQuery() {
	for _, url := range []string{
		"/api/v1/transactions?month=Feb-2025",
		"/api/v1/transactions?type=REFUND",
	} {
		w := suite.do(http.MethodGet, url, nil)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
}

func (suite *HandlerTestSuite) TestMonthView_Superseded() {
	suite.transactionService.On("MonthView", mock.Anything, testUserID, mock.Anything).
		Return(nil, apperrors.ErrSuperseded).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("request superseded", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	from := uuid.NewString()
	suite.transactionService.On("CreateTransaction", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Expense && req.Amount.Equal(decimal.RequireFromString("250.75")) &&
			req.PaidFromAccountID != nil && *req.PaidFromAccountID == from && *req.CategoryID == 3
	})).Return(&domain.Transaction{
		TransactionID:     uuid.NewString(),
		Type:              domain.Expense,
		Amount:            decimal.RequireFromString("250.75"),
		PaidFromAccountID: &from,
		CategoryName:      "Food & Dining",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"amount":            "250.75",
		"type":              "EXPENSE",
		"categoryID":        3,
		"paidFromAccountID": from,
		"description":       "Dinner",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Equal("Food & Dining", resp.CategoryName)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Rejected() {
	suite.Run("non-uuid account", func() {
		w := suite.do(http.MethodPost, "/api/v1/transactions", `{"amount":5,"type":"INCOME","paidToAccountID":"wallet"}`)
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("service validation", func() {
		suite.transactionService.On("CreateTransaction", mock.Anything, testUserID, mock.Anything).
			Return(nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)).Once()

		w := suite.do(http.MethodPost, "/api/v1/transactions", `{"amount":0,"type":"INCOME","paidToAccountID":"`+uuid.NewString()+`"}`)
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(suite.errorBody(w), "amount must be positive")
	})

	suite.Run("foreign account", func() {
		suite.transactionService.On("CreateTransaction", mock.Anything, testUserID, mock.Anything).
			Return(nil, apperrors.ErrNotFound).Once()

		w := suite.do(http.MethodPost, "/api/v1/transactions", `{"amount":5,"type":"INCOME","paidToAccountID":"`+uuid.NewString()+`"}`)
		suite.Equal(http.StatusNotFound, w.Code)
	})
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	suite.transactionService.On("GetTransaction", mock.Anything, testUserID, "t-missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/t-missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.transactionService.On("DeleteTransaction", mock.Anything, testUserID, "t1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/t1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}
