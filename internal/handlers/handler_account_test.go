package handlers_test

import (
	"errors"
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

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	now := time.Now().UTC()
	created := &domain.Account{
		AccountID:      uuid.NewString(),
		OwnerID:        testUserID,
		Name:           "HDFC Savings",
		AccountType:    domain.Bank,
		CurrencyCode:   "INR",
		InitialBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1000),
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	suite.accountService.On("CreateAccount", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "HDFC Savings" && req.AccountType == domain.Bank && req.InitialBalance.Equal(decimal.NewFromInt(1000))
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts",
		`{"name":"HDFC Savings","accountType":"bank","currencyCode":"INR","initialBalance":1000}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(created.AccountID, resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(1000)))
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"accountType":"bank","currencyCode":"INR"}`},
		{"blank name", `{"name":"   ","accountType":"bank","currencyCode":"INR"}`},
		{"unknown type", `{"name":"Loan","accountType":"loan","currencyCode":"INR"}`},
		{"bad currency", `{"name":"Cash","accountType":"cash","currencyCode":"RUPEE"}`},
		{"malformed json", `{"name":`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.accountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListAccounts() {
	suite.accountService.On("ListAccounts", mock.Anything, testUserID).Return([]domain.Account{
		{AccountID: "a1", Name: "Cash", AccountType: domain.Cash, CurrencyCode: "INR"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Accounts, 1)
}

func (suite *HandlerTestSuite) TestListAccounts_ServerErrorHidesCause() {
	suite.accountService.On("ListAccounts", mock.Anything, testUserID).
		Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to list accounts", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.accountService.On("GetAccount", mock.Anything, testUserID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateAccount() {
	accountID := uuid.NewString()
	suite.accountService.On("UpdateAccount", mock.Anything, testUserID, accountID, mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
		return req.Name != nil && *req.Name == "Travel card" && req.Color == nil
	})).Return(&domain.Account{AccountID: accountID, Name: "Travel card"}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/"+accountID, `{"name":"Travel card"}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"still referenced", fmt.Errorf("%w: account has 3 transactions", apperrors.ErrConflict), http.StatusConflict},
		{"missing", apperrors.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			accountID := uuid.NewString()
			suite.accountService.On("DeleteAccount", mock.Anything, testUserID, accountID).Return(tt.err).Once()

			w := suite.do(http.MethodDelete, "/api/v1/accounts/"+accountID, nil)
			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestReconcileAccount() {
	accountID := uuid.NewString()
	suite.accountService.On("ReconcileAccount", mock.Anything, testUserID, accountID).Return(&dto.ReconcileAccountResponse{
		Account:         dto.AccountResponse{AccountID: accountID, CurrentBalance: decimal.NewFromInt(130)},
		PreviousBalance: decimal.NewFromInt(100),
		Adjusted:        true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/"+accountID+"/reconcile", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReconcileAccountResponse
	suite.decode(w, &resp)
	suite.True(resp.Adjusted)
}

func (suite *HandlerTestSuite) TestListAccountTransactions_Success() {
	accountID := uuid.NewString()
	next := "bmV4dA"
	suite.transactionService.On("ListAccountTransactions", mock.Anything, testUserID, accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 10 && p.NextToken != nil && *p.NextToken == "abc"
		}),
	).Return(&dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{{TransactionID: "t1"}, {TransactionID: "t2"}},
		NextToken:    &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=10&nextToken=abc", accountID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Transactions, 2)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListAccountTransactions_DefaultLimit() {
	accountID := uuid.NewString()
	suite.transactionService.On("ListAccountTransactions", mock.Anything, testUserID, accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 20 && p.NextToken == nil }),
	).Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/transactions", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListAccountTransactions_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/"+uuid.NewString()+"/transactions?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListAccountTransactions_BadToken() {
	accountID := uuid.NewString()
	suite.transactionService.On("ListAccountTransactions", mock.Anything, testUserID, accountID, mock.Anything).
		Return(nil, fmt.Errorf("%w: invalid nextToken: illegal base64 data", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/transactions?nextToken=!!", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "invalid nextToken")
}
