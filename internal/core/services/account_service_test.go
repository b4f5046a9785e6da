package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	publisher   *MockPublisher
	service     portssvc.AccountSvcFacade
	now         time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.publisher = new(MockPublisher)
	suite.now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.accountRepo, suite.txnRepo,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithPublisher(suite.publisher),
	)
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.accountRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) ownedAccount() *domain.Account {
	return &domain.Account{
		AccountID:      "acc-1",
		OwnerID:        "user-1",
		Name:           "Checking",
		AccountType:    domain.Bank,
		CurrencyCode:   "INR",
		InitialBalance: dec("100"),
		CurrentBalance: dec("200"),
	}
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmpty() {
	ctx := context.Background()
	suite.accountRepo.On("ListAccountsByOwner", ctx, "user-1").Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, "user-1")

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	repoErr := errors.New("connection refused")
	suite.accountRepo.On("ListAccountsByOwner", ctx, "user-1").Return(nil, repoErr).Once()

	accounts, err := suite.service.ListAccounts(ctx, "user-1")

	suite.Nil(accounts)
	suite.ErrorIs(err, repoErr)
}

func (suite *AccountServiceTestSuite) TestGetAccount_ForeignAccountIsNotFound() {
	ctx := context.Background()
	acc := suite.ownedAccount()
	acc.OwnerID = "someone-else"
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(acc, nil).Once()

	got, err := suite.service.GetAccount(ctx, "user-1", "acc-1")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "  Travel Card ",
		AccountType:    domain.Card,
		CurrencyCode:   "usd",
		InitialBalance: dec("250.75"),
	}
	suite.accountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.OwnerID == "user-1" && a.Name == "Travel Card" && a.CurrencyCode == "USD" &&
			a.CurrentBalance.Equal(dec("250.75")) && a.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.NotEmpty(acc.AccountID)
	suite.True(acc.InitialBalance.Equal(acc.CurrentBalance))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	_, err := suite.service.CreateAccount(context.Background(), "user-1", dto.CreateAccountRequest{
		Name:         "Loan",
		AccountType:  domain.AccountType("loan"),
		CurrencyCode: "INR",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesFields() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.accountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Salary Account" && a.Color == "#00ff00" && a.LastUpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	name, color := "Salary Account", "#00ff00"
	acc, err := suite.service.UpdateAccount(ctx, "user-1", "acc-1", dto.UpdateAccountRequest{Name: &name, Color: &color})

	suite.Require().NoError(err)
	suite.Equal("Salary Account", acc.Name)
	suite.True(acc.CurrentBalance.Equal(dec("200")))
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsIsNoop() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, "user-1", "acc-1", dto.UpdateAccountRequest{})

	suite.Require().NoError(err)
	suite.Equal("Checking", acc.Name)
	suite.accountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ConflictWhileReferenced() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.txnRepo.On("CountTransactionsByAccount", ctx, "acc-1").Return(int64(3), nil).Once()

	err := suite.service.DeleteAccount(ctx, "user-1", "acc-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.accountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SuccessPublishesEvent() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.txnRepo.On("CountTransactionsByAccount", ctx, "acc-1").Return(int64(0), nil).Once()
	suite.accountRepo.On("DeleteAccount", ctx, "acc-1").Return(nil).Once()
	suite.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.AccountDeleted && e.UserID == "user-1"
	})).Return(nil).Once()

	suite.NoError(suite.service.DeleteAccount(ctx, "user-1", "acc-1"))
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_PublishFailureDoesNotFail() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.txnRepo.On("CountTransactionsByAccount", ctx, "acc-1").Return(int64(0), nil).Once()
	suite.accountRepo.On("DeleteAccount", ctx, "acc-1").Return(nil).Once()
	suite.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	suite.NoError(suite.service.DeleteAccount(ctx, "user-1", "acc-1"))
}

func (suite *AccountServiceTestSuite) TestReconcileAccount_AdjustsDrift() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.txnRepo.On("SumAccountFlows", ctx, "acc-1").
		Return(domain.AccountFlows{Inflow: dec("50"), Outflow: dec("20"), Count: 2}, nil).Once()
	suite.accountRepo.On("SetAccountBalance", ctx, "acc-1", mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(dec("130"))
	}), suite.now).Return(nil).Once()

	resp, err := suite.service.ReconcileAccount(ctx, "user-1", "acc-1")

	suite.Require().NoError(err)
	suite.True(resp.Adjusted)
	suite.True(resp.PreviousBalance.Equal(dec("200")))
	suite.True(resp.Account.CurrentBalance.Equal(dec("130")))
}

func (suite *AccountServiceTestSuite) TestReconcileAccount_NoDrift() {
	ctx := context.Background()
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.ownedAccount(), nil).Once()
	suite.txnRepo.On("SumAccountFlows", ctx, "acc-1").
		Return(domain.AccountFlows{Inflow: dec("150"), Outflow: dec("50"), Count: 4}, nil).Once()

	resp, err := suite.service.ReconcileAccount(ctx, "user-1", "acc-1")

	suite.Require().NoError(err)
	suite.False(resp.Adjusted)
	suite.accountRepo.AssertNotCalled(suite.T(), "SetAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
