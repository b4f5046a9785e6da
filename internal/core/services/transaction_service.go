package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/monthrange"
	"github.com/SscSPs/finance_tracker/internal/utils/supersede"
	"github.com/google/uuid"
)

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryRepositoryFacade
	views        *supersede.Group
}

// NewTransactionService creates the transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	opts ...ServiceOption,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:  newBaseService(opts),
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		views:        &supersede.Group{},
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) LoadWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if len(filter.AccountIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	txns, err := s.txnRepo.ListTransactionsInWindow(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transaction window",
			slog.Time("start", filter.Start),
			slog.Time("end", filter.End),
			slog.Int("accounts", len(filter.AccountIDs)))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// MonthView loads the selected month. A newer MonthView for the same user supersedes this
// one, in which case apperrors.ErrSuperseded is returned instead of a stale result.
func (s *transactionService) MonthView(ctx context.Context, userID string, params dto.MonthViewParams) (*domain.MonthView, error) {
	now := s.Now()
	month, err := monthrange.Parse(params.Month, now, now.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if params.Type != nil && !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, *params.Type)
	}

	return supersede.Do(ctx, s.views, userID+":transactions", func(ctx context.Context) (*domain.MonthView, error) {
		ids, err := s.ownedAccountIDs(ctx, userID)
		if err != nil {
			return nil, err
		}

		start, end := monthrange.Bounds(month)
		txns, err := s.LoadWindow(ctx, domain.TransactionFilter{
			AccountIDs: ids,
			Start:      start,
			End:        end,
			Type:       params.Type,
			Search:     strings.TrimSpace(params.Search),
		})
		if err != nil {
			return nil, err
		}

		return &domain.MonthView{
			Month:        month,
			Transactions: txns,
			Rollup:       accounting.MonthlyRollup(txns, ids),
		}, nil
	})
}

func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	ids, err := s.ownedAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}
	for _, ref := range txn.AccountRefs() {
		if owned[ref] {
			return txn, nil
		}
	}
	s.LogDebug(ctx, "Transaction does not touch the user's accounts", slog.String("transaction_id", transactionID))
	return nil, apperrors.ErrNotFound
}

func (s *transactionService) ListAccountTransactions(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.ownedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	txns, next, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		}
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := s.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Amount:            req.Amount,
		Type:              req.Type,
		CategoryID:        req.CategoryID,
		PaidFromAccountID: nonEmpty(req.PaidFromAccountID),
		PaidToAccountID:   nonEmpty(req.PaidToAccountID),
		TransactionDate:   now,
		Description:       strings.TrimSpace(req.Description),
		Note:              strings.TrimSpace(req.Note),
		CreatedBy:         userID,
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	for _, ref := range txn.AccountRefs() {
		if _, err := s.ownedAccount(ctx, userID, ref); err != nil {
			return nil, err
		}
	}

	if txn.CategoryID != nil {
		category, err := s.usableCategory(ctx, userID, *txn.CategoryID, txn.Type)
		if err != nil {
			return nil, err
		}
		txn.CategoryName = category.Name
	}

	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	s.Publish(ctx, events.TransactionCreated, userID, dto.ToTransactionResponse(&txn))
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	s.Publish(ctx, events.TransactionDeleted, userID, dto.ToTransactionResponse(txn))
	return nil
}

func (s *transactionService) ownedAccountIDs(ctx context.Context, userID string) ([]string, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return domain.AccountIDs(accounts), nil
}

func (s *transactionService) ownedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// usableCategory checks that the category is visible to the user and matches the
// direction of the transaction. Transfers carry no category.
func (s *transactionService) usableCategory(ctx context.Context, userID string, categoryID int64, txnType domain.TransactionType) (*domain.Category, error) {
	if txnType == domain.Transfer {
		return nil, fmt.Errorf("%w: a transfer cannot have a category", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, categoryID)
		}
		return nil, err
	}
	if !category.VisibleTo(userID) {
		return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, categoryID)
	}

	want := domain.ExpenseCategory
	if txnType == domain.Income {
		want = domain.IncomeCategory
	}
	if category.Type != want {
		return nil, fmt.Errorf("%w: category %q is an %s category", apperrors.ErrValidation, category.Name, category.Type)
	}
	return category, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
