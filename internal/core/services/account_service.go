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
	"github.com/google/uuid"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionReader
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, opts ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(opts),
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	// Someone else's account reads as missing so its existence is not revealed.
	if account.OwnerID != userID {
		s.LogDebug(ctx, "Account belongs to another user", slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, req.AccountType)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := s.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OwnerID:        userID,
		Name:           name,
		AccountType:    req.AccountType,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		Color:          req.Color,
		Icon:           req.Icon,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be blank", apperrors.ErrValidation)
		}
		account.Name = name
		updated = true
	}
	if req.Color != nil {
		account.Color = *req.Color
		updated = true
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = s.Now()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	count, err := s.txnRepo.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count account transactions", slog.String("account_id", accountID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account has %d transactions, delete them first", apperrors.ErrConflict, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	s.Publish(ctx, events.AccountDeleted, userID, dto.ToAccountResponse(account))
	return nil
}

// ReconcileAccount recomputes the balance from the initial balance and the full transaction
// history, and stores it when it drifted.
func (s *accountService) ReconcileAccount(ctx context.Context, userID string, accountID string) (*dto.ReconcileAccountResponse, error) {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	flows, err := s.txnRepo.SumAccountFlows(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account flows", slog.String("account_id", accountID))
		return nil, err
	}

	previous := account.CurrentBalance
	reconciled := accounting.ReconciledBalance(account.InitialBalance, flows)
	adjusted := !reconciled.Equal(previous)
	if adjusted {
		now := s.Now()
		if err := s.accountRepo.SetAccountBalance(ctx, accountID, reconciled, now); err != nil {
			s.LogError(ctx, err, "Failed to store reconciled balance", slog.String("account_id", accountID))
			return nil, err
		}
		account.CurrentBalance = reconciled
		account.LastUpdatedAt = now
		s.LogInfo(ctx, "Account balance reconciled",
			slog.String("account_id", accountID),
			slog.String("previous", previous.String()),
			slog.String("reconciled", reconciled.String()))
	}

	return &dto.ReconcileAccountResponse{
		Account:         dto.ToAccountResponse(account),
		PreviousBalance: previous,
		Adjusted:        adjusted,
	}, nil
}
