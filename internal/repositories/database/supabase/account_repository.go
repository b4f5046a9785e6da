package supabase

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

type AccountRepository struct {
	client *supabase.Client
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, _, err := r.client.From(tableAccounts).Insert(m, false, "", "minimal", "").Execute()
	return mapRestError(err, "failed to save account %s", m.AccountID)
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	data, _, err := r.client.From(tableAccounts).
		Select("*", "", false).
		Eq("account_id", accountID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to find account %s", accountID)
	}
	m, err := decodeOne[models.Account](data, "account "+accountID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

func (r *AccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	data, _, err := r.client.From(tableAccounts).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to list accounts for owner %s", ownerID)
	}
	rows, err := decodeRows[models.Account](data, "accounts")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(rows), nil
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	patch := map[string]any{
		"name":            account.Name,
		"color":           account.Color,
		"icon":            account.Icon,
		"last_updated_at": account.LastUpdatedAt,
	}
	return r.patch(account.AccountID, patch)
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	data, _, err := r.client.From(tableAccounts).
		Delete("representation", "").
		Eq("account_id", accountID).
		Execute()
	if err != nil {
		return mapRestError(err, "failed to delete account %s", accountID)
	}
	rows, err := decodeRows[models.Account](data, "deleted account")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	return r.patch(accountID, map[string]any{"current_balance": balance, "last_updated_at": now})
}

// findAccountsByIDs loads the given accounts and fails unless every one exists.
func (r *AccountRepository) findAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	found := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return found, nil
	}
	data, _, err := r.client.From(tableAccounts).
		Select("*", "", false).
		In("account_id", accountIDs).
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to load accounts")
	}
	rows, err := decodeRows[models.Account](data, "accounts")
	if err != nil {
		return nil, err
	}
	for _, m := range rows {
		found[m.AccountID] = mapping.ToDomainAccount(m)
	}
	for _, id := range accountIDs {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return found, nil
}

// balanceSwapAttempts bounds the retries of one balance write under contention.
const balanceSwapAttempts = 5

// balanceWrite is a delta that landed on an account and the balance it produced.
type balanceWrite struct {
	accountID string
	delta     decimal.Decimal
	balance   decimal.Decimal
}

// applyBalanceChanges adds each delta to its account in ascending account order, starting
// from the balances captured in current. It returns the writes that landed so a caller can
// undo a partial application.
func (r *AccountRepository) applyBalanceChanges(ctx context.Context, current map[string]domain.Account, changes map[string]decimal.Decimal, now time.Time) ([]balanceWrite, error) {
	applied := make([]balanceWrite, 0, len(changes))
	for _, accountID := range slices.Sorted(maps.Keys(changes)) {
		delta := changes[accountID]
		if delta.IsZero() {
			continue
		}
		acc, ok := current[accountID]
		if !ok {
			return applied, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		balance, err := r.addToBalance(ctx, accountID, acc.CurrentBalance, delta, now)
		if err != nil {
			return applied, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
		}
		applied = append(applied, balanceWrite{accountID: accountID, delta: delta, balance: balance})
	}
	return applied, nil
}

// revertBalanceWrites subtracts applied deltas again, newest first.
func (r *AccountRepository) revertBalanceWrites(ctx context.Context, applied []balanceWrite, now time.Time) error {
	var errs []error
	for i := len(applied) - 1; i >= 0; i-- {
		w := applied[i]
		if _, err := r.addToBalance(ctx, w.accountID, w.balance, w.delta.Neg(), now); err != nil {
			errs = append(errs, fmt.Errorf("account %s: %w", w.accountID, err))
		}
	}
	return errors.Join(errs...)
}

// addToBalance writes expected+delta only while the stored balance still equals expected.
// When another writer got there first it re-reads the balance and tries again.
func (r *AccountRepository) addToBalance(ctx context.Context, accountID string, expected, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	for attempt := 0; attempt < balanceSwapAttempts; attempt++ {
		next := expected.Add(delta)
		data, _, err := r.client.From(tableAccounts).
			Update(map[string]any{"current_balance": next, "last_updated_at": now}, "representation", "").
			Eq("account_id", accountID).
			Eq("current_balance", expected.String()).
			Execute()
		if err != nil {
			return decimal.Zero, mapRestError(err, "failed to update account %s", accountID)
		}
		rows, err := decodeRows[models.Account](data, "updated account")
		if err != nil {
			return decimal.Zero, err
		}
		if len(rows) > 0 {
			return next, nil
		}

		acc, err := r.FindAccountByID(ctx, accountID)
		if err != nil {
			return decimal.Zero, err
		}
		expected = acc.CurrentBalance
	}
	return decimal.Zero, fmt.Errorf("%w: balance of account %s kept changing", apperrors.ErrConflict, accountID)
}

func (r *AccountRepository) patch(accountID string, values map[string]any) error {
	data, _, err := r.client.From(tableAccounts).
		Update(values, "representation", "").
		Eq("account_id", accountID).
		Execute()
	if err != nil {
		return mapRestError(err, "failed to update account %s", accountID)
	}
	rows, err := decodeRows[models.Account](data, "updated account")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
