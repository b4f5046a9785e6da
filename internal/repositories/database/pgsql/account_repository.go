package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, owner_id, name, account_type, currency_code, initial_balance, current_balance, color, icon, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OwnerID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerID,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.InitialBalance,
		m.CurrentBalance,
		m.Color,
		m.Icon,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return mapPgError(err, "failed to save account %s", m.AccountID)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapPgError(err, "failed to find account by ID %s", accountID)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccountsByOwner retrieves every account of one owner, ordered by name.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 ORDER BY name, account_id;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for owner %s: %w", ownerID, err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for owner %s: %w", ownerID, err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates an existing account's display details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, color = $3, icon = $4, last_updated_at = $5
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.Color, m.Icon, m.LastUpdatedAt)
	if err != nil {
		return mapPgError(err, "failed to update account %s", m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. The foreign keys on transactions reject the delete
// while any transaction still references it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return mapPgError(err, "failed to delete account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountBalance overwrites the stored balance of one account.
func (r *PgxAccountRepository) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET current_balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, balance, now)
	if err != nil {
		return mapPgError(err, "failed to set balance for account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
// Rows are locked in ID order so concurrent writers cannot deadlock. Every requested ID
// must exist.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, ok := locked[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return locked, nil
}

// UpdateAccountBalancesInTx adds each delta to the stored balance of its account.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET current_balance = COALESCE(current_balance, 0) + $2, last_updated_at = $3
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	if batchErr != nil {
		slog.WarnContext(ctx, "Balance update batch failed", slog.Int("queued", batch.Len()), slog.String("error", batchErr.Error()))
	}
	return batchErr
}
