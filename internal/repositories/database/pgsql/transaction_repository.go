package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionSelect = `
	SELECT t.transaction_id, t.amount, t.type, t.category_id, t.paid_from_account_id, t.paid_to_account_id,
	       t.transaction_date, t.description, t.note, t.created_by, t.created_at, t.last_updated_at,
	       COALESCE(c.name, '')
	FROM transactions t
	LEFT JOIN categories c ON c.category_id = t.category_id
`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Amount,
		&m.Type,
		&m.CategoryID,
		&m.PaidFromAccountID,
		&m.PaidToAccountID,
		&m.TransactionDate,
		&m.Description,
		&m.Note,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.CategoryName,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows, what string) ([]models.Transaction, error) {
	defer rows.Close()
	out := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for %s: %w", what, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for %s: %w", what, err)
	}
	return out, nil
}

// ListTransactionsInWindow retrieves the transactions touching any of the filter's accounts
// within its inclusive date window, newest first.
func (r *PgxTransactionRepository) ListTransactionsInWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	// ANY of an empty array matches nothing, but skip the round trip entirely.
	if len(filter.AccountIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	args := []any{filter.AccountIDs, filter.Start, filter.End}
	var sb strings.Builder
	sb.WriteString(transactionSelect)
	sb.WriteString(`WHERE (t.paid_from_account_id = ANY($1) OR t.paid_to_account_id = ANY($1))
	  AND t.transaction_date BETWEEN $2 AND $3`)
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		sb.WriteString(` AND t.type = $` + strconv.Itoa(len(args)))
	}
	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, likePattern(filter.Search))
		sb.WriteString(` AND t.description ILIKE $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY t.transaction_date DESC, t.transaction_id DESC;`)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction window: %w", err)
	}
	txns, err := collectTransactions(rows, "window")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// ListRecentTransactions retrieves the newest transactions touching any of the accounts.
func (r *PgxTransactionRepository) ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 || limit <= 0 {
		return []domain.Transaction{}, nil
	}

	query := transactionSelect + `
		WHERE t.paid_from_account_id = ANY($1) OR t.paid_to_account_id = ANY($1)
		ORDER BY t.transaction_date DESC, t.transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	txns, err := collectTransactions(rows, "recent")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// ListTransactionsByAccount retrieves a page of transactions for one account using
// keyset pagination on (transaction_date, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	args := []any{accountID}
	query := transactionSelect + `WHERE (t.paid_from_account_id = $1 OR t.paid_to_account_id = $1)`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.TransactionDate, cursor.TransactionID)
		query += ` AND (t.transaction_date, t.transaction_id) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY t.transaction_date DESC, t.transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	txns, err := collectTransactions(rows, "account "+accountID)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{TransactionDate: last.TransactionDate, TransactionID: last.TransactionID})
		next = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainTransactionSlice(txns), next, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, transactionSelect+`WHERE t.transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, mapPgError(err, "failed to find transaction %s", transactionID)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindEarliestTransactionDate returns the oldest transaction date touching the accounts.
func (r *PgxTransactionRepository) FindEarliestTransactionDate(ctx context.Context, accountIDs []string) (*time.Time, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT MIN(transaction_date) FROM transactions
		WHERE paid_from_account_id = ANY($1) OR paid_to_account_id = ANY($1);
	`
	var earliest *time.Time
	if err := r.Pool.QueryRow(ctx, query, accountIDs).Scan(&earliest); err != nil {
		return nil, fmt.Errorf("failed to query earliest transaction date: %w", err)
	}
	return earliest, nil
}

// CountTransactionsByAccount counts transactions referencing the account on either side.
func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE paid_from_account_id = $1 OR paid_to_account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}

// SumAccountFlows totals the credits and debits recorded against an account.
func (r *PgxTransactionRepository) SumAccountFlows(ctx context.Context, accountID string) (domain.AccountFlows, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE paid_to_account_id = $1), 0),
		       COALESCE(SUM(amount) FILTER (WHERE paid_from_account_id = $1), 0),
		       COUNT(*)
		FROM transactions
		WHERE paid_from_account_id = $1 OR paid_to_account_id = $1;
	`
	var flows domain.AccountFlows
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&flows.Inflow, &flows.Outflow, &flows.Count); err != nil {
		return domain.AccountFlows{}, fmt.Errorf("failed to sum flows for account %s: %w", accountID, err)
	}
	return flows, nil
}

// CreateTransaction inserts the transaction and applies its balance changes in one
// database transaction, so the stored balances never drift from the transaction log.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	changes, err := accounting.BalanceChanges(txn)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, txn.AccountRefs()); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, amount, type, category_id, paid_from_account_id, paid_to_account_id,
			transaction_date, description, note, created_by, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Type,
		m.CategoryID,
		m.PaidFromAccountID,
		m.PaidToAccountID,
		m.TransactionDate,
		m.Description,
		m.Note,
		m.CreatedBy,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to insert transaction %s", m.TransactionID)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, m.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the transaction and reverses its balance changes in one
// database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	changes, err := accounting.BalanceChanges(txn)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, txn.AccountRefs()); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return mapPgError(err, "failed to delete transaction %s", txn.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, accounting.ReverseChanges(changes), time.Now()); err != nil {
		return apperrors.NewAppError(500, "failed to reverse account balances", err)
	}

	return r.Commit(ctx, tx)
}
