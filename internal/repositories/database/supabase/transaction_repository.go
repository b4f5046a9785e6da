package supabase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// transactionSelect embeds the category name through the category_id foreign key.
const transactionSelect = "*,categories(name)"

// transactionRow is a transactions row with its embedded category.
type transactionRow struct {
	models.Transaction
	Category *struct {
		Name string `json:"name"`
	} `json:"categories"`
}

func (row transactionRow) toDomain() domain.Transaction {
	m := row.Transaction
	if row.Category != nil {
		m.CategoryName = row.Category.Name
	}
	return mapping.ToDomainTransaction(m)
}

func toDomainTransactions(rows []transactionRow) []domain.Transaction {
	out := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

var newestFirst = &postgrest.OrderOpts{Ascending: false}

type TransactionRepository struct {
	client   *supabase.Client
	accounts *AccountRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) ListTransactionsInWindow(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	// An empty in.() list is a PostgREST syntax error.
	if len(filter.AccountIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	// Filters are keyed by column, so both date bounds share one and() parameter.
	dateRange := fmt.Sprintf("transaction_date.gte.%s,transaction_date.lte.%s", restTime(filter.Start), restTime(filter.End))
	search := strings.TrimSpace(filter.Search)
	query := func() *postgrest.FilterBuilder {
		q := r.client.From(tableTransactions).
			Select(transactionSelect, "exact", false).
			Or(touchingAny(filter.AccountIDs), "").
			And(dateRange, "")
		if filter.Type != nil {
			q = q.Eq("type", string(*filter.Type))
		}
		if search != "" {
			q = q.Ilike("description", "*"+search+"*")
		}
		return q.
			Order("transaction_date", newestFirst).
			Order("transaction_id", newestFirst)
	}

	rows, err := fetchAll[transactionRow](query, "transaction window")
	if err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

func (r *TransactionRepository) ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 || limit <= 0 {
		return []domain.Transaction{}, nil
	}
	data, _, err := r.client.From(tableTransactions).
		Select(transactionSelect, "", false).
		Or(touchingAny(accountIDs), "").
		Order("transaction_date", newestFirst).
		Order("transaction_id", newestFirst).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to query recent transactions")
	}
	rows, err := decodeRows[transactionRow](data, "transactions")
	if err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

func (r *TransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	// PostgREST keeps a single "or" parameter, so the account and keyset conditions
	// are folded into one logic tree.
	filter := fmt.Sprintf("paid_from_account_id.eq.%[1]s,paid_to_account_id.eq.%[1]s", accountID)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		date := restTime(cursor.TransactionDate)
		branches := make([]string, 0, 4)
		for _, side := range []string{"paid_from_account_id", "paid_to_account_id"} {
			branches = append(branches,
				fmt.Sprintf("and(%s.eq.%s,transaction_date.lt.%s)", side, accountID, date),
				fmt.Sprintf("and(%s.eq.%s,transaction_date.eq.%s,transaction_id.lt.%s)", side, accountID, date, cursor.TransactionID),
			)
		}
		filter = strings.Join(branches, ",")
	}

	data, _, err := r.client.From(tableTransactions).
		Select(transactionSelect, "", false).
		Or(filter, "").
		Order("transaction_date", newestFirst).
		Order("transaction_id", newestFirst).
		Limit(limit+1, "").
		Execute()
	if err != nil {
		return nil, nil, mapRestError(err, "failed to query transactions for account %s", accountID)
	}
	rows, err := decodeRows[transactionRow](data, "transactions")
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(rows) > limit {
		last := rows[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{TransactionDate: last.TransactionDate, TransactionID: last.TransactionID})
		next = &token
		rows = rows[:limit]
	}
	return toDomainTransactions(rows), next, nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	data, _, err := r.client.From(tableTransactions).
		Select(transactionSelect, "", false).
		Eq("transaction_id", transactionID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to find transaction %s", transactionID)
	}
	row, err := decodeOne[transactionRow](data, "transaction "+transactionID)
	if err != nil {
		return nil, err
	}
	d := row.toDomain()
	return &d, nil
}

func (r *TransactionRepository) FindEarliestTransactionDate(ctx context.Context, accountIDs []string) (*time.Time, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	data, _, err := r.client.From(tableTransactions).
		Select("transaction_date", "", false).
		Or(touchingAny(accountIDs), "").
		Order("transaction_date", &postgrest.OrderOpts{Ascending: true}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to query earliest transaction date")
	}
	rows, err := decodeRows[struct {
		TransactionDate time.Time `json:"transaction_date"`
	}](data, "earliest transaction date")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].TransactionDate, nil
}

func (r *TransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error) {
	_, count, err := r.client.From(tableTransactions).
		Select("transaction_id", "exact", true).
		Or(touchingAny([]string{accountID}), "").
		Execute()
	if err != nil {
		return 0, mapRestError(err, "failed to count transactions for account %s", accountID)
	}
	return count, nil
}

func (r *TransactionRepository) SumAccountFlows(ctx context.Context, accountID string) (domain.AccountFlows, error) {
	query := func() *postgrest.FilterBuilder {
		return r.client.From(tableTransactions).
			Select("transaction_id,amount,paid_from_account_id,paid_to_account_id", "exact", false).
			Or(touchingAny([]string{accountID}), "").
			Order("transaction_id", &postgrest.OrderOpts{Ascending: true})
	}
	rows, err := fetchAll[models.Transaction](query, "flows for account "+accountID)
	if err != nil {
		return domain.AccountFlows{}, err
	}

	flows := domain.AccountFlows{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, row := range rows {
		if row.PaidToAccountID != nil && *row.PaidToAccountID == accountID {
			flows.Inflow = flows.Inflow.Add(row.Amount)
		}
		if row.PaidFromAccountID != nil && *row.PaidFromAccountID == accountID {
			flows.Outflow = flows.Outflow.Add(row.Amount)
		}
		flows.Count++
	}
	return flows, nil
}

// CreateTransaction inserts the row, then applies balances. If a balance write fails the
// insert and any applied balance writes are undone.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	changes, err := accounting.BalanceChanges(txn)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	current, err := r.accounts.findAccountsByIDs(ctx, txn.AccountRefs())
	if err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	if _, _, err := r.client.From(tableTransactions).Insert(m, false, "", "minimal", "").Execute(); err != nil {
		return mapRestError(err, "failed to insert transaction %s", m.TransactionID)
	}

	applied, err := r.accounts.applyBalanceChanges(ctx, current, changes, m.CreatedAt)
	if err != nil {
		r.compensate(ctx, applied, func() error {
			_, _, derr := r.client.From(tableTransactions).Delete("minimal", "").Eq("transaction_id", m.TransactionID).Execute()
			return derr
		})
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// DeleteTransaction removes the row, then reverses balances. If a balance write fails the
// row is restored and any applied balance writes are undone.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	changes, err := accounting.BalanceChanges(txn)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	current, err := r.accounts.findAccountsByIDs(ctx, txn.AccountRefs())
	if err != nil {
		return err
	}

	data, _, err := r.client.From(tableTransactions).
		Delete("representation", "").
		Eq("transaction_id", txn.TransactionID).
		Execute()
	if err != nil {
		return mapRestError(err, "failed to delete transaction %s", txn.TransactionID)
	}
	deleted, err := decodeRows[models.Transaction](data, "deleted transaction")
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return apperrors.ErrNotFound
	}

	applied, err := r.accounts.applyBalanceChanges(ctx, current, accounting.ReverseChanges(changes), time.Now())
	if err != nil {
		r.compensate(ctx, applied, func() error {
			_, _, ierr := r.client.From(tableTransactions).Insert(deleted[0], false, "", "minimal", "").Execute()
			return ierr
		})
		return apperrors.NewAppError(500, "failed to reverse account balances", err)
	}
	return nil
}

// compensate reverts the applied balance writes and runs undo. Failures are logged
// because the caller is already returning the original error; the reconcile endpoint
// repairs whatever is left.
func (r *TransactionRepository) compensate(ctx context.Context, applied []balanceWrite, undo func() error) {
	if err := r.accounts.revertBalanceWrites(ctx, applied, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Failed to restore account balances", slog.String("error", err.Error()))
	}
	if err := undo(); err != nil {
		slog.ErrorContext(ctx, "Failed to undo transaction write", slog.String("error", err.Error()))
	}
}
