// Package supabase implements the repositories on top of the hosted Supabase REST API.
// PostgREST has no multi-statement transactions, so writes that touch balances use
// compensating requests instead.
package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const (
	tableAccounts     = "accounts"
	tableTransactions = "transactions"
	tableCategories   = "categories"
)

// restPageSize matches the default PostgREST max-rows.
const restPageSize = 1000

// NewRepositoryProvider connects to a Supabase project and wires the repositories.
func NewRepositoryProvider(url, key string) (portsrepo.RepositoryProvider, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to create supabase client: %w", err)
	}

	accountRepo := &AccountRepository{client: client}
	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: &TransactionRepository{client: client, accounts: accountRepo},
		CategoryRepo:    &CategoryRepository{client: client},
	}, nil
}

// mapRestError translates PostgREST errors, which carry the Postgres SQLSTATE in the message.
func mapRestError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	text := err.Error()
	switch {
	case strings.Contains(text, "23505"):
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, msg)
	case strings.Contains(text, "23503"):
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, msg)
	case strings.Contains(text, "23514"):
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, msg)
	case strings.Contains(text, "PGRST116"):
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func decodeRows[T any](data []byte, what string) ([]T, error) {
	rows := []T{}
	if len(data) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", what, err)
	}
	return rows, nil
}

func decodeOne[T any](data []byte, what string) (*T, error) {
	rows, err := decodeRows[T](data, what)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return &rows[0], nil
}

// fetchAll pages through a query with Range until the exact count reported by the server
// is reached or a page comes back empty. query must return a fresh, totally ordered
// request with count "exact" on every call.
func fetchAll[T any](query func() *postgrest.FilterBuilder, what string) ([]T, error) {
	all := []T{}
	for {
		from := len(all)
		data, total, err := query().Range(from, from+restPageSize-1, "").Execute()
		if err != nil {
			return nil, mapRestError(err, "failed to query %s", what)
		}
		page, err := decodeRows[T](data, what)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

// touchingAny builds an or-filter matching transactions with either side in ids.
func touchingAny(ids []string) string {
	list := "(" + strings.Join(ids, ",") + ")"
	return "paid_from_account_id.in." + list + ",paid_to_account_id.in." + list
}

// restTime renders a timestamp in a form safe inside PostgREST logic trees. Postgres keeps
// microseconds and rounds anything finer, so the value is truncated first.
func restTime(t time.Time) string {
	return `"` + t.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano) + `"`
}
