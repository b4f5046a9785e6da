package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: apperrors.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: pgUniqueViolation}, want: apperrors.ErrDuplicate},
		{name: "foreign key violation", err: &pgconn.PgError{Code: pgForeignKeyViolation}, want: apperrors.ErrConflict},
		{name: "check violation", err: &pgconn.PgError{Code: pgCheckViolation}, want: apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.err, "op %s", "x")
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), "op x")
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, mapPgError(nil, "op"))
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := mapPgError(cause, "failed to load")
		assert.ErrorIs(t, got, cause)
		assert.False(t, errors.Is(got, apperrors.ErrNotFound))
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%coffee%", likePattern("  coffee "))
	assert.Equal(t, `%50\% off\_sale%`, likePattern("50% off_sale"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
