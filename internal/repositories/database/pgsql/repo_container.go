package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	categoryRepo := newPgxCategoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		CategoryRepo:    categoryRepo,
	}
}
