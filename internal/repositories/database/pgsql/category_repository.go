package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, owner_id, name, type, color, icon, created_at, last_updated_at`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(&m.CategoryID, &m.OwnerID, &m.Name, &m.Type, &m.Color, &m.Icon, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

// ListCategories returns shared defaults plus the owner's categories.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, ownerID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE (owner_id IS NULL OR owner_id = $1)`
	args := []any{ownerID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY type, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		out = append(out, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return out, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	m, err := scanCategory(r.Pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE category_id = $1;`, categoryID))
	if err != nil {
		return nil, mapPgError(err, "failed to find category %d", categoryID)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// SaveCategory inserts a category and records its generated ID on the argument.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	m := mapping.ToModelCategory(*category)
	query := `
		INSERT INTO categories (owner_id, name, type, color, icon, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING category_id;
	`
	err := r.Pool.QueryRow(ctx, query, m.OwnerID, m.Name, m.Type, m.Color, m.Icon, m.CreatedAt, m.LastUpdatedAt).Scan(&category.CategoryID)
	return mapPgError(err, "failed to save category %q", m.Name)
}

// DeleteCategory removes a category; referencing transactions fall back to no category.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return mapPgError(err, "failed to delete category %d", categoryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
