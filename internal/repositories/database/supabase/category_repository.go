package supabase

import (
	"context"
	"strconv"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

type CategoryRepository struct {
	client *supabase.Client
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

func (r *CategoryRepository) ListCategories(ctx context.Context, ownerID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := r.client.From(tableCategories).
		Select("*", "", false).
		Or("owner_id.is.null,owner_id.eq."+ownerID, "")
	if categoryType != nil {
		query = query.Eq("type", string(*categoryType))
	}
	data, _, err := query.
		Order("type", &postgrest.OrderOpts{Ascending: true}).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to list categories for owner %s", ownerID)
	}
	rows, err := decodeRows[models.Category](data, "categories")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(rows))
	for i, m := range rows {
		out[i] = mapping.ToDomainCategory(m)
	}
	return out, nil
}

func (r *CategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	data, _, err := r.client.From(tableCategories).
		Select("*", "", false).
		Eq("category_id", strconv.FormatInt(categoryID, 10)).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, mapRestError(err, "failed to find category %d", categoryID)
	}
	m, err := decodeOne[models.Category](data, "category "+strconv.FormatInt(categoryID, 10))
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainCategory(*m)
	return &d, nil
}

func (r *CategoryRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	m := mapping.ToModelCategory(*category)
	m.CategoryID = 0
	data, _, err := r.client.From(tableCategories).Insert(m, false, "", "representation", "").Execute()
	if err != nil {
		return mapRestError(err, "failed to save category %q", m.Name)
	}
	created, err := decodeOne[models.Category](data, "created category")
	if err != nil {
		return err
	}
	category.CategoryID = created.CategoryID
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	data, _, err := r.client.From(tableCategories).
		Delete("representation", "").
		Eq("category_id", strconv.FormatInt(categoryID, 10)).
		Execute()
	if err != nil {
		return mapRestError(err, "failed to delete category %d", categoryID)
	}
	rows, err := decodeRows[models.Category](data, "deleted category")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
