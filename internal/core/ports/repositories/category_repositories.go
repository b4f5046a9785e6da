package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence for categories.
type CategoryRepositoryFacade interface {
	// ListCategories returns the shared defaults plus categories owned by ownerID,
	// optionally restricted to one type, ordered by type then name.
	ListCategories(ctx context.Context, ownerID string, categoryType *domain.CategoryType) ([]domain.Category, error)

	// FindCategoryByID retrieves a category by its ID.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// SaveCategory inserts a category and sets its generated ID.
	// A duplicate name within the same owner and type yields apperrors.ErrDuplicate.
	SaveCategory(ctx context.Context, category *domain.Category) error

	// DeleteCategory removes a category. Transactions keep their rows with no category.
	DeleteCategory(ctx context.Context, categoryID int64) error
}
