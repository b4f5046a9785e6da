package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, opts ...ServiceOption) portssvc.CategorySvcFacade {
	return &categoryService{BaseService: newBaseService(opts), categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error) {
	cats, err := s.categoryRepo.ListCategories(ctx, userID, params.Type)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if cats == nil {
		return []domain.Category{}, nil
	}
	return cats, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if req.Type != domain.ExpenseCategory && req.Type != domain.IncomeCategory {
		return nil, fmt.Errorf("%w: unknown category type '%s'", apperrors.ErrValidation, req.Type)
	}

	now := s.Now()
	owner := userID
	category := domain.Category{
		OwnerID:     &owner,
		Name:        name,
		Type:        req.Type,
		Color:       req.Color,
		Icon:        req.Icon,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, &category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.Int64("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.OwnerID == nil {
		return fmt.Errorf("%w: default categories cannot be deleted", apperrors.ErrConflict)
	}
	if *category.OwnerID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.Int64("category_id", categoryID))
	return nil
}
