package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,notblank,max=64"`
	Type  domain.CategoryType `json:"type" binding:"required,oneof=expense income"`
	Color string              `json:"color" binding:"omitempty,max=32"`
	Icon  string              `json:"icon" binding:"omitempty,max=64"`
}

// ListCategoriesParams filters the category list.
type ListCategoriesParams struct {
	Type *domain.CategoryType `form:"type" binding:"omitempty,oneof=expense income"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID int64               `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Color      string              `json:"color"`
	Icon       string              `json:"icon"`
	IsDefault  bool                `json:"isDefault"`
}

// ToCategoryResponse converts a domain.Category to its DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      c.Color,
		Icon:       c.Icon,
		IsDefault:  c.OwnerID == nil,
	}
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts categories to their DTO list.
func ToListCategoriesResponse(cats []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToCategoryResponse(&cats[i])
	}
	return ListCategoriesResponse{Categories: res}
}
