package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := &categoryHandler{categoryService: categoryService}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Shared defaults plus the user's own categories
// @Tags categories
// @Produce  json
// @Param   type query string false "expense or income"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list categories"
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	cats, err := h.categoryService.ListCategories(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(cats))
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Category already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create category"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	cat, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Deletes one of the user's categories. Shared defaults cannot be deleted.
// @Tags categories
// @Param   categoryID path int true "Category ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 409 {object} dto.ErrorResponse "Default category"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete category"
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseInt(c.Param("categoryID"), 10, 64)
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, categoryID); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
