package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListCategories_FilterByType() {
	owner := testUserID
	suite.categoryService.On("ListCategories", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListCategoriesParams) bool {
		return p.Type != nil && *p.Type == domain.IncomeCategory
	})).Return([]domain.Category{
		{CategoryID: 1, Name: "Salary", Type: domain.IncomeCategory},
		{CategoryID: 40, OwnerID: &owner, Name: "Side gig", Type: domain.IncomeCategory},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/categories?type=income", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCategoriesResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Categories, 2)
	suite.True(resp.Categories[0].IsDefault)
	suite.False(resp.Categories[1].IsDefault)
}

func (suite *HandlerTestSuite) TestListCategories_UnknownType() {
	w := suite.do(http.MethodGet, "/api/v1/categories?type=transfer", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateCategory() {
	owner := testUserID
	suite.categoryService.On("CreateCategory", mock.Anything, testUserID, dto.CreateCategoryRequest{
		Name: "Pets", Type: domain.ExpenseCategory, Color: "#aa5500",
	}).Return(&domain.Category{CategoryID: 41, OwnerID: &owner, Name: "Pets", Type: domain.ExpenseCategory}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/categories", `{"name":"Pets","type":"expense","color":"#aa5500"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CategoryResponse
	suite.decode(w, &resp)
	suite.Equal(int64(41), resp.CategoryID)
}

func (suite *HandlerTestSuite) TestCreateCategory_Duplicate() {
	suite.categoryService.On("CreateCategory", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("category Pets: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/categories", `{"name":"Pets","type":"expense"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCategory() {
	suite.Run("invalid id", func() {
		w := suite.do(http.MethodDelete, "/api/v1/categories/abc", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("default category", func() {
		suite.categoryService.On("DeleteCategory", mock.Anything, testUserID, int64(1)).
			Return(fmt.Errorf("%w: default categories cannot be deleted", apperrors.ErrConflict)).Once()
		w := suite.do(http.MethodDelete, "/api/v1/categories/1", nil)
		suite.Equal(http.StatusConflict, w.Code)
	})

	suite.Run("own category", func() {
		suite.categoryService.On("DeleteCategory", mock.Anything, testUserID, int64(41)).Return(nil).Once()
		w := suite.do(http.MethodDelete, "/api/v1/categories/41", nil)
		suite.Equal(http.StatusNoContent, w.Code)
	})
}
