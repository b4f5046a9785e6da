package handlers_test

import (
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCategoryBreakdown() {
	suite.reportService.On("CategoryBreakdown", mock.Anything, testUserID, dto.ReportMonthParams{Month: "2025-02"}).
		Return(&dto.CategoryBreakdownResponse{
			Month: "2025-02",
			Total: decimal.NewFromInt(400),
			Categories: []domain.CategorySpend{
				{CategoryName: "Food & Dining", Amount: decimal.NewFromInt(300), Share: decimal.NewFromInt(75)},
				{CategoryName: "Uncategorized", Amount: decimal.NewFromInt(100), Share: decimal.NewFromInt(25)},
			},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/categories?month=2025-02", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CategoryBreakdownResponse
	suite.decode(w, &resp)
	suite.Len(resp.Categories, 2)
}

func (suite *HandlerTestSuite) TestStatementDownload() {
	suite.reportService.On("StatementXLSX", mock.Anything, testUserID, dto.ReportMonthParams{Month: "2025-02"}).
		Return([]byte("PK\x03\x04"), "statement_2025-02.xlsx", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/statement.xlsx?month=2025-02", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="statement_2025-02.xlsx"`, w.Header().Get("Content-Disposition"))
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.Equal("PK\x03\x04", w.Body.String())
}

func (suite *HandlerTestSuite) TestStatementDownload_InvalidMonth() {
	suite.reportService.On("StatementXLSX", mock.Anything, testUserID, mock.Anything).
		Return(nil, "", apperrors.ErrValidation).Maybe()

	w := suite.do(http.MethodGet, "/api/v1/reports/statement.xlsx?month=2025-13", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTrendChart() {
	suite.reportService.On("TrendPNG", mock.Anything, testUserID, dto.TrendParams{Months: 6}).
		Return([]byte("\x89PNG"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trend.png", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("image/png", w.Header().Get("Content-Type"))
}

func (suite *HandlerTestSuite) TestTrendChart_TooManyMonths() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trend.png?months=36", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
