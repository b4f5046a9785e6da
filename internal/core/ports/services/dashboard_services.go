package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// DashboardSvc builds the read-only aggregate views.
type DashboardSvc interface {
	// GetDashboard loads accounts, the five most recent transactions and the current
	// month's stats for userID.
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)

	// MonthRange lists the selectable months, seeded by the user's earliest transaction.
	MonthRange(ctx context.Context, userID string) ([]time.Time, error)

	// Balances expresses every account in the home currency. hidden masks all amounts.
	Balances(ctx context.Context, userID string, hidden bool) (*dto.BalancesResponse, error)
}

// CategorySvcFacade manages categories.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category owned by the user. Shared defaults cannot be deleted.
	DeleteCategory(ctx context.Context, userID string, categoryID int64) error
}

// ReportSvc produces summaries and exports.
type ReportSvc interface {
	CategoryBreakdown(ctx context.Context, userID string, params dto.ReportMonthParams) (*dto.CategoryBreakdownResponse, error)

	// StatementXLSX renders one month of transactions as a spreadsheet.
	StatementXLSX(ctx context.Context, userID string, params dto.ReportMonthParams) ([]byte, string, error)

	// TrendPNG renders monthly income and expense for the last params.Months months.
	TrendPNG(ctx context.Context, userID string, params dto.TrendParams) ([]byte, error)
}
