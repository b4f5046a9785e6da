package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportMonthParams selects the month a report covers.
type ReportMonthParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// TrendParams selects how many months the trend chart covers.
type TrendParams struct {
	Months int `form:"months,default=6" binding:"min=1,max=24"`
}

// CategoryBreakdownResponse is the per-category expense split of one month.
type CategoryBreakdownResponse struct {
	Month      string                 `json:"month"`
	Total      decimal.Decimal        `json:"total"`
	Categories []domain.CategorySpend `json:"categories"`
}

// ToCategoryBreakdownResponse totals the spends into a response.
func ToCategoryBreakdownResponse(month string, spends []domain.CategorySpend) CategoryBreakdownResponse {
	total := decimal.Zero
	for _, s := range spends {
		total = total.Add(s.Amount)
	}
	if spends == nil {
		spends = []domain.CategorySpend{}
	}
	return CategoryBreakdownResponse{Month: month, Total: total, Categories: spends}
}
