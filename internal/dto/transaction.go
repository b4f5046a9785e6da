package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// EXPENSE needs only paidFromAccountID, INCOME only paidToAccountID, TRANSFER both.
type CreateTransactionRequest struct {
	Amount            decimal.Decimal        `json:"amount"`
	Type              domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	CategoryID        *int64                 `json:"categoryID" binding:"omitempty,gt=0"`
	PaidFromAccountID *string                `json:"paidFromAccountID" binding:"omitempty,uuid"`
	PaidToAccountID   *string                `json:"paidToAccountID" binding:"omitempty,uuid"`
	TransactionDate   *time.Time             `json:"transactionDate"`
	Description       string                 `json:"description" binding:"max=255"`
	Note              string                 `json:"note" binding:"max=1000"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	Amount            decimal.Decimal        `json:"amount"`
	Type              domain.TransactionType `json:"type"`
	CategoryID        *int64                 `json:"categoryID,omitempty"`
	CategoryName      string                 `json:"categoryName,omitempty"`
	PaidFromAccountID *string                `json:"paidFromAccountID,omitempty"`
	PaidToAccountID   *string                `json:"paidToAccountID,omitempty"`
	TransactionDate   time.Time              `json:"transactionDate"`
	Description       string                 `json:"description"`
	Note              string                 `json:"note"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		Amount:            t.Amount,
		Type:              t.Type,
		CategoryID:        t.CategoryID,
		CategoryName:      t.CategoryName,
		PaidFromAccountID: t.PaidFromAccountID,
		PaidToAccountID:   t.PaidToAccountID,
		TransactionDate:   t.TransactionDate,
		Description:       t.Description,
		Note:              t.Note,
		CreatedAt:         t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions, never returning nil.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// MonthViewParams defines query parameters for the month transaction view.
type MonthViewParams struct {
	Month  string                  `form:"month" binding:"omitempty,datetime=2006-01"`
	Type   *domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Search string                  `form:"q" binding:"max=100"`
}

// MonthViewResponse is one month of transactions plus their rollup.
type MonthViewResponse struct {
	Month        string                `json:"month"`
	Transactions []TransactionResponse `json:"transactions"`
	Rollup       domain.Rollup         `json:"rollup"`
}

// ToMonthViewResponse converts a domain.MonthView to its DTO.
func ToMonthViewResponse(v *domain.MonthView) MonthViewResponse {
	return MonthViewResponse{
		Month:        v.Month.Format("2006-01"),
		Transactions: ToTransactionResponses(v.Transactions),
		Rollup:       v.Rollup,
	}
}

// ListTransactionsParams defines query parameters for paginated transaction listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
