package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/export"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/currency"
	"github.com/SscSPs/finance_tracker/internal/utils/monthrange"
)

type reportService struct {
	BaseService
	accounts portssvc.AccountReaderSvc
	txns     portssvc.TransactionReaderSvc
}

// NewReportService creates the report service.
func NewReportService(accounts portssvc.AccountReaderSvc, txns portssvc.TransactionReaderSvc, opts ...ServiceOption) portssvc.ReportSvc {
	return &reportService{BaseService: newBaseService(opts), accounts: accounts, txns: txns}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) CategoryBreakdown(ctx context.Context, userID string, params dto.ReportMonthParams) (*dto.CategoryBreakdownResponse, error) {
	month, accounts, txns, err := s.loadMonth(ctx, userID, params.Month)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCategoryBreakdownResponse(month.Format("2006-01"), accounting.CategoryBreakdown(txns, domain.AccountIDs(accounts)))
	return &resp, nil
}

func (s *reportService) StatementXLSX(ctx context.Context, userID string, params dto.ReportMonthParams) ([]byte, string, error) {
	month, accounts, txns, err := s.loadMonth(ctx, userID, params.Month)
	if err != nil {
		return nil, "", err
	}

	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.AccountID] = a.Name
	}
	data, err := export.StatementXLSX(export.Statement{
		Month:        month,
		Transactions: txns,
		Rollup:       accounting.MonthlyRollup(txns, domain.AccountIDs(accounts)),
		AccountNames: names,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to render statement")
		return nil, "", err
	}
	return data, export.StatementFilename(month), nil
}

func (s *reportService) TrendPNG(ctx context.Context, userID string, params dto.TrendParams) ([]byte, error) {
	if params.Months < 1 || params.Months > monthrange.MonthsBack {
		return nil, fmt.Errorf("%w: months must be between 1 and %d", apperrors.ErrValidation, monthrange.MonthsBack)
	}

	now := s.Now()
	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := domain.AccountIDs(accounts)

	months := monthrange.Last(now, params.Months)
	start := months[0]
	_, end := monthrange.Bounds(months[len(months)-1])
	txns, err := s.txns.LoadWindow(ctx, domain.TransactionFilter{AccountIDs: ids, Start: start, End: end})
	if err != nil {
		return nil, err
	}

	png, err := export.TrendPNG(accounting.MonthlyTrend(txns, ids, months), currency.Symbol(s.converter.Home()))
	if err != nil {
		s.LogError(ctx, err, "Failed to render trend chart")
		return nil, err
	}
	return png, nil
}

func (s *reportService) loadMonth(ctx context.Context, userID, value string) (month time.Time, accounts []domain.Account, txns []domain.Transaction, err error) {
	now := s.Now()
	month, err = monthrange.Parse(value, now, now.Location())
	if err != nil {
		return month, nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accounts, err = s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return month, nil, nil, err
	}

	start, end := monthrange.Bounds(month)
	txns, err = s.txns.LoadWindow(ctx, domain.TransactionFilter{AccountIDs: domain.AccountIDs(accounts), Start: start, End: end})
	if err != nil {
		return month, nil, nil, err
	}
	return month, accounts, txns, nil
}
