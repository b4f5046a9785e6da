package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/monthrange"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RecentTransactionsLimit is how many transactions the dashboard shows.
const RecentTransactionsLimit = 5

type dashboardService struct {
	BaseService
	accounts portssvc.AccountReaderSvc
	txns     portssvc.TransactionReaderSvc
	txnRepo  portsrepo.TransactionReader
}

// NewDashboardService creates the dashboard service on top of the account and transaction
// loaders.
func NewDashboardService(
	accounts portssvc.AccountReaderSvc,
	txns portssvc.TransactionReaderSvc,
	txnRepo portsrepo.TransactionReader,
	opts ...ServiceOption,
) portssvc.DashboardSvc {
	return &dashboardService{
		BaseService: newBaseService(opts),
		accounts:    accounts,
		txns:        txns,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// GetDashboard loads accounts first, since their IDs parameterize the rest, then the month
// window and the recent list concurrently.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	now := s.Now()
	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := domain.AccountIDs(accounts)
	start, end := monthrange.Bounds(now)

	var window, recent []domain.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		window, err = s.txns.LoadWindow(gctx, domain.TransactionFilter{AccountIDs: ids, Start: start, End: end})
		return err
	})
	g.Go(func() error {
		if len(ids) == 0 {
			recent = []domain.Transaction{}
			return nil
		}
		var err error
		recent, err = s.txnRepo.ListRecentTransactions(gctx, ids, RecentTransactionsLimit)
		if err != nil {
			s.LogError(gctx, err, "Failed to load recent transactions")
			return fmt.Errorf("failed to load recent transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Transaction{}
	}

	rollup := accounting.MonthlyRollup(window, ids)
	s.LogDebug(ctx, "Dashboard loaded",
		slog.Int("accounts", len(accounts)),
		slog.Int("window", len(window)),
		slog.Int("recent", len(recent)))

	return &domain.Dashboard{
		Accounts:           accounts,
		RecentTransactions: recent,
		Stats:              accounting.DashboardStats(accounts, rollup),
		Month:              monthrange.FirstOfMonth(now),
	}, nil
}

func (s *dashboardService) MonthRange(ctx context.Context, userID string) ([]time.Time, error) {
	now := s.Now()
	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	var earliest *time.Time
	if ids := domain.AccountIDs(accounts); len(ids) > 0 {
		earliest, err = s.txnRepo.FindEarliestTransactionDate(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to find earliest transaction date")
			return nil, fmt.Errorf("failed to find earliest transaction: %w", err)
		}
	}
	return monthrange.Generate(now, earliest), nil
}

func (s *dashboardService) Balances(ctx context.Context, userID string, hidden bool) (*dto.BalancesResponse, error) {
	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	home := s.converter.Home()
	total := decimal.Zero
	views := make([]dto.AccountBalanceView, 0, len(accounts))
	for _, a := range accounts {
		homeBalance := s.converter.ToHome(a.CurrentBalance, a.CurrencyCode)
		total = total.Add(homeBalance)

		view := dto.AccountBalanceView{
			AccountID:     a.AccountID,
			Name:          a.Name,
			CurrencyCode:  a.CurrencyCode,
			Rate:          s.converter.Rate(a.CurrencyCode),
			Formatted:     s.formatter.Format(a.CurrentBalance, a.CurrencyCode, hidden),
			HomeFormatted: s.formatter.Format(homeBalance, home, hidden),
			ApproximateFX: a.CurrencyCode != home,
		}
		if !hidden {
			balance := a.CurrentBalance
			view.Balance = &balance
			view.HomeBalance = &homeBalance
		}
		views = append(views, view)
	}

	resp := &dto.BalancesResponse{
		HomeCurrency:       home,
		Hidden:             hidden,
		Accounts:           views,
		TotalHomeFormatted: s.formatter.Format(total, home, hidden),
	}
	if !hidden {
		resp.TotalHome = &total
	}
	return resp, nil
}
