package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MonthlyRollup reduces a transaction window into income, expense, savings and savings rate.
// Only INCOME credited to an owned account and EXPENSE debited from an owned account count;
// transfers move money between the user's own accounts and are ignored.
func MonthlyRollup(txns []domain.Transaction, ownedAccountIDs []string) domain.Rollup {
	owned := toSet(ownedAccountIDs)

	income := decimal.Zero
	expense := decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case domain.Income:
			if txn.PaidToAccountID != nil && owned[*txn.PaidToAccountID] {
				income = income.Add(txn.Amount)
			}
		case domain.Expense:
			if txn.PaidFromAccountID != nil && owned[*txn.PaidFromAccountID] {
				expense = expense.Add(txn.Amount)
			}
		}
	}

	savings := income.Sub(expense)
	return domain.Rollup{
		MonthlyIncome:  income,
		MonthlyExpense: expense,
		Savings:        savings,
		SavingsRate:    SavingsRate(income, expense),
	}
}

// SavingsRate is 100*(income-expense)/income rounded to one decimal, or zero without income.
func SavingsRate(income, expense decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expense).Mul(hundred).Div(income).Round(1)
}

// DashboardStats adds the total of all account balances to a rollup.
func DashboardStats(accounts []domain.Account, rollup domain.Rollup) domain.DashboardStats {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.CurrentBalance)
	}
	return domain.DashboardStats{TotalBalance: total, Rollup: rollup}
}

// CategoryBreakdown groups owned expenses by category, largest first. Share is the percentage
// of the window's total expense, rounded to one decimal.
func CategoryBreakdown(txns []domain.Transaction, ownedAccountIDs []string) []domain.CategorySpend {
	owned := toSet(ownedAccountIDs)

	type key struct {
		id   int64
		none bool
	}
	totals := make(map[key]*domain.CategorySpend)
	order := make([]key, 0)
	grand := decimal.Zero

	for _, txn := range txns {
		if txn.Type != domain.Expense || txn.PaidFromAccountID == nil || !owned[*txn.PaidFromAccountID] {
			continue
		}
		k := key{none: true}
		if txn.CategoryID != nil {
			k = key{id: *txn.CategoryID}
		}
		spend, ok := totals[k]
		if !ok {
			name := txn.CategoryName
			if name == "" {
				name = "Uncategorized"
			}
			spend = &domain.CategorySpend{CategoryID: txn.CategoryID, CategoryName: name, Amount: decimal.Zero}
			totals[k] = spend
			order = append(order, k)
		}
		spend.Amount = spend.Amount.Add(txn.Amount)
		grand = grand.Add(txn.Amount)
	}

	out := make([]domain.CategorySpend, 0, len(order))
	for _, k := range order {
		spend := *totals[k]
		if grand.IsPositive() {
			spend.Share = spend.Amount.Mul(hundred).Div(grand).Round(1)
		}
		out = append(out, spend)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// MonthlyTrend buckets owned income and expense by calendar month for each month in months.
// Months without activity are reported as zeros.
func MonthlyTrend(txns []domain.Transaction, ownedAccountIDs []string, months []time.Time) []domain.MonthlyTotals {
	owned := toSet(ownedAccountIDs)

	out := make([]domain.MonthlyTotals, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		out[i] = domain.MonthlyTotals{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
		index[m.Format("2006-01")] = i
	}

	for _, txn := range txns {
		i, ok := index[txn.TransactionDate.In(monthLocation(months)).Format("2006-01")]
		if !ok {
			continue
		}
		switch txn.Type {
		case domain.Income:
			if txn.PaidToAccountID != nil && owned[*txn.PaidToAccountID] {
				out[i].Income = out[i].Income.Add(txn.Amount)
			}
		case domain.Expense:
			if txn.PaidFromAccountID != nil && owned[*txn.PaidFromAccountID] {
				out[i].Expense = out[i].Expense.Add(txn.Amount)
			}
		}
	}
	return out
}

func monthLocation(months []time.Time) *time.Location {
	if len(months) == 0 {
		return time.UTC
	}
	return months[0].Location()
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
