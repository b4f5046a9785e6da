// Package export renders reports into downloadable formats.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "Statement"

var statementHeaders = []string{"Date", "Type", "Category", "Description", "From", "To", "Amount", "Note"}

// Statement is one month of transactions ready to export.
type Statement struct {
	Month        time.Time
	Transactions []domain.Transaction
	Rollup       domain.Rollup
	// AccountNames resolves account IDs to display names. Unknown IDs are printed as is.
	AccountNames map[string]string
}

// StatementFilename is the download name for a month's statement.
func StatementFilename(month time.Time) string {
	return fmt.Sprintf("statement_%s.xlsx", month.Format("2006-01"))
}

// StatementXLSX writes the statement as a single-sheet workbook with a summary block below
// the transactions.
func StatementXLSX(s Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("summary style: %w", err)
	}

	widths := map[string]float64{"A": 12, "B": 10, "C": 18, "D": 32, "E": 18, "F": 18, "G": 14, "H": 32}
	for col, w := range widths {
		if err := f.SetColWidth(statementSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	for i, h := range statementHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(statementSheet, cell, h)
	}
	f.SetCellStyle(statementSheet, "A1", "H1", headerStyle)

	row := 2
	for _, txn := range s.Transactions {
		category := txn.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		values := []any{
			txn.TransactionDate.Format("2006-01-02"),
			string(txn.Type),
			category,
			txn.Description,
			s.accountName(txn.PaidFromAccountID),
			s.accountName(txn.PaidToAccountID),
			txn.Amount.InexactFloat64(),
			txn.Note,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(statementSheet, cell, v)
		}
		f.SetCellStyle(statementSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), amountStyle)
		row++
	}

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"Income", s.Rollup.MonthlyIncome.InexactFloat64()},
		{"Expense", s.Rollup.MonthlyExpense.InexactFloat64()},
		{"Savings", s.Rollup.Savings.InexactFloat64()},
		{"Savings rate %", s.Rollup.SavingsRate.InexactFloat64()},
	}
	for _, line := range summary {
		f.SetCellValue(statementSheet, fmt.Sprintf("F%d", row), line.label)
		f.SetCellValue(statementSheet, fmt.Sprintf("G%d", row), line.value)
		f.SetCellStyle(statementSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("G%d", row), summaryStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s Statement) accountName(id *string) string {
	if id == nil {
		return ""
	}
	if name, ok := s.AccountNames[*id]; ok {
		return name
	}
	return *id
}
