package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoTrendData is returned when there are no months to plot.
var ErrNoTrendData = errors.New("no months to plot")

// TrendPNG draws monthly income and expense lines.
func TrendPNG(points []domain.MonthlyTotals, currencySymbol string) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoTrendData
	}

	xValues := make([]time.Time, len(points))
	income := make([]float64, len(points))
	expense := make([]float64, len(points))
	peak := 0.0
	for i, p := range points {
		xValues[i] = p.Month
		income[i] = p.Income.InexactFloat64()
		expense[i] = p.Expense.InexactFloat64()
		peak = max(peak, income[i], expense[i])
	}
	if peak <= 0 {
		peak = 1
	}

	// go-chart rejects zero-width ranges, so a single month gets a padded x axis.
	xRange := &chart.ContinuousRange{
		Min: chart.TimeToFloat64(xValues[0].AddDate(0, 0, -15)),
		Max: chart.TimeToFloat64(xValues[len(xValues)-1].AddDate(0, 0, 15)),
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 06"),
			Range:          xRange,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string {
				f, _ := v.(float64)
				return fmt.Sprintf("%s%.0f", currencySymbol, f)
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: income,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2, DotWidth: 4, DotColor: chart.ColorGreen},
			},
			chart.TimeSeries{
				Name:    "Expense",
				XValues: xValues,
				YValues: expense,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2, DotWidth: 4, DotColor: chart.ColorRed},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
