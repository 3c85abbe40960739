// Package report produces run artifacts: a per-ticker metrics CSV and
// equity-curve charts for downstream visualization.
package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"tradekit/internal/domain"
)

// metricRow is the CSV shape of one per-ticker summary record.
type metricRow struct {
	Ticker         string  `csv:"ticker"`
	FinalBalance   float64 `csv:"final_balance"`
	Trades         int     `csv:"trades"`
	Wins           int     `csv:"wins"`
	ROIPct         float64 `csv:"roi_pct"`
	BuyAndHoldPct  float64 `csv:"buy_and_hold_pct"`
	AlphaPct       float64 `csv:"alpha_pct"`
	MaxDrawdownPct float64 `csv:"max_drawdown_pct"`
	Sharpe         float64 `csv:"sharpe"`
	NPeriods       int     `csv:"n_periods"`
}

// WriteMetricsCSV writes the per-ticker metrics to a CSV file at path,
// replacing any existing file.
func WriteMetricsCSV(path string, metrics []domain.StockMetric) error {
	rows := make([]metricRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, metricRow{
			Ticker:         m.Ticker,
			FinalBalance:   m.FinalBalance,
			Trades:         m.Trades,
			Wins:           m.Wins,
			ROIPct:         m.ROIPct,
			BuyAndHoldPct:  m.BuyAndHoldPct,
			AlphaPct:       m.AlphaPct,
			MaxDrawdownPct: m.MaxDrawdownPct,
			Sharpe:         m.Sharpe,
			NPeriods:       m.NPeriods,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing metrics csv: %w", err)
	}
	return nil
}
