package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vicanso/go-charts/v2"

	"tradekit/internal/domain"
)

// RenderEquityChart renders one ticker's simulated portfolio value against
// its buy-and-hold baseline as a PNG line chart.
func RenderEquityChart(detail *domain.StockDetail) ([]byte, error) {
	if detail == nil || len(detail.BalanceHistory) == 0 {
		return nil, errors.New("no bars to chart")
	}

	values := [][]float64{detail.BalanceHistory, detail.BuyHoldHistory}
	names := []string{"strategy", "buy & hold"}

	yMin, yMax := values[0][0], values[0][0]
	for _, series := range values {
		for _, v := range series {
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	split := min(10, len(detail.Dates))

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(detail.Ticker+" equity curve"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        detail.Dates,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: split,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering chart for %s: %w", detail.Ticker, err)
	}
	return painter.Bytes()
}

// WriteCharts renders every ticker's equity chart into dir as
// <TICKER>.png. Tickers that cannot be charted are skipped with an error
// only if rendering itself fails.
func WriteCharts(dir string, details map[string]*domain.StockDetail) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for ticker, detail := range details {
		img, err := RenderEquityChart(detail)
		if err != nil {
			return fmt.Errorf("chart for %s: %w", ticker, err)
		}
		path := filepath.Join(dir, ticker+".png")
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return err
		}
	}
	return nil
}
