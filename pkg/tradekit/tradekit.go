// Package tradekit is the public embedding surface for the backtest engine:
// it wires a price source, a strategy, and the simulation together behind a
// small API with no internal types.
package tradekit

import (
	"context"
	"errors"
	"log/slog"

	"tradekit/internal/domain"
	"tradekit/internal/engine"
	"tradekit/internal/store"
	"tradekit/internal/strategy"
)

// StepFunc is the strategy contract: given the trailing price window and the
// current position indicator (0 = flat, 1 = long), return -1 (sell), 0
// (hold), or 1 (buy). Errors and out-of-range values are treated as hold.
type StepFunc func(window []float64, position int) (int, error)

// Options configures a backtest run.
type Options struct {
	// DataDir holds the per-ticker price files.
	DataDir string

	// Format selects the price source: "csv" (default) or "parquet".
	Format string

	// HistorySize is the strategy's trailing window length.
	HistorySize int

	// RiskFreeRateAnnual feeds the Sharpe computation. Defaults to 0.
	RiskFreeRateAnnual float64

	// Workers > 1 simulates tickers concurrently.
	Workers int

	// KeepDetails retains per-bar detail for every ticker.
	KeepDetails bool

	// Logger receives engine warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Metric is one ticker's summary record.
type Metric struct {
	Ticker         string
	FinalBalance   float64
	Trades         int
	Wins           int
	ROIPct         float64
	BuyAndHoldPct  float64
	AlphaPct       float64
	MaxDrawdownPct float64
	Sharpe         float64
	NPeriods       int
}

// Summary is the portfolio-level aggregate of a run.
type Summary struct {
	StocksProcessed int
	TotalROIPct     float64
	TotalTrades     int
	WinRatePct      float64
	FinalCapital    float64
	AverageAlphaPct float64
	AverageSharpe   float64
}

// Detail is the full per-bar record of one ticker.
type Detail struct {
	Dates           []string
	Closes          []float64
	Signals         []int
	BalanceHistory  []float64
	BuyHoldHistory  []float64
	BuyIndices      []int
	SellWinIndices  []int
	SellLossIndices []int
}

// Result is the structured output of one run.
type Result struct {
	Metrics []Metric
	Summary Summary
	Details map[string]*Detail
}

// Run executes a backtest of step over every ticker in opts.DataDir.
func Run(ctx context.Context, step StepFunc, opts Options) (*Result, error) {
	if step == nil {
		return nil, errors.New("tradekit: nil strategy")
	}

	var source store.PriceSource
	switch opts.Format {
	case "", "csv":
		source = store.NewCSVSource(opts.DataDir)
	case "parquet":
		source = store.NewParquetSource(opts.DataDir)
	default:
		return nil, errors.New("tradekit: unknown source format " + opts.Format)
	}

	strat := strategy.Func{
		StrategyName: "embedded",
		StepFunc: func(_ context.Context, window []float64, position int) (int, error) {
			return step(window, position)
		},
	}

	e := engine.New(source, strat, engine.Config{
		HistorySize:        opts.HistorySize,
		RiskFreeRateAnnual: opts.RiskFreeRateAnnual,
		Workers:            opts.Workers,
		KeepDetails:        opts.KeepDetails,
	}, opts.Logger)

	run, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}
	return convert(run), nil
}

func convert(run *domain.RunResult) *Result {
	out := &Result{
		Metrics: make([]Metric, 0, len(run.Metrics)),
		Summary: Summary(run.Summary),
	}
	for _, m := range run.Metrics {
		out.Metrics = append(out.Metrics, Metric(m))
	}
	if run.Details != nil {
		out.Details = make(map[string]*Detail, len(run.Details))
		for ticker, d := range run.Details {
			out.Details[ticker] = &Detail{
				Dates:           d.Dates,
				Closes:          d.Closes,
				Signals:         d.Signals,
				BalanceHistory:  d.BalanceHistory,
				BuyHoldHistory:  d.BuyHoldHistory,
				BuyIndices:      d.BuyIndices,
				SellWinIndices:  d.SellWinIndices,
				SellLossIndices: d.SellLossIndices,
			}
		}
	}
	return out
}
