// Package engine implements the backtest simulation: the per-ticker event
// loop, the per-ticker metrics aggregation, and the portfolio-level summary.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"tradekit/internal/domain"
	"tradekit/internal/store"
	"tradekit/internal/strategy"
)

// Fixed simulation constants.
const (
	InitialCapitalPerStock = 10000.0
	TradingDaysPerYear     = 252.0
)

// Config holds the per-run simulation parameters.
type Config struct {
	// HistorySize is the length of the trailing price window handed to the
	// strategy. Tickers with a series of length <= HistorySize+1 are
	// excluded entirely.
	HistorySize int

	// RiskFreeRateAnnual is subtracted from the annualized return when
	// computing Sharpe. Zero by default.
	RiskFreeRateAnnual float64

	// Workers is the number of tickers simulated concurrently. Values < 1
	// mean 1. Per-ticker state is fully isolated, so any worker count
	// produces identical results.
	Workers int

	// KeepDetails retains the full per-bar record of every ticker in the
	// run result, for visualization.
	KeepDetails bool
}

// Engine replays historical price series through a strategy, one ticker at a
// time, and aggregates the results.
type Engine struct {
	source store.PriceSource
	strat  strategy.Strategy
	cfg    Config
	log    *slog.Logger
}

// New creates an Engine reading from source and driven by strat.
func New(source store.PriceSource, strat strategy.Strategy, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{source: source, strat: strat, cfg: cfg, log: log}
}

// tickerResult is the outcome of simulating one ticker. ok is false for
// tickers that were skipped (read failure or insufficient history).
type tickerResult struct {
	metric domain.StockMetric
	detail *domain.StockDetail
	ok     bool
}

// Run simulates every ticker the source lists and folds the per-ticker
// metrics into a portfolio summary. Individual ticker failures are logged
// and skipped; an empty source still yields a well-formed zero summary.
func (e *Engine) Run(ctx context.Context) (*domain.RunResult, error) {
	tickers, err := e.source.ListTickers(ctx)
	if err != nil {
		return nil, err
	}

	// Results land in a positionally indexed slice so output order does not
	// depend on worker scheduling.
	results := make([]tickerResult, len(tickers))

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, len(tickers))

	idxCh := make(chan int, len(tickers))
	for i := range tickers {
		idxCh <- i
	}
	close(idxCh)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				if ctx.Err() != nil {
					return
				}
				results[i] = e.runTicker(ctx, tickers[i])
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.RunResult{}
	if e.cfg.KeepDetails {
		result.Details = make(map[string]*domain.StockDetail)
	}
	for _, r := range results {
		if !r.ok {
			continue
		}
		result.Metrics = append(result.Metrics, r.metric)
		if e.cfg.KeepDetails {
			result.Details[r.metric.Ticker] = r.detail
		}
	}
	result.Summary = Summarize(result.Metrics)

	return result, nil
}

// runTicker loads one ticker's series and simulates it. A read failure or an
// insufficient series length skips the ticker without failing the run.
func (e *Engine) runTicker(ctx context.Context, ticker string) tickerResult {
	series, err := e.source.ReadSeries(ctx, ticker)
	if err != nil {
		e.log.Error("skipping ticker after read failure", "ticker", ticker, "err", err)
		return tickerResult{}
	}

	if len(series) <= e.cfg.HistorySize+1 {
		e.log.Debug("skipping ticker with insufficient history",
			"ticker", ticker, "series_len", len(series), "history_size", e.cfg.HistorySize)
		return tickerResult{}
	}

	metric, detail := e.simulate(ctx, ticker, series)
	return tickerResult{metric: metric, detail: detail, ok: true}
}
