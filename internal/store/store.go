// Package store defines the price-data sources that feed the backtest engine
// and the result store that persists completed runs.
package store

import (
	"context"

	"tradekit/internal/domain"
)

// PriceSource yields per-ticker historical price series. Implementations
// cover one data directory; tickers are discovered by the source's naming
// convention.
type PriceSource interface {
	// ListTickers returns all tickers available in the source, sorted.
	ListTickers(ctx context.Context) ([]string, error)

	// ReadSeries returns the ordered (date, close) series for one ticker.
	// A whole-file read failure is returned as an error; individually
	// malformed rows are dropped silently.
	ReadSeries(ctx context.Context, ticker string) ([]domain.PricePoint, error)
}

// ResultStore persists completed backtest runs for later inspection.
type ResultStore interface {
	// SaveRun stores a run's summary and per-ticker metrics and returns the
	// assigned run ID.
	SaveRun(ctx context.Context, meta RunMeta, result *domain.RunResult) (int64, error)

	// ListRuns returns the most recent runs, newest first, up to limit.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// GetRunMetrics returns the per-ticker metrics of one run.
	GetRunMetrics(ctx context.Context, runID int64) ([]domain.StockMetric, error)
}

// RunMeta describes the parameters a run was executed with.
type RunMeta struct {
	Strategy           string
	HistorySize        int
	RiskFreeRateAnnual float64
}

// RunRecord is one persisted run as listed from the result store.
type RunRecord struct {
	ID        int64
	CreatedAt string
	RunMeta
	Summary domain.PortfolioSummary
}
