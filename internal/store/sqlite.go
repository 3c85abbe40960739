package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"tradekit/internal/domain"
)

// Compile-time interface check.
var _ ResultStore = (*SQLiteStore)(nil)

// SQLiteStore implements ResultStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, runs the
// schema migration, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating results db: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at        TEXT NOT NULL,
	strategy          TEXT NOT NULL,
	history_size      INTEGER NOT NULL,
	risk_free_rate    REAL NOT NULL,
	stocks_processed  INTEGER NOT NULL,
	total_roi_pct     REAL NOT NULL,
	total_trades      INTEGER NOT NULL,
	win_rate_pct      REAL NOT NULL,
	final_capital     REAL NOT NULL,
	average_alpha_pct REAL NOT NULL,
	average_sharpe    REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS stock_metrics (
	run_id           INTEGER NOT NULL REFERENCES runs(id),
	ticker           TEXT NOT NULL,
	final_balance    REAL NOT NULL,
	trades           INTEGER NOT NULL,
	wins             INTEGER NOT NULL,
	roi_pct          REAL NOT NULL,
	buy_and_hold_pct REAL NOT NULL,
	alpha_pct        REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	sharpe           REAL NOT NULL,
	n_periods        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_metrics_run ON stock_metrics(run_id);
`)
	return err
}

// SaveRun stores a run's summary row and one metric row per ticker inside a
// single transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, meta RunMeta, result *domain.RunResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	sum := result.Summary
	res, err := tx.ExecContext(ctx, `
INSERT INTO runs (
	created_at, strategy, history_size, risk_free_rate,
	stocks_processed, total_roi_pct, total_trades, win_rate_pct,
	final_capital, average_alpha_pct, average_sharpe
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		meta.Strategy, meta.HistorySize, meta.RiskFreeRateAnnual,
		sum.StocksProcessed, sum.TotalROIPct, sum.TotalTrades, sum.WinRatePct,
		sum.FinalCapital, sum.AverageAlphaPct, sum.AverageSharpe,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO stock_metrics (
	run_id, ticker, final_balance, trades, wins,
	roi_pct, buy_and_hold_pct, alpha_pct, max_drawdown_pct, sharpe, n_periods
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, m := range result.Metrics {
		if _, err := stmt.ExecContext(ctx,
			runID, m.Ticker, m.FinalBalance, m.Trades, m.Wins,
			m.ROIPct, m.BuyAndHoldPct, m.AlphaPct, m.MaxDrawdownPct, m.Sharpe, m.NPeriods,
		); err != nil {
			return 0, fmt.Errorf("inserting metric for %s: %w", m.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, strategy, history_size, risk_free_rate,
	stocks_processed, total_roi_pct, total_trades, win_rate_pct,
	final_capital, average_alpha_pct, average_sharpe
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID, &r.CreatedAt, &r.Strategy, &r.HistorySize, &r.RiskFreeRateAnnual,
			&r.Summary.StocksProcessed, &r.Summary.TotalROIPct, &r.Summary.TotalTrades,
			&r.Summary.WinRatePct, &r.Summary.FinalCapital,
			&r.Summary.AverageAlphaPct, &r.Summary.AverageSharpe,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRunMetrics returns the per-ticker metrics of one run, in insertion
// order.
func (s *SQLiteStore) GetRunMetrics(ctx context.Context, runID int64) ([]domain.StockMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT ticker, final_balance, trades, wins,
	roi_pct, buy_and_hold_pct, alpha_pct, max_drawdown_pct, sharpe, n_periods
FROM stock_metrics WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []domain.StockMetric
	for rows.Next() {
		var m domain.StockMetric
		if err := rows.Scan(
			&m.Ticker, &m.FinalBalance, &m.Trades, &m.Wins,
			&m.ROIPct, &m.BuyAndHoldPct, &m.AlphaPct, &m.MaxDrawdownPct, &m.Sharpe, &m.NPeriods,
		); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
