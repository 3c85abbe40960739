package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"tradekit/internal/domain"
)

// Compile-time interface check.
var _ PriceSource = (*ParquetSource)(nil)

// ParquetSource reads per-ticker price series from Parquet files laid out as
// <DataDir>/<TICKER>.parquet. It implements the same contract as CSVSource
// for data prepared by the gathering tooling.
type ParquetSource struct {
	DataDir string
}

// NewParquetSource creates a ParquetSource rooted at the given directory.
func NewParquetSource(dataDir string) *ParquetSource {
	return &ParquetSource{DataDir: dataDir}
}

// PriceRecord is the Parquet schema for daily close data.
type PriceRecord struct {
	Ticker    string  `parquet:"ticker"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Close     float64 `parquet:"close"`
}

// ListTickers lists all tickers that have a Parquet file in the data
// directory.
func (s *ParquetSource) ListTickers(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tickers []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".parquet") {
			continue
		}
		tickers = append(tickers, strings.TrimSuffix(e.Name(), ".parquet"))
	}
	sort.Strings(tickers)
	return tickers, nil
}

// ReadSeries reads one ticker's series, ordered by timestamp. Dates are
// rendered as YYYY-MM-DD in UTC.
func (s *ParquetSource) ReadSeries(_ context.Context, ticker string) ([]domain.PricePoint, error) {
	records, err := readParquetFile[PriceRecord](s.path(ticker))
	if err != nil {
		return nil, fmt.Errorf("reading parquet series for %s: %w", ticker, err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})

	series := make([]domain.PricePoint, 0, len(records))
	for _, r := range records {
		series = append(series, domain.PricePoint{
			Date:  time.UnixMilli(r.Timestamp).UTC().Format("2006-01-02"),
			Price: r.Close,
		})
	}
	return series, nil
}

// WriteSeries persists price records for one ticker, merging with and
// deduplicating against any existing file by timestamp.
func (s *ParquetSource) WriteSeries(_ context.Context, ticker string, records []PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	path := s.path(ticker)

	existing, _ := readParquetFile[PriceRecord](path)
	merged := mergePriceRecords(existing, records)

	if err := writeParquetFile(path, merged); err != nil {
		return fmt.Errorf("writing parquet series for %s: %w", ticker, err)
	}
	return nil
}

func (s *ParquetSource) path(ticker string) string {
	return filepath.Join(s.DataDir, ticker+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// mergePriceRecords deduplicates by timestamp, preferring new records over
// existing ones. Results are sorted by timestamp.
func mergePriceRecords(existing, incoming []PriceRecord) []PriceRecord {
	seen := make(map[int64]PriceRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.Timestamp] = r
	}
	for _, r := range incoming {
		seen[r.Timestamp] = r
	}

	merged := make([]PriceRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	return merged
}
