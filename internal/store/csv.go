package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"tradekit/internal/domain"
)

// FileSuffix is the naming convention for per-ticker CSV files: one
// "<TICKER>_meso.csv" per ticker under the data directory.
const FileSuffix = "_meso.csv"

// Compile-time interface check.
var _ PriceSource = (*CSVSource)(nil)

// CSVSource reads per-ticker price series from delimited files. Column 0 is
// the date string and column 4 the closing price; the header row and any row
// that cannot be parsed are skipped.
type CSVSource struct {
	DataDir string
}

// NewCSVSource creates a CSVSource rooted at the given data directory.
func NewCSVSource(dataDir string) *CSVSource {
	return &CSVSource{DataDir: dataDir}
}

// ListTickers returns the tickers of all "*_meso.csv" files in the data
// directory, sorted.
func (s *CSVSource) ListTickers(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.DataDir, "*"+FileSuffix))
	if err != nil {
		return nil, fmt.Errorf("listing price files in %s: %w", s.DataDir, err)
	}

	tickers := make([]string, 0, len(matches))
	for _, m := range matches {
		tickers = append(tickers, strings.TrimSuffix(filepath.Base(m), FileSuffix))
	}
	sort.Strings(tickers)
	return tickers, nil
}

// ReadSeries loads one ticker's (date, close) series. The first line is
// always treated as a header. Rows with fewer than 5 fields or an
// unparseable price are dropped; partial data is acceptable.
func (s *CSVSource) ReadSeries(_ context.Context, ticker string) ([]domain.PricePoint, error) {
	path := filepath.Join(s.DataDir, ticker+FileSuffix)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var series []domain.PricePoint
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) < 5 {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil {
			continue
		}
		series = append(series, domain.PricePoint{
			Date:  strings.TrimSpace(parts[0]),
			Price: price,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return series, nil
}
