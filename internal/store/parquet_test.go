package store

import (
	"context"
	"testing"
	"time"
)

func TestParquetSourceWriteReadSeries(t *testing.T) {
	dir := t.TempDir()
	ps := NewParquetSource(dir)
	ctx := context.Background()

	records := []PriceRecord{
		{Ticker: "AAPL", Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).UnixMilli(), Close: 186.0},
		{Ticker: "AAPL", Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), Close: 185.5},
	}
	if err := ps.WriteSeries(ctx, "AAPL", records); err != nil {
		t.Fatalf("WriteSeries returned error: %v", err)
	}

	series, err := ps.ReadSeries(ctx, "AAPL")
	if err != nil {
		t.Fatalf("ReadSeries returned error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	// Sorted by timestamp regardless of write order.
	if series[0].Date != "2024-01-02" || series[0].Price != 185.5 {
		t.Errorf("series[0] = %+v, want 2024-01-02/185.5", series[0])
	}
	if series[1].Date != "2024-01-03" || series[1].Price != 186.0 {
		t.Errorf("series[1] = %+v, want 2024-01-03/186.0", series[1])
	}
}

func TestParquetSourceMergeOnWrite(t *testing.T) {
	dir := t.TempDir()
	ps := NewParquetSource(dir)
	ctx := context.Background()

	day1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli()
	day2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).UnixMilli()

	if err := ps.WriteSeries(ctx, "TSLA", []PriceRecord{{Ticker: "TSLA", Timestamp: day1, Close: 100}}); err != nil {
		t.Fatalf("first WriteSeries: %v", err)
	}
	// Second write revises day1 and adds day2.
	if err := ps.WriteSeries(ctx, "TSLA", []PriceRecord{
		{Ticker: "TSLA", Timestamp: day1, Close: 101},
		{Ticker: "TSLA", Timestamp: day2, Close: 102},
	}); err != nil {
		t.Fatalf("second WriteSeries: %v", err)
	}

	series, err := ps.ReadSeries(ctx, "TSLA")
	if err != nil {
		t.Fatalf("ReadSeries returned error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2 after merge", len(series))
	}
	if series[0].Price != 101 {
		t.Errorf("series[0].Price = %v, want revised 101", series[0].Price)
	}
}

func TestParquetSourceListTickers(t *testing.T) {
	dir := t.TempDir()
	ps := NewParquetSource(dir)
	ctx := context.Background()

	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli()
	for _, tk := range []string{"MSFT", "AAPL"} {
		if err := ps.WriteSeries(ctx, tk, []PriceRecord{{Ticker: tk, Timestamp: ts, Close: 1}}); err != nil {
			t.Fatalf("WriteSeries(%s): %v", tk, err)
		}
	}

	tickers, err := ps.ListTickers(ctx)
	if err != nil {
		t.Fatalf("ListTickers returned error: %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "AAPL" || tickers[1] != "MSFT" {
		t.Errorf("ListTickers = %v, want [AAPL MSFT]", tickers)
	}
}

func TestParquetSourceListTickersMissingDir(t *testing.T) {
	ps := NewParquetSource("/does/not/exist")
	tickers, err := ps.ListTickers(context.Background())
	if err != nil {
		t.Fatalf("ListTickers returned error for missing dir: %v", err)
	}
	if len(tickers) != 0 {
		t.Errorf("ListTickers = %v, want empty", tickers)
	}
}
