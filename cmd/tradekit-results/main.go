// Command tradekit-results inspects backtest runs persisted by
// tradekit-backtest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tradekit/internal/store"
)

func main() {
	var (
		dbPath = flag.String("db", "tradekit.db", "SQLite database written by tradekit-backtest")
		limit  = flag.Int("limit", 20, "number of runs to list")
		runID  = flag.Int64("run", 0, "show per-ticker metrics for this run instead of listing runs")
	)
	flag.Parse()

	db, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", *dbPath, err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if *runID > 0 {
		metrics, err := db.GetRunMetrics(ctx, *runID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading run %d: %v\n", *runID, err)
			os.Exit(1)
		}
		if len(metrics) == 0 {
			fmt.Printf("run %d has no metrics\n", *runID)
			return
		}
		fmt.Printf("%-10s %12s %7s %6s %9s %9s %9s %8s %8s %9s\n",
			"ticker", "balance", "trades", "wins", "roi%", "b&h%", "alpha%", "maxdd%", "sharpe", "periods")
		for _, m := range metrics {
			fmt.Printf("%-10s %12.2f %7d %6d %9.2f %9.2f %9.2f %8.2f %8.3f %9d\n",
				m.Ticker, m.FinalBalance, m.Trades, m.Wins,
				m.ROIPct, m.BuyAndHoldPct, m.AlphaPct, m.MaxDrawdownPct, m.Sharpe, m.NPeriods)
		}
		return
	}

	runs, err := db.ListRuns(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}

	fmt.Printf("%-5s %-20s %-12s %7s %7s %9s %7s %13s %8s\n",
		"id", "created", "strategy", "window", "stocks", "roi%", "win%", "capital", "sharpe")
	for _, r := range runs {
		fmt.Printf("%-5d %-20s %-12s %7d %7d %9.2f %7.2f %13.2f %8.3f\n",
			r.ID, r.CreatedAt, r.Strategy, r.HistorySize,
			r.Summary.StocksProcessed, r.Summary.TotalROIPct,
			r.Summary.WinRatePct, r.Summary.FinalCapital, r.Summary.AverageSharpe)
	}
}
