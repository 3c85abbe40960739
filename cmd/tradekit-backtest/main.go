// Command tradekit-backtest runs a trading-strategy backtest over a
// directory of per-ticker price files and prints the portfolio summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tradekit/internal/config"
	"tradekit/internal/engine"
	"tradekit/internal/report"
	"tradekit/internal/store"
	"tradekit/internal/strategy"
	"tradekit/internal/strategy/builtins"
	"tradekit/internal/util"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		dataDir    = flag.String("data", "", "price data directory")
		format     = flag.String("format", "", "price source format: csv or parquet")
		stratName  = flag.String("strategy", "", "strategy name (see -list)")
		window     = flag.Int("window", 0, "history window size")
		workers    = flag.Int("workers", 0, "tickers simulated concurrently")
		riskFree   = flag.Float64("rfr", -1, "annual risk-free rate")
		shortP     = flag.Int("short", 0, "short SMA period (sma-cross)")
		longP      = flag.Int("long", 0, "long SMA period (sma-cross)")
		csvPath    = flag.String("csv", "", "write per-ticker metrics CSV to this path")
		chartDir   = flag.String("charts", "", "write per-ticker equity charts into this directory")
		dbPath     = flag.String("db", "", "persist the run to this SQLite database")
		list       = flag.Bool("list", false, "list available strategies and exit")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if *format != "" {
		cfg.Storage.Format = *format
	}
	if *stratName != "" {
		cfg.Backtest.Strategy = *stratName
	}
	if *window > 0 {
		cfg.Backtest.HistorySize = *window
	}
	if *workers > 0 {
		cfg.Backtest.Workers = *workers
	}
	if *riskFree >= 0 {
		cfg.Backtest.RiskFreeRateAnnual = *riskFree
	}
	if *shortP > 0 {
		cfg.Backtest.ShortPeriod = *shortP
	}
	if *longP > 0 {
		cfg.Backtest.LongPeriod = *longP
	}
	if *csvPath != "" {
		cfg.Report.CSVPath = *csvPath
	}
	if *chartDir != "" {
		cfg.Report.ChartDir = *chartDir
	}
	if *dbPath != "" {
		cfg.Storage.SQLitePath = *dbPath
	}

	log := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(log)

	registry := strategy.NewRegistry()
	registry.Register(builtins.NewSMACross(cfg.Backtest.ShortPeriod, cfg.Backtest.LongPeriod))
	registry.Register(builtins.NewDip())

	if *list {
		for _, name := range registry.List() {
			fmt.Println(name)
		}
		return
	}

	strat, ok := registry.Get(cfg.Backtest.Strategy)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown strategy %q; available: %v\n",
			cfg.Backtest.Strategy, registry.List())
		os.Exit(1)
	}

	var source store.PriceSource
	switch cfg.Storage.Format {
	case "csv":
		source = store.NewCSVSource(cfg.Storage.DataDir)
	case "parquet":
		source = store.NewParquetSource(cfg.Storage.DataDir)
	default:
		fmt.Fprintf(os.Stderr, "unknown source format %q\n", cfg.Storage.Format)
		os.Exit(1)
	}

	keepDetails := cfg.Backtest.KeepDetails || cfg.Report.ChartDir != ""

	e := engine.New(source, strat, engine.Config{
		HistorySize:        cfg.Backtest.HistorySize,
		RiskFreeRateAnnual: cfg.Backtest.RiskFreeRateAnnual,
		Workers:            cfg.Backtest.Workers,
		KeepDetails:        keepDetails,
	}, log)

	ctx := context.Background()
	result, err := e.Run(ctx)
	if err != nil {
		log.Error("backtest failed", "err", err)
		os.Exit(1)
	}

	s := result.Summary
	fmt.Printf("strategy:          %s\n", strat.Name())
	fmt.Printf("stocks processed:  %d\n", s.StocksProcessed)
	fmt.Printf("total ROI:         %.2f%%\n", s.TotalROIPct)
	fmt.Printf("total trades:      %d\n", s.TotalTrades)
	fmt.Printf("win rate:          %.2f%%\n", s.WinRatePct)
	fmt.Printf("final capital:     %.2f\n", s.FinalCapital)
	fmt.Printf("average alpha:     %.2f%%\n", s.AverageAlphaPct)
	fmt.Printf("average sharpe:    %.3f\n", s.AverageSharpe)

	if cfg.Report.CSVPath != "" {
		if err := report.WriteMetricsCSV(cfg.Report.CSVPath, result.Metrics); err != nil {
			log.Error("writing metrics csv", "err", err)
			os.Exit(1)
		}
		log.Info("wrote metrics csv", "path", cfg.Report.CSVPath)
	}

	if cfg.Report.ChartDir != "" {
		if err := report.WriteCharts(cfg.Report.ChartDir, result.Details); err != nil {
			log.Error("writing charts", "err", err)
			os.Exit(1)
		}
		log.Info("wrote equity charts", "dir", cfg.Report.ChartDir, "count", len(result.Details))
	}

	if cfg.Storage.SQLitePath != "" {
		db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Error("opening results db", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		meta := store.RunMeta{
			Strategy:           strat.Name(),
			HistorySize:        cfg.Backtest.HistorySize,
			RiskFreeRateAnnual: cfg.Backtest.RiskFreeRateAnnual,
		}
		runID, err := db.SaveRun(ctx, meta, result)
		if err != nil {
			log.Error("saving run", "err", err)
			os.Exit(1)
		}
		log.Info("saved run", "id", runID, "db", cfg.Storage.SQLitePath)
	}
}
