// Package domain defines the core value types shared across the backtest
// engine: price points, trading signals, per-ticker metrics, and the
// portfolio-level run result.
package domain

// Trading signals emitted by a strategy for a single bar.
const (
	SignalSell = -1
	SignalHold = 0
	SignalBuy  = 1
)

// Position indicators passed to a strategy.
const (
	PositionFlat = 0
	PositionLong = 1
)

// PricePoint is one (date, close) observation in a ticker's daily series.
// Order within a series is chronological and load-order-preserving; gaps
// between dates carry no meaning.
type PricePoint struct {
	Date  string
	Price float64
}

// StockMetric is the fixed per-ticker summary produced after simulation.
// AlphaPct is always exactly ROIPct - BuyAndHoldPct.
type StockMetric struct {
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

// StockDetail holds the full per-bar record of one ticker's simulation, for
// downstream visualization. All slices are parallel and have one entry per
// simulated bar; the index lists refer to positions within those slices.
type StockDetail struct {
	Ticker          string
	Dates           []string
	Closes          []float64
	Signals         []int
	BalanceHistory  []float64
	BuyHoldHistory  []float64
	BuyIndices      []int
	SellWinIndices  []int
	SellLossIndices []int
}

// PortfolioSummary aggregates all processed tickers into run-level figures.
// TotalROIPct is computed from summed dollar balances, not averaged
// percentages.
type PortfolioSummary struct {
	StocksProcessed int
	TotalROIPct     float64
	TotalTrades     int
	WinRatePct      float64
	FinalCapital    float64
	AverageAlphaPct float64
	AverageSharpe   float64
}

// RunResult is the structured output of one backtest run. Details is keyed
// by ticker and is populated only when detail retention is enabled.
type RunResult struct {
	Metrics []StockMetric
	Summary PortfolioSummary
	Details map[string]*StockDetail
}
