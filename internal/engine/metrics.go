package engine

import (
	"math"

	"tradekit/internal/domain"
	"tradekit/internal/stats"
)

// computeMetric converts one ticker's recorded portfolio-value and
// buy-and-hold series into the fixed summary record.
func computeMetric(ticker string, values, bhValues []float64, balance float64, trades, wins int, riskFreeRateAnnual float64) domain.StockMetric {
	finalBalance := balance
	if len(values) > 0 {
		finalBalance = values[len(values)-1]
	}
	roiPct := (finalBalance - InitialCapitalPerStock) / InitialCapitalPerStock * 100

	buyAndHoldPct := 0.0
	if len(bhValues) > 0 {
		buyAndHoldPct = (bhValues[len(bhValues)-1]/bhValues[0] - 1) * 100
	}

	annualizedReturn := 0.0
	if len(values) > 0 {
		nPeriods := float64(len(values))
		annualizedReturn = math.Pow(values[len(values)-1]/values[0], TradingDaysPerYear/nPeriods) - 1
	}

	returns := stats.PctChanges(values)
	annualizedVol := stats.StdSample(returns) * math.Sqrt(TradingDaysPerYear)

	// Zero volatility yields a Sharpe of 0 rather than a division by zero.
	sharpe := 0.0
	if annualizedVol > 0 {
		sharpe = (annualizedReturn - riskFreeRateAnnual) / annualizedVol
	}

	return domain.StockMetric{
		Ticker:         ticker,
		FinalBalance:   finalBalance,
		Trades:         trades,
		Wins:           wins,
		ROIPct:         roiPct,
		BuyAndHoldPct:  buyAndHoldPct,
		AlphaPct:       roiPct - buyAndHoldPct,
		MaxDrawdownPct: stats.MaxDrawdown(values) * 100,
		Sharpe:         sharpe,
		NPeriods:       len(values),
	}
}

// Summarize folds per-ticker metrics into the portfolio-level summary.
// Aggregate ROI is computed from summed dollar balances, which weights every
// ticker equally by starting capital. An empty metrics slice yields a
// well-formed zero summary.
func Summarize(metrics []domain.StockMetric) domain.PortfolioSummary {
	var (
		totalInitial float64
		totalFinal   float64
		totalTrades  int
		totalWins    int
		sumAlpha     float64
		sumSharpe    float64
	)

	for _, m := range metrics {
		totalInitial += InitialCapitalPerStock
		totalFinal += m.FinalBalance
		totalTrades += m.Trades
		totalWins += m.Wins
		sumAlpha += m.AlphaPct
		sumSharpe += m.Sharpe
	}

	summary := domain.PortfolioSummary{
		StocksProcessed: len(metrics),
		TotalTrades:     totalTrades,
		FinalCapital:    totalFinal,
	}

	if totalInitial > 0 {
		summary.TotalROIPct = (totalFinal - totalInitial) / totalInitial * 100
	}
	if totalTrades > 0 {
		summary.WinRatePct = float64(totalWins) / float64(totalTrades) * 100
	}
	if n := float64(len(metrics)); n > 0 {
		summary.AverageAlphaPct = sumAlpha / n
		summary.AverageSharpe = sumSharpe / n
	}

	return summary
}
