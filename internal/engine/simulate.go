package engine

import (
	"context"

	"tradekit/internal/domain"
)

// simulate runs the per-ticker event loop over series. The caller guarantees
// len(series) > HistorySize+1.
//
// For each step i in [HistorySize, len(series)) the strategy sees the
// trailing window [i-HistorySize, i) — never the price it is about to act on
// — and the position-transition rules are applied to its signal. Event
// indices are relative to the first simulated bar.
func (e *Engine) simulate(ctx context.Context, ticker string, series []domain.PricePoint) (domain.StockMetric, *domain.StockDetail) {
	historySize := e.cfg.HistorySize
	nBars := len(series) - historySize

	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Price
	}

	balance := InitialCapitalPerStock
	shares := 0.0
	inPosition := false
	trades := 0
	wins := 0
	entryPrice := 0.0

	// Buy-and-hold baseline: everything bought at the first simulated bar's
	// price, never sold.
	bhShares := InitialCapitalPerStock / prices[historySize]

	detail := &domain.StockDetail{
		Ticker:         ticker,
		Dates:          make([]string, 0, nBars),
		Closes:         make([]float64, 0, nBars),
		Signals:        make([]int, 0, nBars),
		BalanceHistory: make([]float64, 0, nBars),
		BuyHoldHistory: make([]float64, 0, nBars),
	}

	for i := historySize; i < len(series); i++ {
		price := prices[i]
		window := prices[i-historySize : i]

		position := domain.PositionFlat
		if inPosition {
			position = domain.PositionLong
		}

		signal, err := e.strat.Step(ctx, window, position)
		if err != nil {
			e.log.Warn("strategy step failed, treating as hold",
				"ticker", ticker, "index", i, "err", err)
			signal = domain.SignalHold
		} else if signal < domain.SignalSell || signal > domain.SignalBuy {
			e.log.Warn("strategy returned out-of-range signal, treating as hold",
				"ticker", ticker, "index", i, "signal", signal)
			signal = domain.SignalHold
		}

		if inPosition {
			if signal == domain.SignalSell {
				revenue := shares * price
				profit := revenue - shares*entryPrice
				if profit > 0 {
					wins++
					detail.SellWinIndices = append(detail.SellWinIndices, i-historySize)
				} else {
					detail.SellLossIndices = append(detail.SellLossIndices, i-historySize)
				}
				balance = revenue
				inPosition = false
				shares = 0
				trades++
			}
		} else if signal == domain.SignalBuy {
			inPosition = true
			entryPrice = price
			if price > 0 {
				shares = balance / price
			} else {
				shares = 0
			}
			detail.BuyIndices = append(detail.BuyIndices, i-historySize)
		}

		detail.Dates = append(detail.Dates, series[i].Date)
		detail.Closes = append(detail.Closes, price)
		detail.Signals = append(detail.Signals, signal)

		value := balance
		if inPosition {
			value = shares * price
		}
		detail.BalanceHistory = append(detail.BalanceHistory, value)
		detail.BuyHoldHistory = append(detail.BuyHoldHistory, bhShares*price)
	}

	metric := computeMetric(ticker, detail.BalanceHistory, detail.BuyHoldHistory,
		balance, trades, wins, e.cfg.RiskFreeRateAnnual)

	return metric, detail
}
