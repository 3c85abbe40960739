package builtins

import (
	"context"

	"tradekit/internal/domain"
	"tradekit/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Dip)(nil)

// Dip buys into weakness and sells into strength: it opens when the window's
// last price is below its first (a declining window) and closes when the
// last price is above the first.
type Dip struct{}

// NewDip creates a Dip strategy.
func NewDip() *Dip {
	return &Dip{}
}

// Name returns "dip".
func (d *Dip) Name() string {
	return "dip"
}

// Step emits a buy on a declining window when flat and a sell on a rising
// window when long. An empty window produces a hold.
func (d *Dip) Step(_ context.Context, window []float64, position int) (int, error) {
	if len(window) == 0 {
		return domain.SignalHold, nil
	}
	first := window[0]
	last := window[len(window)-1]

	switch {
	case position == domain.PositionFlat && last < first:
		return domain.SignalBuy, nil
	case position == domain.PositionLong && last > first:
		return domain.SignalSell, nil
	}
	return domain.SignalHold, nil
}
