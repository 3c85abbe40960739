// Package builtins provides the built-in strategy implementations that ship
// with tradekit.
package builtins

import (
	"context"

	talib "github.com/markcheno/go-talib"

	"tradekit/internal/domain"
	"tradekit/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SMACross)(nil)

// SMACross is a simple moving average crossover strategy: buy when the
// short-period SMA of the window is above the long-period SMA and the
// position is flat, sell when it is below and the position is long.
type SMACross struct {
	shortPeriod int
	longPeriod  int
}

// NewSMACross creates an SMACross strategy with the specified short and long
// moving average periods.
func NewSMACross(short, long int) *SMACross {
	return &SMACross{
		shortPeriod: short,
		longPeriod:  long,
	}
}

// Name returns "sma-cross".
func (s *SMACross) Name() string {
	return "sma-cross"
}

// Step compares the short and long SMAs over the trailing window. Windows
// shorter than the long period produce a hold.
func (s *SMACross) Step(_ context.Context, window []float64, position int) (int, error) {
	if len(window) < s.longPeriod || s.shortPeriod < 1 {
		return domain.SignalHold, nil
	}

	short := talib.Sma(window, s.shortPeriod)
	long := talib.Sma(window, s.longPeriod)
	shortNow := short[len(short)-1]
	longNow := long[len(long)-1]

	switch {
	case position == domain.PositionFlat && shortNow > longNow:
		return domain.SignalBuy, nil
	case position == domain.PositionLong && shortNow < longNow:
		return domain.SignalSell, nil
	}
	return domain.SignalHold, nil
}
