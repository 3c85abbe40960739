// Package strategy defines the Strategy interface the backtest engine drives
// and provides a Registry for managing multiple strategy implementations.
package strategy

import (
	"context"
	"sort"
)

// Strategy is a per-bar decision function. The engine calls Step once per
// simulated bar with the trailing price window (the current bar's price is
// never included) and the current position indicator (0 = flat, 1 = long).
//
// Step returns one of -1 (sell/close), 0 (hold), or 1 (buy/open). The engine
// treats an error, or any value outside that set, as a hold. Implementations
// must not mutate the window slice and must not touch engine state; they may
// keep internal state of their own across calls.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Step returns the trading signal for the current bar.
	Step(ctx context.Context, window []float64, position int) (int, error)
}

// Func adapts a plain function to the Strategy interface.
type Func struct {
	StrategyName string
	StepFunc     func(ctx context.Context, window []float64, position int) (int, error)
}

// Name returns the adapted function's name.
func (f Func) Name() string { return f.StrategyName }

// Step invokes the adapted function.
func (f Func) Step(ctx context.Context, window []float64, position int) (int, error) {
	return f.StepFunc(ctx, window, position)
}

// Registry holds a named collection of strategies for lookup and enumeration.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy to the registry, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
