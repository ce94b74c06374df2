package strategies

import (
	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// Noop emits hold on every bar. Baseline for sanity-checking the
// runner: equity should stay flat at initial capital.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	return holds(bars), nil
}
