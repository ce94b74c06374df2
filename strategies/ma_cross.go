package strategies

import (
	"fmt"

	"github.com/cinar/indicator"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// MACrossover buys when the short SMA crosses above the long SMA and
// sells when it crosses below. Only crossover bars emit a signal;
// bars where the relationship is unchanged stay hold.
type MACrossover struct {
	Short int
	Long  int
}

func (s *MACrossover) Name() string { return "ma-cross" }

func (s *MACrossover) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	if s.Short <= 0 || s.Long <= 0 || s.Short >= s.Long {
		return nil, fmt.Errorf("ma-cross: need 0 < short < long, got short=%d long=%d", s.Short, s.Long)
	}
	closes := bars.Closes()
	shortMA := market.Series{Name: "short_ma", Values: indicator.Sma(s.Short, closes)}
	longMA := market.Series{Name: "long_ma", Values: indicator.Sma(s.Long, closes)}
	return crossoverSignals(bars, shortMA, longMA), nil
}

// EMACrossover is the exponential variant; recent prices weigh more,
// so it reacts faster than the simple crossover.
type EMACrossover struct {
	Short int
	Long  int
}

func (s *EMACrossover) Name() string { return "ema-cross" }

func (s *EMACrossover) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	if s.Short <= 0 || s.Long <= 0 || s.Short >= s.Long {
		return nil, fmt.Errorf("ema-cross: need 0 < short < long, got short=%d long=%d", s.Short, s.Long)
	}
	closes := bars.Closes()
	shortEMA := market.Series{Name: "short_ema", Values: indicator.Ema(s.Short, closes)}
	longEMA := market.Series{Name: "long_ema", Values: indicator.Ema(s.Long, closes)}
	return crossoverSignals(bars, shortEMA, longEMA), nil
}

// crossoverSignals emits buy/sell only where the fast/slow ordering
// changed since the previous bar.
func crossoverSignals(bars *market.BarSet, fast, slow market.Series) []backtest.Signal {
	signals := holds(bars)
	prev := backtest.Hold
	for i := 0; i < bars.Len(); i++ {
		state := backtest.Hold
		switch {
		case fast.Values[i] > slow.Values[i]:
			state = backtest.Buy
		case fast.Values[i] < slow.Values[i]:
			state = backtest.Sell
		}
		if i == 0 || state != prev {
			signals[i].Action = state
		}
		prev = state
	}
	return signals
}
