// Package strategies provides signal generators for the backtest
// runner. Strategies are plain values constructed by the caller and
// handed to the runner directly; there is no process-wide registry.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// Params carries optional numeric strategy parameters by name.
// Missing keys fall back to each strategy's defaults.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// ByName builds a strategy from its CLI name. This is a convenience
// for front-ends; library callers construct strategy values directly.
func ByName(name string, params Params) (backtest.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "threshold":
		return &Threshold{
			BuyAbove:  params.get("buy_above", 100),
			SellBelow: params.get("sell_below", 95),
		}, nil

	case "ma-cross", "macross":
		return &MACrossover{
			Short: int(params.get("short", 50)),
			Long:  int(params.get("long", 200)),
		}, nil

	case "ema-cross", "emacross":
		return &EMACrossover{
			Short: int(params.get("short", 12)),
			Long:  int(params.get("long", 26)),
		}, nil

	case "momentum":
		return &Momentum{
			Period:        int(params.get("period", 20)),
			BuyThreshold:  params.get("buy_threshold", 5),
			SellThreshold: params.get("sell_threshold", -5),
		}, nil

	case "rsi":
		return &RSIMomentum{
			Period:     int(params.get("period", 14)),
			Oversold:   params.get("oversold", 30),
			Overbought: params.get("overbought", 70),
		}, nil

	case "rsi-bb", "rsibb":
		return &RSIBollinger{
			RSIPeriod:  int(params.get("period", 14)),
			Oversold:   params.get("oversold", 40),
			Overbought: params.get("overbought", 70),
			Proximity:  params.get("proximity", 1.02),
		}, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, threshold, ma-cross, ema-cross, momentum, rsi, rsi-bb)", name)
	}
}

// holds returns one hold signal per bar, timestamps aligned to the
// bar set. Strategies overwrite the bars they act on.
func holds(bars *market.BarSet) []backtest.Signal {
	out := make([]backtest.Signal, bars.Len())
	for i := range out {
		out[i] = backtest.Signal{Time: bars.At(i).Time, Action: backtest.Hold}
	}
	return out
}
