package backtest

import (
	"time"

	"github.com/rustyeddy/backtester/market"
)

// Action is the direction of a trading signal.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// Signal is a strategy's intent for one bar. The optional fields use
// 0 to mean unset: a positive LimitPrice makes the resulting order a
// limit order, a positive StopPrice a stop order, and a positive
// Quantity overrides the runner's position sizing.
type Signal struct {
	Time       time.Time
	Action     Action
	LimitPrice float64
	StopPrice  float64
	Quantity   int64
}

// Strategy turns a bar history into a parallel signal sequence. The
// runner depends on nothing else from a strategy; implementations are
// constructed and owned by the caller, there is no global registry.
//
// The returned signals are matched to bars by timestamp. Bars with no
// matching signal generate no order but still settle pending orders
// and still record equity.
type Strategy interface {
	Name() string
	GenerateSignals(bars *market.BarSet) ([]Signal, error)
}

// BarHook is an optional extension a Strategy may implement to observe
// each bar as the runner visits it. Strategies that don't implement it
// get no-op behavior.
type BarHook interface {
	OnBar(t time.Time, bar market.Bar)
}
