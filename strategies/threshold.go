package strategies

import (
	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// Threshold buys when the close is above BuyAbove and sells when it is
// below SellBelow.
type Threshold struct {
	BuyAbove  float64
	SellBelow float64
}

func (s *Threshold) Name() string { return "threshold" }

func (s *Threshold) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	signals := holds(bars)
	for i := 0; i < bars.Len(); i++ {
		close := bars.At(i).Close
		switch {
		case close > s.BuyAbove:
			signals[i].Action = backtest.Buy
		case close < s.SellBelow:
			signals[i].Action = backtest.Sell
		}
	}
	return signals, nil
}
