package strategies

import (
	"fmt"

	"github.com/cinar/indicator"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// RSIBollinger is a mean-reversion strategy: enter when price sits on
// the lower Bollinger band with RSI confirming oversold, exit when
// price reverts to the middle band or RSI turns overbought.
//
// The Bollinger window is the library's standard 20 periods.
type RSIBollinger struct {
	RSIPeriod  int
	Oversold   float64
	Overbought float64
	// Proximity scales the lower band to decide "at the band":
	// 1.0 requires touching it, 1.02 allows price within 2% above.
	Proximity float64
}

func (s *RSIBollinger) Name() string { return "rsi-bb" }

const bollingerPeriod = 20

func (s *RSIBollinger) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	if s.RSIPeriod <= 0 {
		return nil, fmt.Errorf("rsi-bb: rsi period must be positive, got %d", s.RSIPeriod)
	}
	proximity := s.Proximity
	if proximity == 0 {
		proximity = 1.0
	}

	closes := bars.Closes()
	_, rsi := indicator.RsiPeriod(s.RSIPeriod, closes)
	middle, _, lower := indicator.BollingerBands(closes)

	signals := holds(bars)
	inPosition := false

	for i := bollingerPeriod; i < bars.Len(); i++ {
		close := closes[i]
		switch {
		case !inPosition && close <= lower[i]*proximity && rsi[i] < s.Oversold:
			signals[i].Action = backtest.Buy
			inPosition = true
		case inPosition && (close >= middle[i] || rsi[i] > s.Overbought):
			signals[i].Action = backtest.Sell
			inPosition = false
		}
	}
	return signals, nil
}
