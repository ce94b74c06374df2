package strategies

import (
	"fmt"

	"github.com/cinar/indicator"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

// Momentum signals on rate of change: buy while ROC is above
// BuyThreshold, sell while it is below SellThreshold. Thresholds are
// percentages.
type Momentum struct {
	Period        int
	BuyThreshold  float64
	SellThreshold float64
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	if s.Period <= 0 {
		return nil, fmt.Errorf("momentum: period must be positive, got %d", s.Period)
	}
	closes := bars.Closes()
	signals := holds(bars)
	for i := s.Period; i < len(closes); i++ {
		base := closes[i-s.Period]
		if base == 0 {
			continue
		}
		roc := (closes[i] - base) / base * 100
		switch {
		case roc > s.BuyThreshold:
			signals[i].Action = backtest.Buy
		case roc < s.SellThreshold:
			signals[i].Action = backtest.Sell
		}
	}
	return signals, nil
}

// RSIMomentum buys when RSI crosses up through the oversold level and
// sells when it crosses up through the overbought level.
type RSIMomentum struct {
	Period     int
	Oversold   float64
	Overbought float64
}

func (s *RSIMomentum) Name() string { return "rsi" }

func (s *RSIMomentum) GenerateSignals(bars *market.BarSet) ([]backtest.Signal, error) {
	if s.Period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", s.Period)
	}
	_, rsi := indicator.RsiPeriod(s.Period, bars.Closes())
	series := market.Series{Name: "rsi", Values: rsi}

	signals := holds(bars)
	for i := 1; i < bars.Len(); i++ {
		cur := series.Values[i]
		prev := series.Values[i-1]
		switch {
		case cur > s.Oversold && prev <= s.Oversold:
			signals[i].Action = backtest.Buy
		case cur > s.Overbought && prev <= s.Overbought:
			signals[i].Action = backtest.Sell
		}
	}
	return signals, nil
}
