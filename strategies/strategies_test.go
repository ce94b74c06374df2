package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

var base = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func barsOf(t *testing.T, closes ...float64) *market.BarSet {
	t.Helper()
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Time: base.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	set, err := market.NewBarSet("TEST", bars)
	require.NoError(t, err)
	return set
}

func actions(signals []backtest.Signal) []backtest.Action {
	out := make([]backtest.Action, len(signals))
	for i, s := range signals {
		out[i] = s.Action
	}
	return out
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want string
	}{
		{"noop", "noop"},
		{"NONE", "noop"},
		{"threshold", "threshold"},
		{"ma-cross", "ma-cross"},
		{"MACross", "ma-cross"},
		{"ema-cross", "ema-cross"},
		{"momentum", "momentum"},
		{"rsi", "rsi"},
		{"rsi-bb", "rsi-bb"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			strat, err := ByName(tt.arg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strat.Name())
		})
	}

	_, err := ByName("does-not-exist", nil)
	assert.Error(t, err)
}

func TestByNameAppliesParams(t *testing.T) {
	t.Parallel()

	strat, err := ByName("ma-cross", Params{"short": 5, "long": 20})
	require.NoError(t, err)

	mac, ok := strat.(*MACrossover)
	require.True(t, ok)
	assert.Equal(t, 5, mac.Short)
	assert.Equal(t, 20, mac.Long)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	bars := barsOf(t, 100, 101, 102)
	signals, err := Noop{}.GenerateSignals(bars)
	require.NoError(t, err)

	require.Len(t, signals, 3)
	for i, sig := range signals {
		assert.Equal(t, backtest.Hold, sig.Action)
		assert.True(t, sig.Time.Equal(bars.At(i).Time), "signals align to bar timestamps")
	}
}

func TestThreshold(t *testing.T) {
	t.Parallel()

	bars := barsOf(t, 96, 101, 94)
	strat := &Threshold{BuyAbove: 100, SellBelow: 95}

	signals, err := strat.GenerateSignals(bars)
	require.NoError(t, err)

	assert.Equal(t, []backtest.Action{backtest.Hold, backtest.Buy, backtest.Sell}, actions(signals))
}

func TestMACrossoverSignalsOnlyOnCrossovers(t *testing.T) {
	t.Parallel()

	bars := barsOf(t, 1, 1, 1, 10, 10, 10, 1, 1)
	strat := &MACrossover{Short: 2, Long: 3}

	signals, err := strat.GenerateSignals(bars)
	require.NoError(t, err)

	want := []backtest.Action{
		backtest.Hold, backtest.Hold, backtest.Hold,
		backtest.Buy,  // short MA pulls above long MA
		backtest.Hold, // still above: no repeat signal
		backtest.Hold,
		backtest.Sell, // short MA drops below long MA
		backtest.Hold,
	}
	assert.Equal(t, want, actions(signals))
}

func TestMACrossoverValidatesWindows(t *testing.T) {
	t.Parallel()

	bars := barsOf(t, 1, 2, 3)
	for _, strat := range []backtest.Strategy{
		&MACrossover{Short: 0, Long: 10},
		&MACrossover{Short: 10, Long: 10},
		&EMACrossover{Short: 20, Long: 5},
	} {
		_, err := strat.GenerateSignals(bars)
		assert.Error(t, err)
	}
}

func TestMomentum(t *testing.T) {
	t.Parallel()

	strat := &Momentum{Period: 2, BuyThreshold: 5, SellThreshold: -5}

	signals, err := strat.GenerateSignals(barsOf(t, 100, 100, 100, 111, 100))
	require.NoError(t, err)
	assert.Equal(t, []backtest.Action{
		backtest.Hold, backtest.Hold, backtest.Hold, backtest.Buy, backtest.Hold,
	}, actions(signals))

	signals, err = strat.GenerateSignals(barsOf(t, 100, 100, 94))
	require.NoError(t, err)
	assert.Equal(t, backtest.Sell, signals[2].Action)
}

func TestRSIMomentumShape(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 0, 40)
	price := 100.0
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			price -= 2
		} else {
			price += 1
		}
		closes = append(closes, price)
	}

	strat := &RSIMomentum{Period: 14, Oversold: 30, Overbought: 70}
	signals, err := strat.GenerateSignals(barsOf(t, closes...))
	require.NoError(t, err)
	assert.Len(t, signals, 40)
	assert.Equal(t, backtest.Hold, signals[0].Action, "first bar has no previous RSI to cross from")
}

func TestRSIBollingerAlternatesEntriesAndExits(t *testing.T) {
	t.Parallel()

	// A deep dip then recovery: the strategy may only sell while in a
	// position, and may only buy while flat.
	closes := make([]float64, 0, 60)
	price := 100.0
	for i := 0; i < 60; i++ {
		switch {
		case i > 25 && i < 35:
			price -= 4
		case i >= 35:
			price += 3
		default:
			price += 0.1
		}
		closes = append(closes, price)
	}

	strat := &RSIBollinger{RSIPeriod: 14, Oversold: 40, Overbought: 70, Proximity: 1.02}
	signals, err := strat.GenerateSignals(barsOf(t, closes...))
	require.NoError(t, err)
	require.Len(t, signals, 60)

	inPosition := false
	for i, sig := range signals {
		switch sig.Action {
		case backtest.Buy:
			assert.False(t, inPosition, "double entry at bar %d", i)
			inPosition = true
		case backtest.Sell:
			assert.True(t, inPosition, "exit without entry at bar %d", i)
			inPosition = false
		}
	}
}
