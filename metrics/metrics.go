// Package metrics computes performance statistics over a finished
// equity curve and trade history. Every function is pure: identical
// inputs yield identical outputs and inputs are never mutated.
package metrics

import (
	"math"

	"github.com/rustyeddy/backtester/portfolio"
)

// Returns is the per-step percentage change of equity values. The
// first element is defined as 0 rather than undefined.
func Returns(curve []portfolio.EquityPoint) []float64 {
	if len(curve) == 0 {
		return nil
	}
	out := make([]float64, len(curve))
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Value
		if prev != 0 {
			out[i] = (curve[i].Value - prev) / prev
		}
	}
	return out
}

// TotalReturn is (final/initial - 1) * 100.
func TotalReturn(curve []portfolio.EquityPoint) float64 {
	if len(curve) == 0 || curve[0].Value == 0 {
		return 0
	}
	first := curve[0].Value
	last := curve[len(curve)-1].Value
	return (last - first) / first * 100
}

// SharpeRatio annualizes mean excess return over return volatility.
// A flat or single-point curve has zero return deviation and yields
// exactly 0, never NaN.
func SharpeRatio(curve []portfolio.EquityPoint, riskFreeRate float64, periodsPerYear int) float64 {
	returns := Returns(curve)
	sd := stdev(returns)
	if sd == 0 {
		return 0
	}
	excess := riskFreeRate / float64(periodsPerYear)
	return math.Sqrt(float64(periodsPerYear)) * (mean(returns) - excess) / sd
}

// MaxDrawdown is the deepest decline from the running equity peak, as
// a percentage (0 or negative). A curve that never falls below its
// running peak yields 0.
func MaxDrawdown(curve []portfolio.EquityPoint) float64 {
	worst := 0.0
	runningMax := math.Inf(-1)
	for _, pt := range curve {
		if pt.Value > runningMax {
			runningMax = pt.Value
		}
		if runningMax > 0 {
			dd := (pt.Value - runningMax) / runningMax * 100
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// Volatility is the annualized standard deviation of returns, as a
// percentage.
func Volatility(curve []portfolio.EquityPoint, periodsPerYear int) float64 {
	return stdev(Returns(curve)) * math.Sqrt(float64(periodsPerYear)) * 100
}

// RoundTrip is a matched buy/sell pair used for win-rate and
// profit-factor accounting.
type RoundTrip struct {
	Buy  portfolio.Trade
	Sell portfolio.Trade
	PnL  float64
}

// RoundTrips pairs every sell with the most recent buy that has an
// earlier timestamp. Consumed buy volume is deliberately not removed
// from later matching: multiple sells can pair against the same buy.
// Changing this would break comparability with historical results.
func RoundTrips(trades []portfolio.Trade) []RoundTrip {
	var buys []portfolio.Trade
	var out []RoundTrip

	for _, t := range trades {
		if t.Side == portfolio.Buy {
			buys = append(buys, t)
		}
	}
	for _, t := range trades {
		if t.Side != portfolio.Sell {
			continue
		}
		var match *portfolio.Trade
		for i := range buys {
			if buys[i].Time.Before(t.Time) {
				match = &buys[i]
			}
		}
		if match == nil {
			continue
		}
		out = append(out, RoundTrip{
			Buy:  *match,
			Sell: t,
			PnL:  (t.Price - match.Price) * float64(t.Quantity),
		})
	}
	return out
}

// WinRate is the percentage of round trips with positive P&L. No
// round trips yields 0.
func WinRate(trades []portfolio.Trade) float64 {
	trips := RoundTrips(trades)
	if len(trips) == 0 {
		return 0
	}
	wins := 0
	for _, rt := range trips {
		if rt.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trips)) * 100
}

// ProfitFactor is gross profit over gross loss. It returns 0 whenever
// gross loss is 0, which conflates "no losing trades" with "no trades
// at all"; callers wanting to tell them apart should also look at
// TotalTrades.
func ProfitFactor(trades []portfolio.Trade) float64 {
	grossProfit := 0.0
	grossLoss := 0.0
	for _, rt := range RoundTrips(trades) {
		if rt.PnL > 0 {
			grossProfit += rt.PnL
		} else {
			grossLoss += -rt.PnL
		}
	}
	if grossLoss == 0 {
		return 0
	}
	return grossProfit / grossLoss
}

// TotalTrades counts round trips as half the number of fills. This
// holds because the ledger trades a single direction at a time per
// symbol, so fills strictly alternate buy/sell.
func TotalTrades(trades []portfolio.Trade) int {
	return len(trades) / 2
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdev is the sample (n-1) standard deviation; fewer than two values
// yields 0.
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
