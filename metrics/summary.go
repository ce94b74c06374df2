package metrics

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backtester/portfolio"
)

// Summary bundles every metric computed over one finished run.
type Summary struct {
	TotalReturnPct float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	VolatilityPct  float64
	WinRatePct     float64
	ProfitFactor   float64
	TotalTrades    int
	InitialValue   float64
	FinalValue     float64
}

// Summarize computes all metrics in one pass over the inputs.
func Summarize(curve []portfolio.EquityPoint, trades []portfolio.Trade, riskFreeRate float64, periodsPerYear int) Summary {
	s := Summary{
		TotalReturnPct: TotalReturn(curve),
		SharpeRatio:    SharpeRatio(curve, riskFreeRate, periodsPerYear),
		MaxDrawdownPct: MaxDrawdown(curve),
		VolatilityPct:  Volatility(curve, periodsPerYear),
		WinRatePct:     WinRate(trades),
		ProfitFactor:   ProfitFactor(trades),
		TotalTrades:    TotalTrades(trades),
	}
	if len(curve) > 0 {
		s.InitialValue = curve[0].Value
		s.FinalValue = curve[len(curve)-1].Value
	}
	return s
}

// String renders the summary as a fixed-width report table.
func (s Summary) String() string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "PERFORMANCE METRICS\n")
	fmt.Fprintf(&b, "%s\n", rule)
	row := func(name string, format string, v interface{}) {
		fmt.Fprintf(&b, "%s %s\n", name+strings.Repeat(".", 30-len(name)), fmt.Sprintf(format, v))
	}
	row("Total Return (%)", "%15.2f", s.TotalReturnPct)
	row("Sharpe Ratio", "%15.2f", s.SharpeRatio)
	row("Max Drawdown (%)", "%15.2f", s.MaxDrawdownPct)
	row("Volatility (%)", "%15.2f", s.VolatilityPct)
	row("Win Rate (%)", "%15.2f", s.WinRatePct)
	row("Profit Factor", "%15.2f", s.ProfitFactor)
	row("Total Trades", "%15d", s.TotalTrades)
	row("Initial Value", "%15.2f", s.InitialValue)
	row("Final Value", "%15.2f", s.FinalValue)
	fmt.Fprintf(&b, "%s\n", rule)

	return b.String()
}
