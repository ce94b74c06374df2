// Package backtest drives a strategy's signals through simulated order
// execution against a portfolio ledger, bar by bar.
package backtest

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/portfolio"
)

// ErrNoData is returned when a run is started without any bars.
var ErrNoData = errors.New("backtest: no bars to run")

// Config controls one backtest run.
type Config struct {
	Symbol         string
	InitialCapital float64
	// Commission and Slippage are rates (0.001 = 0.1%). They feed the
	// default position-sizing estimate only; fills settle at the raw
	// fill price with no commission deducted.
	Commission     float64
	Slippage       float64
	RiskFreeRate   float64
	PeriodsPerYear int
}

// DefaultConfig mirrors the conventional daily-bar setup: $100k
// capital, 0.1% commission, 0.05% slippage, 252 periods per year.
func DefaultConfig(symbol string) Config {
	return Config{
		Symbol:         symbol,
		InitialCapital: 100_000,
		Commission:     0.001,
		Slippage:       0.0005,
		RiskFreeRate:   0,
		PeriodsPerYear: 252,
	}
}

// Result is everything a finished run produces. Consumers treat it as
// read-only.
type Result struct {
	Strategy    string
	Metrics     metrics.Summary
	EquityCurve []portfolio.EquityPoint
	Trades      []portfolio.Trade

	// Final ledger state.
	Cash      float64
	Positions map[string]int64
	Pending   []portfolio.Order
}

// Runner executes backtests over a bar sequence. It owns its ledger;
// each Run resets the ledger first, so re-running with identical
// inputs reproduces an identical result.
type Runner struct {
	cfg  Config
	book *portfolio.Portfolio
}

func NewRunner(cfg Config) *Runner {
	if cfg.PeriodsPerYear <= 0 {
		cfg.PeriodsPerYear = 252
	}
	return &Runner{
		cfg:  cfg,
		book: portfolio.New(cfg.InitialCapital),
	}
}

// Ledger exposes the runner's portfolio, mainly for inspection in
// tests and reporting.
func (r *Runner) Ledger() *portfolio.Portfolio { return r.book }

// Run drives one complete backtest. Per bar, in this order:
//
//  1. look up the signal for the bar's timestamp
//  2. settle pending orders against the bar's close — orders submitted
//     on a prior bar fill against today's price, giving every order a
//     one-bar execution lag and ruling out same-bar lookahead
//  3. translate the signal (if any, and not hold) into a new order
//  4. record a mark-to-market equity snapshot
//
// An error from the strategy or from order submission aborts the run
// with no partial result.
func (r *Runner) Run(bars *market.BarSet, strat Strategy) (*Result, error) {
	if bars.Len() == 0 {
		return nil, ErrNoData
	}

	signals, err := strat.GenerateSignals(bars)
	if err != nil {
		return nil, fmt.Errorf("backtest: generate signals: %w", err)
	}

	byTime := make(map[int64]Signal, len(signals))
	for _, sig := range signals {
		byTime[sig.Time.UnixNano()] = sig
	}

	hook, _ := strat.(BarHook)
	r.book.Reset()

	for i := 0; i < bars.Len(); i++ {
		bar := bars.At(i)
		if hook != nil {
			hook.OnBar(bar.Time, bar)
		}

		sig, hasSignal := byTime[bar.Time.UnixNano()]

		r.book.Process(bar.Close, bar.Time, r.cfg.Symbol)

		if hasSignal && sig.Action != Hold {
			if err := r.placeOrder(sig, bar); err != nil {
				return nil, err
			}
		}

		value := r.book.Value(map[string]float64{r.cfg.Symbol: bar.Close})
		r.book.RecordEquity(bar.Time, value)
	}

	curve := r.book.EquityCurve()
	trades := r.book.Trades()

	return &Result{
		Strategy:    strat.Name(),
		Metrics:     metrics.Summarize(curve, trades, r.cfg.RiskFreeRate, r.cfg.PeriodsPerYear),
		EquityCurve: curve,
		Trades:      trades,
		Cash:        r.book.Cash(),
		Positions:   r.book.Positions(),
		Pending:     r.book.PendingOrders(),
	}, nil
}

// placeOrder translates a non-hold signal into a ledger order. The
// order type follows which optional price the signal populated.
func (r *Runner) placeOrder(sig Signal, bar market.Bar) error {
	typ := portfolio.Market
	switch {
	case sig.LimitPrice > 0:
		typ = portfolio.Limit
	case sig.StopPrice > 0:
		typ = portfolio.Stop
	}

	var side portfolio.Side
	var quantity int64

	switch sig.Action {
	case Buy:
		side = portfolio.Buy
		quantity = sig.Quantity
		if quantity == 0 {
			quantity = r.sizeBuy(sig, bar)
		}

	case Sell:
		side = portfolio.Sell
		held := r.book.Position(r.cfg.Symbol)
		if held <= 0 {
			return nil
		}
		quantity = held
		if sig.Quantity > 0 && sig.Quantity < held {
			quantity = sig.Quantity
		}

	default:
		return nil
	}

	if quantity <= 0 {
		return nil
	}

	order, err := portfolio.NewOrder(r.cfg.Symbol, quantity, typ, side, sig.LimitPrice, sig.StopPrice)
	if err != nil {
		return err
	}
	return r.book.Submit(order)
}

// sizeBuy spends available cash at the estimated fill price, keeping a
// 5% buffer to absorb commission and slippage rounding.
func (r *Runner) sizeBuy(sig Signal, bar market.Bar) int64 {
	estimated := bar.Close
	if sig.LimitPrice > 0 {
		estimated = sig.LimitPrice
	}
	if estimated <= 0 {
		return 0
	}
	available := r.book.Cash() * 0.95
	return int64(available / (estimated * (1 + r.cfg.Commission + r.cfg.Slippage)))
}
