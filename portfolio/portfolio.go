package portfolio

import (
	"time"
)

// Trade is an immutable record appended when an order fills.
type Trade struct {
	Time     time.Time
	Symbol   string
	Side     Side
	Quantity int64
	Price    float64
	Value    float64
}

// EquityPoint marks total portfolio value at one point in time.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Portfolio is the order and position ledger: it owns cash, positions,
// pending orders, trade history and the equity curve, and is the only
// component that mutates financial state. A Portfolio is exclusively
// owned by a single backtest run at a time; it does no locking.
type Portfolio struct {
	initialCapital float64

	cash      float64
	positions map[string]int64
	orders    []*Order
	pending   []*Order
	trades    []Trade
	equity    []EquityPoint
}

func New(initialCapital float64) *Portfolio {
	return &Portfolio{
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]int64),
	}
}

func (p *Portfolio) InitialCapital() float64 { return p.initialCapital }
func (p *Portfolio) Cash() float64           { return p.cash }

// Position returns the held quantity for a symbol, 0 when none.
func (p *Portfolio) Position(symbol string) int64 { return p.positions[symbol] }

// Submit validates the order and enqueues it pending. Orders become
// eligible for fill on the next Process call, never immediately.
func (p *Portfolio) Submit(o *Order) error {
	if err := o.validate(); err != nil {
		return err
	}
	p.orders = append(p.orders, o)
	if o.Status == Pending {
		p.pending = append(p.pending, o)
	}
	return nil
}

// Process evaluates every pending order on symbol against the current
// price, in original submission order. Eligible orders settle; orders
// that cannot settle (insufficient cash, no shares to sell) stay
// pending and are retried on the next call with the new price.
func (p *Portfolio) Process(currentPrice float64, timestamp time.Time, symbol string) {
	still := p.pending[:0]
	for _, o := range p.pending {
		if o.Symbol != symbol {
			still = append(still, o)
			continue
		}
		fillPrice, eligible := fillPriceFor(o, currentPrice)
		if !eligible || !p.settle(o, fillPrice, timestamp) {
			still = append(still, o)
		}
	}
	p.pending = still
}

// fillPriceFor applies the fill rules:
//   - market fills at the current price
//   - limit buy fills at the limit price when price <= limit
//   - limit sell fills at the limit price when price >= limit
//   - stop buy (breakout entry) fills at the current price when price >= stop
//   - stop sell (protective stop) fills at the current price when price <= stop
func fillPriceFor(o *Order, price float64) (float64, bool) {
	switch o.Type {
	case Market:
		return price, true
	case Limit:
		if o.Side == Buy && price <= o.LimitPrice {
			return o.LimitPrice, true
		}
		if o.Side == Sell && price >= o.LimitPrice {
			return o.LimitPrice, true
		}
	case Stop:
		if o.Side == Buy && price >= o.StopPrice {
			return price, true
		}
		if o.Side == Sell && price <= o.StopPrice {
			return price, true
		}
	}
	return 0, false
}

// settle attempts to execute an eligible order. Returns false when the
// fill cannot be honored, leaving the order untouched.
func (p *Portfolio) settle(o *Order, fillPrice float64, timestamp time.Time) bool {
	quantity := o.Quantity

	switch o.Side {
	case Buy:
		cost := fillPrice * float64(quantity)
		if cost > p.cash {
			return false
		}
		p.cash -= cost
		p.positions[o.Symbol] += quantity

	case Sell:
		held := p.positions[o.Symbol]
		if held <= 0 {
			return false
		}
		// Oversized sells are clamped to the held position.
		if quantity > held {
			quantity = held
		}
		p.cash += fillPrice * float64(quantity)
		p.positions[o.Symbol] -= quantity
		if p.positions[o.Symbol] == 0 {
			delete(p.positions, o.Symbol)
		}
	}

	o.Quantity = quantity
	o.Status = Filled
	o.FillPrice = fillPrice
	o.FillTime = timestamp

	p.trades = append(p.trades, Trade{
		Time:     timestamp,
		Symbol:   o.Symbol,
		Side:     o.Side,
		Quantity: quantity,
		Price:    fillPrice,
		Value:    fillPrice * float64(quantity),
	})
	return true
}

// Value recomputes total portfolio value: cash plus every position
// marked at the supplied price. The map only needs entries for symbols
// currently held; missing symbols mark at 0.
func (p *Portfolio) Value(prices map[string]float64) float64 {
	total := p.cash
	for symbol, quantity := range p.positions {
		total += float64(quantity) * prices[symbol]
	}
	return total
}

// RecordEquity appends a snapshot. The caller supplies the
// mark-to-market value; nothing is recomputed here.
func (p *Portfolio) RecordEquity(timestamp time.Time, value float64) {
	p.equity = append(p.equity, EquityPoint{Time: timestamp, Value: value})
}

// Reset restores the initial cash balance and clears positions,
// orders, trades and the equity curve, so the same Portfolio can drive
// repeated runs.
func (p *Portfolio) Reset() {
	p.cash = p.initialCapital
	p.positions = make(map[string]int64)
	p.orders = nil
	p.pending = nil
	p.trades = nil
	p.equity = nil
}

// Trades returns a copy of the trade history.
func (p *Portfolio) Trades() []Trade {
	out := make([]Trade, len(p.trades))
	copy(out, p.trades)
	return out
}

// EquityCurve returns a copy of the recorded equity snapshots.
func (p *Portfolio) EquityCurve() []EquityPoint {
	out := make([]EquityPoint, len(p.equity))
	copy(out, p.equity)
	return out
}

// PendingOrders returns copies of the orders still waiting to fill.
func (p *Portfolio) PendingOrders() []Order {
	out := make([]Order, 0, len(p.pending))
	for _, o := range p.pending {
		out = append(out, *o)
	}
	return out
}

// Positions returns a copy of the symbol -> quantity map.
func (p *Portfolio) Positions() map[string]int64 {
	out := make(map[string]int64, len(p.positions))
	for symbol, quantity := range p.positions {
		out[symbol] = quantity
	}
	return out
}
