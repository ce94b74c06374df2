package portfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/internal/id"
)

// ErrInvalidOrder is returned when an order fails validation at
// submission time. Invalid orders are rejected outright, never queued.
var ErrInvalidOrder = errors.New("portfolio: invalid order")

// OrderType selects the fill rule applied while the order is pending.
type OrderType int

const (
	Market OrderType = iota
	Limit
	Stop
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "market"
	case Limit:
		return "limit"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("OrderType(%d)", int(t))
}

// Side is the direction of an order or trade.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Status tracks the order lifecycle. Orders never mutate once they
// reach Filled or Cancelled.
type Status int

const (
	Pending Status = iota
	Filled
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Filled:
		return "filled"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Order is an instruction to change a position. Created by the caller,
// owned and mutated only by the Portfolio until it fills.
type Order struct {
	ID       string
	Symbol   string
	Quantity int64
	Type     OrderType
	Side     Side

	// Optional trigger prices, 0 means unset.
	LimitPrice float64
	StopPrice  float64

	Status    Status
	FillPrice float64
	FillTime  time.Time
}

// NewOrder builds a validated pending order with a fresh ULID.
func NewOrder(symbol string, quantity int64, typ OrderType, side Side, limitPrice, stopPrice float64) (*Order, error) {
	o := &Order{
		ID:         id.New(),
		Symbol:     symbol,
		Quantity:   quantity,
		Type:       typ,
		Side:       side,
		LimitPrice: limitPrice,
		StopPrice:  stopPrice,
		Status:     Pending,
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) validate() error {
	if o.Side != Buy && o.Side != Sell {
		return fmt.Errorf("%w: direction must be buy or sell, got %v", ErrInvalidOrder, o.Side)
	}
	switch o.Type {
	case Market:
	case Limit:
		if o.LimitPrice <= 0 {
			return fmt.Errorf("%w: limit order requires a limit price", ErrInvalidOrder)
		}
	case Stop:
		if o.StopPrice <= 0 {
			return fmt.Errorf("%w: stop order requires a stop price", ErrInvalidOrder)
		}
	default:
		return fmt.Errorf("%w: unknown order type %v", ErrInvalidOrder, o.Type)
	}
	return nil
}
