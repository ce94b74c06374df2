package market

import "time"

// Bar is a single OHLCV observation. Bars are value types and never
// mutated after construction.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
