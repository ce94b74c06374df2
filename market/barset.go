package market

import (
	"fmt"
	"time"
)

// BarSet is an indexed arena of bars for a single symbol, sorted by
// strictly increasing timestamp. Once built it is read-only; derived
// indicator values live in separate Series owned by whoever computes
// them, never written back into the bars.
type BarSet struct {
	Symbol string

	bars   []Bar
	byTime map[int64]int
}

// NewBarSet copies bars into a frozen set. Timestamps must be strictly
// increasing; duplicates and out-of-order bars are rejected.
func NewBarSet(symbol string, bars []Bar) (*BarSet, error) {
	bs := &BarSet{
		Symbol: symbol,
		bars:   make([]Bar, len(bars)),
		byTime: make(map[int64]int, len(bars)),
	}
	copy(bs.bars, bars)

	for i, b := range bs.bars {
		if i > 0 && !b.Time.After(bs.bars[i-1].Time) {
			return nil, fmt.Errorf("market: bar %d (%s) not after bar %d (%s)",
				i, b.Time.Format(time.RFC3339), i-1, bs.bars[i-1].Time.Format(time.RFC3339))
		}
		bs.byTime[b.Time.UnixNano()] = i
	}
	return bs, nil
}

func (bs *BarSet) Len() int {
	if bs == nil {
		return 0
	}
	return len(bs.bars)
}

// At returns the bar at index i. Panics on out-of-range, same as a
// slice access.
func (bs *BarSet) At(i int) Bar { return bs.bars[i] }

// Index returns the position of the bar with the given timestamp.
func (bs *BarSet) Index(t time.Time) (int, bool) {
	i, ok := bs.byTime[t.UnixNano()]
	return i, ok
}

// First and Last panic on an empty set, mirroring At.
func (bs *BarSet) First() Bar { return bs.bars[0] }
func (bs *BarSet) Last() Bar  { return bs.bars[len(bs.bars)-1] }

// Bars returns a copy of the underlying bars.
func (bs *BarSet) Bars() []Bar {
	out := make([]Bar, len(bs.bars))
	copy(out, bs.bars)
	return out
}

// Closes returns a fresh slice of closing prices, one per bar. The
// caller owns the slice.
func (bs *BarSet) Closes() []float64 {
	out := make([]float64, len(bs.bars))
	for i, b := range bs.bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns a fresh slice of volumes, one per bar.
func (bs *BarSet) Volumes() []float64 {
	out := make([]float64, len(bs.bars))
	for i, b := range bs.bars {
		out[i] = b.Volume
	}
	return out
}
