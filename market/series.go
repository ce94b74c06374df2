package market

// Series is a named numeric series aligned to a BarSet index. Derived
// values (moving averages, oscillators) are carried in a Series by the
// component that computed them instead of being written back into the
// bar data.
type Series struct {
	Name   string
	Values []float64
}

// At returns the value at index i, or def when the index is out of
// range. Useful for warmup periods where an indicator has no value yet.
func (s Series) At(i int, def float64) float64 {
	if i < 0 || i >= len(s.Values) {
		return def
	}
	return s.Values[i]
}
