package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func bar(day int, close float64) Bar {
	return Bar{Time: base.AddDate(0, 0, day), Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 100}
}

func TestNewBarSet(t *testing.T) {
	t.Parallel()

	set, err := NewBarSet("AAPL", []Bar{bar(0, 100), bar(1, 101), bar(2, 99)})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", set.Symbol)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 100.0, set.First().Close)
	assert.Equal(t, 99.0, set.Last().Close)
	assert.Equal(t, 101.0, set.At(1).Close)

	i, ok := set.Index(base.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = set.Index(base.AddDate(0, 0, 9))
	assert.False(t, ok)
}

func TestNewBarSetRejectsDisorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bars []Bar
	}{
		{"duplicate timestamp", []Bar{bar(0, 100), bar(0, 101)}},
		{"out of order", []Bar{bar(1, 100), bar(0, 101)}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewBarSet("AAPL", tt.bars)
			assert.Error(t, err)
		})
	}
}

func TestBarSetCopies(t *testing.T) {
	t.Parallel()

	src := []Bar{bar(0, 100), bar(1, 101)}
	set, err := NewBarSet("AAPL", src)
	require.NoError(t, err)

	// Mutating the input or any accessor result must not leak into the set.
	src[0].Close = -1
	assert.Equal(t, 100.0, set.At(0).Close)

	closes := set.Closes()
	closes[1] = -1
	assert.Equal(t, 101.0, set.At(1).Close)

	copied := set.Bars()
	copied[0].Close = -1
	assert.Equal(t, 100.0, set.At(0).Close)
}

func TestEmptyBarSet(t *testing.T) {
	t.Parallel()

	set, err := NewBarSet("AAPL", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	var nilSet *BarSet
	assert.Equal(t, 0, nilSet.Len())
}

func TestSeriesAt(t *testing.T) {
	t.Parallel()

	s := Series{Name: "sma", Values: []float64{1, 2, 3}}
	assert.Equal(t, 2.0, s.At(1, -1))
	assert.Equal(t, -1.0, s.At(-1, -1))
	assert.Equal(t, -1.0, s.At(3, -1))
}
