package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "bars.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testBars(n int) []market.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Bar, n)
	for i := range out {
		c := 100 + float64(i)
		out[i] = market.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: float64(1000 * (i + 1)),
		}
	}
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	bars := testBars(5)

	require.NoError(t, store.SaveBars("AAPL", bars))

	set, err := store.LoadBars("AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 5, set.Len())
	assert.Equal(t, bars[0].Close, set.At(0).Close)
	assert.Equal(t, bars[4].Volume, set.At(4).Volume)
	assert.True(t, set.At(2).Time.Equal(bars[2].Time))
}

func TestStoreRangeQuery(t *testing.T) {
	store := openTestStore(t)
	bars := testBars(10)
	require.NoError(t, store.SaveBars("AAPL", bars))

	set, err := store.LoadBars("AAPL", bars[2].Time, bars[5].Time)
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())
	assert.True(t, set.First().Time.Equal(bars[2].Time))
	assert.True(t, set.Last().Time.Equal(bars[5].Time))
}

func TestStoreSymbolsAreIsolated(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveBars("AAPL", testBars(3)))
	require.NoError(t, store.SaveBars("MSFT", testBars(5)))

	set, err := store.LoadBars("AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	empty, err := store.LoadBars("GOOG", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestStoreUpsert(t *testing.T) {
	store := openTestStore(t)
	bars := testBars(3)
	require.NoError(t, store.SaveBars("AAPL", bars))

	// Saving again with a revised close replaces, not duplicates.
	bars[1].Close = 999
	require.NoError(t, store.SaveBars("AAPL", bars))

	set, err := store.LoadBars("AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	assert.Equal(t, 999.0, set.At(1).Close)
}
