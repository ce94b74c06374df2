// Package data materializes historical bar sequences from local
// sources (CSV files, a SQLite candle store) before a run starts.
// Nothing here is touched by the simulation loop itself.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/backtester/market"
)

// LoadCSV reads bars from a CSV file with columns
// time,open,high,low,close,volume. A header row is detected and
// skipped. Timestamps may be RFC3339 or a plain date (2006-01-02).
func LoadCSV(path, symbol string) (*market.BarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []market.Bar
	first := true

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		bar, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("data: %s: %w", path, err)
		}
		bars = append(bars, bar)
	}

	return market.NewBarSet(symbol, bars)
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	head := strings.ToLower(strings.TrimSpace(row[0]))
	return head == "time" || head == "date" || head == "timestamp"
}

func parseBarRow(row []string) (market.Bar, error) {
	if len(row) < 5 {
		return market.Bar{}, fmt.Errorf("bad row (need time,open,high,low,close[,volume]): %v", row)
	}

	t, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return market.Bar{}, err
	}

	vals := make([]float64, 0, 5)
	for _, cell := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("bad number %q: %w", cell, err)
		}
		vals = append(vals, v)
	}

	bar := market.Bar{
		Time:  t,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(vals) > 4 {
		bar.Volume = vals[4]
	}
	return bar, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}
