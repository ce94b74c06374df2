package data

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/backtester/market"
)

// Store is a SQLite-backed historical candle store. It feeds bars into
// a run; results are never written back.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveBars upserts bars for a symbol in one transaction.
func (s *Store) SaveBars(symbol string, bars []market.Bar) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bars
		(symbol, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.UTC().Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadBars reads bars for a symbol within [from, to]. Zero bounds mean
// unbounded on that side.
func (s *Store) LoadBars(symbol string, from, to time.Time) (*market.BarSet, error) {
	lo := int64(0)
	if !from.IsZero() {
		lo = from.UTC().Unix()
	}
	hi := int64(1<<62 - 1)
	if !to.IsZero() {
		hi = to.UTC().Unix()
	}

	rows, err := s.db.Query(`
		SELECT time, open, high, low, close, volume
		FROM bars
		WHERE symbol = ? AND time >= ? AND time <= ?
		ORDER BY time ASC`,
		symbol, lo, hi)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []market.Bar
	for rows.Next() {
		var unix int64
		var b market.Bar
		if err := rows.Scan(&unix, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		b.Time = time.Unix(unix, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return market.NewBarSet(symbol, bars)
}

func (s *Store) Close() error {
	return s.db.Close()
}
