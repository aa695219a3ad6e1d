// Package store holds sleep records in an in-memory SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/verte-zerg/sleeptrack/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// memoryDSN names a private in-memory database. Each connection to it sees
// its own database, so the pool is pinned to one connection.
const memoryDSN = ":memory:"

// Store is the ordered sequence of committed sleep records. Contents live
// only as long as the Store.
type Store struct {
	db *sql.DB
}

// Open creates an empty in-memory store.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close discards the store and its records.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			date TEXT NOT NULL,
			sleep_time TEXT NOT NULL,
			wake_time TEXT NOT NULL,
			duration REAL NOT NULL,
			quality INTEGER NOT NULL CHECK (quality BETWEEN 1 AND 3)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate store: %w", err)
		}
	}
	return nil
}

// Append adds a record to the end of the sequence.
func (s *Store) Append(ctx context.Context, rec model.SleepRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, date, sleep_time, wake_time, duration, quality)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Date,
		rec.SleepTime.Format(time.RFC3339Nano),
		rec.WakeTime.Format(time.RFC3339Nano),
		rec.Duration,
		int(rec.SleepQuality),
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// DeleteAt removes the record at the 0-indexed position in display order.
// Positions outside the sequence are ignored.
func (s *Store) DeleteAt(ctx context.Context, position int) error {
	if position < 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records
		 WHERE seq = (SELECT seq FROM records ORDER BY seq ASC LIMIT 1 OFFSET ?)`,
		position,
	)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", position, err)
	}
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Snapshot returns a fresh copy of the sequence in display order.
func (s *Store) Snapshot(ctx context.Context) ([]model.SleepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, sleep_time, wake_time, duration, quality
		 FROM records
		 ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	records := []model.SleepRecord{}
	for rows.Next() {
		var rec model.SleepRecord
		var sleepTime, wakeTime string
		var quality int
		if err := rows.Scan(&rec.ID, &rec.Date, &sleepTime, &wakeTime, &rec.Duration, &quality); err != nil {
			return nil, err
		}
		if rec.SleepTime, err = time.Parse(time.RFC3339Nano, sleepTime); err != nil {
			return nil, err
		}
		if rec.WakeTime, err = time.Parse(time.RFC3339Nano, wakeTime); err != nil {
			return nil, err
		}
		rec.SleepQuality = model.Quality(quality)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
