// Package sqlite stores daily statistics in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/mood-journal/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "stats.sqlite"

const schema = `
	CREATE TABLE IF NOT EXISTS daily_stats (
		day                 TEXT PRIMARY KEY,
		focus_seconds       INTEGER NOT NULL DEFAULT 0,
		rest_seconds        INTEGER NOT NULL DEFAULT 0,
		meditation_seconds  INTEGER NOT NULL DEFAULT 0,
		driving_distance_km REAL    NOT NULL DEFAULT 0
	);
`

// Store provides read/write access to the daily_stats table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Pass ":memory:" for a
// throwaway database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = "file:" + path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every stored day.
func (s *Store) Load(ctx context.Context) (map[string]model.DailyStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, focus_seconds, rest_seconds, meditation_seconds, driving_distance_km
		FROM daily_stats
	`)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	days := map[string]model.DailyStats{}
	for rows.Next() {
		var day string
		var st model.DailyStats
		if err := rows.Scan(&day, &st.FocusSeconds, &st.RestSeconds,
			&st.MeditationSeconds, &st.DrivingDistanceKm); err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		days[day] = st
	}
	return days, rows.Err()
}

// Save replaces the table contents with days in one transaction.
func (s *Store) Save(ctx context.Context, days map[string]model.DailyStats) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM daily_stats`); err != nil {
		return fmt.Errorf("clear daily stats: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_stats (day, focus_seconds, rest_seconds, meditation_seconds, driving_distance_km)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for day, st := range days {
		if _, err = stmt.ExecContext(ctx, day, st.FocusSeconds, st.RestSeconds,
			st.MeditationSeconds, st.DrivingDistanceKm); err != nil {
			return fmt.Errorf("insert daily stats %s: %w", day, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
