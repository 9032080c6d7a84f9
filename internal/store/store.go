// Package store keeps a small local archive of pipeline runs. Only
// per-run aggregate numbers are stored, never individual plays.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// RunSummary is one recorded pipeline run.
type RunSummary struct {
	ID           int64
	FinishedAt   time.Time
	Days         uint
	TotalPlays   int
	UniqueTracks int
	TopTrack     string
	Published    bool
}

// Store persists run summaries in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the run archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: setting pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			finished_at INTEGER NOT NULL,
			days INTEGER NOT NULL,
			total_plays INTEGER NOT NULL,
			unique_tracks INTEGER NOT NULL,
			top_track TEXT NOT NULL,
			published BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun appends one run summary to the archive.
func (s *Store) RecordRun(ctx context.Context, run RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (finished_at, days, total_plays, unique_tracks, top_track, published)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.FinishedAt.Unix(),
		run.Days,
		run.TotalPlays,
		run.UniqueTracks,
		run.TopTrack,
		run.Published,
	)
	if err != nil {
		return fmt.Errorf("store: recording run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, finished_at, days, total_plays, unique_tracks, top_track, published
		FROM runs
		ORDER BY finished_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var finishedAt int64
		if err := rows.Scan(&run.ID, &finishedAt, &run.Days, &run.TotalPlays,
			&run.UniqueTracks, &run.TopTrack, &run.Published); err != nil {
			return nil, fmt.Errorf("store: scanning run: %w", err)
		}
		run.FinishedAt = time.Unix(finishedAt, 0).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
