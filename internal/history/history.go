// Package history records application launches in a per-user SQLite store.
//
// History is a convenience surface (the `recent` listing); it never feeds
// the fuzzy ranking, and every failure here is absorbed as non-fatal.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	apperrors "github.com/Aman-CERP/appdex/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS launches (
    path          TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    launch_count  INTEGER NOT NULL DEFAULT 0,
    last_launched INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_launches_last ON launches(last_launched DESC);
`

// LaunchRecord is one row of launch history.
type LaunchRecord struct {
	Path         string
	Name         string
	LaunchCount  int
	LastLaunched time.Time
}

// Store persists launch history. Safe for concurrent use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}

	// WAL must be set via PRAGMA with the modernc driver.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}

	return &Store{db: db}, nil
}

// Record upserts a launch of the given bundle.
func (s *Store) Record(path, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO launches (path, name, launch_count, last_launched)
VALUES (?, ?, 1, ?)
ON CONFLICT(path) DO UPDATE SET
    name = excluded.name,
    launch_count = launch_count + 1,
    last_launched = excluded.last_launched`,
		path, name, time.Now().Unix())
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}
	return nil
}

// Recent returns up to limit records, most recently launched first.
func (s *Store) Recent(limit int) ([]LaunchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
SELECT path, name, launch_count, last_launched
FROM launches ORDER BY last_launched DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}
	defer rows.Close()

	var records []LaunchRecord
	for rows.Next() {
		var r LaunchRecord
		var ts int64
		if err := rows.Scan(&r.Path, &r.Name, &r.LaunchCount, &ts); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
		}
		r.LastLaunched = time.Unix(ts, 0)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}
	return records, nil
}

// Forget removes history for paths no longer present in the index.
func (s *Store) Forget(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM launches WHERE path = ?`, path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeHistoryStore, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close history store: %w", err)
	}
	return nil
}
