// Package cache persists the index snapshot as a single JSON document under
// the per-user support path.
//
// Loading fails soft: a missing, unreadable, or malformed document is
// reported as absent, never as a fatal error. The in-memory index stays
// authoritative when a save fails.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	apperrors "github.com/Aman-CERP/appdex/internal/errors"
	"github.com/Aman-CERP/appdex/internal/scanner"
)

// Snapshot is the persisted representation of the index at a point in time.
// The document carries no schema version; a structurally invalid document is
// treated as absent.
type Snapshot struct {
	Apps        []Record  `json:"apps"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Record is one persisted application entry.
type Record struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"modificationDate"`
}

// NewSnapshot builds a snapshot from scanned apps, stamped now.
func NewSnapshot(apps []scanner.App) Snapshot {
	records := make([]Record, 0, len(apps))
	for _, a := range apps {
		records = append(records, Record{
			Name:    a.Name,
			Path:    a.Path,
			ModTime: a.ModTime,
		})
	}
	return Snapshot{Apps: records, LastUpdated: time.Now()}
}

// Items converts the snapshot records back to scanner records.
func (s Snapshot) Items() []scanner.App {
	apps := make([]scanner.App, 0, len(s.Apps))
	for _, r := range s.Apps {
		apps = append(apps, scanner.App{
			Name:    r.Name,
			Path:    r.Path,
			ModTime: r.ModTime,
		})
	}
	return apps
}

// Store reads and writes the cache document.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore creates a store for the given cache file path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted snapshot. The boolean reports presence: any read
// or decode failure is treated identically to "no cache present".
func (s *Store) Load() (Snapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache unreadable, treating as absent",
				slog.String("path", s.path),
				slog.String("error", err.Error()))
		}
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("cache malformed, treating as absent",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return Snapshot{}, false
	}

	return snap, true
}

// Save writes the snapshot atomically (temp file + rename) under a file
// lock. The returned error is non-fatal for callers: in-memory state remains
// correct, only durability is degraded until the next successful save.
func (s *Store) Save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCacheWrite, err)
	}

	if err := s.lock.Lock(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCacheWrite, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCacheWrite, err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCacheWrite, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.ErrCodeCacheWrite, err)
	}

	return nil
}

// Delete removes the persisted cache. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.ErrCodeCacheDelete, err)
	}
	return nil
}
