// Package scanner discovers application bundles in a fixed set of
// directories.
package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scanner enumerates immediate children of each search directory and
// produces a record for every entry carrying the bundle suffix.
type Scanner struct {
	logger *slog.Logger
}

// New creates a new Scanner. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Scan walks the given directories in order and returns the discovered
// bundles. Directories that cannot be listed are skipped silently: optional
// search locations (e.g., the per-user directory) may legitimately not
// exist. Output order is unspecified; callers must not depend on it.
func (s *Scanner) Scan(ctx context.Context, dirs []string) []App {
	var apps []App

	for _, dir := range dirs {
		select {
		case <-ctx.Done():
			return apps
		default:
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing or unreadable directories are expected, not errors.
			s.logger.Debug("skipping unreadable search directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, BundleSuffix) {
				continue
			}

			modTime := time.Now()
			if info, err := entry.Info(); err == nil {
				modTime = info.ModTime()
			}

			apps = append(apps, App{
				Name:    strings.TrimSuffix(name, BundleSuffix),
				Path:    filepath.Join(dir, name),
				ModTime: modTime,
			})
		}
	}

	s.logger.Debug("scan complete",
		slog.Int("dirs", len(dirs)),
		slog.Int("apps", len(apps)))

	return apps
}
