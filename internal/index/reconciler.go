package index

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/singleflight"

	"github.com/Aman-CERP/appdex/internal/cache"
	apperrors "github.com/Aman-CERP/appdex/internal/errors"
	"github.com/Aman-CERP/appdex/internal/scanner"
)

// Reconciler keeps the Index converged with the filesystem with minimal
// churn. Concurrent reconcile requests collapse into a single pass.
type Reconciler struct {
	index    *Index
	scan     *scanner.Scanner
	store    *cache.Store
	dirs     []string
	reporter apperrors.Reporter
	logger   *slog.Logger
	group    singleflight.Group
}

// NewReconciler wires a reconciler to its collaborators.
func NewReconciler(ix *Index, scan *scanner.Scanner, store *cache.Store, dirs []string, reporter apperrors.Reporter, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = apperrors.NewLogReporter(logger)
	}
	return &Reconciler{
		index:    ix,
		scan:     scan,
		store:    store,
		dirs:     dirs,
		reporter: reporter,
		logger:   logger,
	}
}

// Reconcile runs one single-pass convergence: stat each known entry, scan
// the search directories, compute the add/remove delta, apply it, and
// persist the scanned set. When the delta is empty nothing is mutated and
// nothing is written.
//
// The scanned set, not the post-diff index, is what gets persisted: it is
// ground truth, so entries dropped because they were transiently unreachable
// are not permanently lost if a later scan disagrees.
func (r *Reconciler) Reconcile(ctx context.Context) (bool, error) {
	changed, err, _ := r.group.Do("reconcile", func() (any, error) {
		return r.reconcile(ctx), nil
	})
	if err != nil {
		return false, err
	}
	return changed.(bool), nil
}

func (r *Reconciler) reconcile(ctx context.Context) bool {
	current := r.index.Snapshot()

	exists := make(map[string]bool, len(current))
	for _, e := range current {
		_, err := os.Stat(e.Path)
		exists[e.Path] = err == nil
	}

	scanned := r.scan.Scan(ctx, r.dirs)
	scannedSet := scanner.PathSet(scanned)

	currentSet := make(map[string]struct{}, len(current))
	for _, e := range current {
		currentSet[e.Path] = struct{}{}
	}

	var added []scanner.App
	for _, a := range scanned {
		if _, known := currentSet[a.Path]; !known {
			added = append(added, a)
		}
	}

	removed := make(map[string]struct{})
	for _, e := range current {
		if !exists[e.Path] {
			removed[e.Path] = struct{}{}
			continue
		}
		if _, still := scannedSet[e.Path]; !still {
			removed[e.Path] = struct{}{}
		}
	}

	if len(added) == 0 && len(removed) == 0 {
		r.logger.Debug("reconcile: index already converged",
			slog.Int("entries", len(current)))
		return false
	}

	r.index.ApplyDiff(added, removed)
	r.persist(scanned)

	r.logger.Info("reconcile applied",
		slog.Int("added", len(added)),
		slog.Int("removed", len(removed)),
		slog.Int("entries", r.index.Len()))

	return true
}

// FullRescan unconditionally rebuilds the index from a fresh scan, starting
// from an empty index and bypassing the diff, then persists the result.
func (r *Reconciler) FullRescan(ctx context.Context) {
	scanned, _, _ := r.group.Do("rescan", func() (any, error) {
		apps := r.scan.Scan(ctx, r.dirs)
		r.index.Replace(apps)
		r.persist(apps)
		return apps, nil
	})

	r.logger.Info("full rescan complete",
		slog.Int("entries", len(scanned.([]scanner.App))))
}

// persist writes the scanned set through the cache store. Save failures are
// reported as non-fatal; the in-memory index remains authoritative until the
// next successful save.
func (r *Reconciler) persist(apps []scanner.App) {
	if err := r.store.Save(cache.NewSnapshot(apps)); err != nil {
		r.reporter.Report(err)
	}
}
