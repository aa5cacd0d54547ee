// Package index holds the in-memory collection of known application bundles
// and keeps it converged with the filesystem.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/Aman-CERP/appdex/internal/scanner"
)

// Entry is the lightweight projection of an application record used for
// display and matching. Two entries are equal iff their Path is equal.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Index is the thread-safe, sorted collection of currently known entries.
// Exactly one entry exists per path; entries are kept in case-insensitive
// ascending name order (path as tiebreak) after every mutation. Mutations
// and snapshots are serialized through one mutex, so no reader ever observes
// a half-applied state.
type Index struct {
	mu      sync.RWMutex
	entries []Entry
	gen     uint64
}

// New creates an empty Index.
func New() *Index {
	return &Index{}
}

// Snapshot returns a consistent point-in-time copy of the entries, safe to
// call from any goroutine.
func (ix *Index) Snapshot() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// View returns a copy of the entries together with the generation they were
// read at. Both come from one critical section, so results computed from the
// entries may safely be cached under the generation; Snapshot and Generation
// called separately can straddle a mutation.
func (ix *Index) View() ([]Entry, uint64) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out, ix.gen
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Generation returns a counter that increments on every mutation. Callers
// use it to key caches and to discard results computed against a stale view.
func (ix *Index) Generation() uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.gen
}

// Replace swaps in a wholly new entry set, re-establishing sort order and
// the one-entry-per-path invariant.
func (ix *Index) Replace(apps []scanner.App) {
	entries := make([]Entry, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if _, dup := seen[a.Path]; dup {
			continue
		}
		seen[a.Path] = struct{}{}
		entries = append(entries, Entry{ID: a.Path, Name: a.Name, Path: a.Path})
	}
	sortEntries(entries)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = entries
	ix.gen++
}

// ApplyDiff removes entries whose path is in removed, appends added, and
// re-sorts. Callers only invoke it with a non-empty diff so that no-op
// mutations do not trigger notifications or persistence.
func (ix *Index) ApplyDiff(added []scanner.App, removed map[string]struct{}) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	kept := ix.entries[:0:len(ix.entries)]
	present := make(map[string]struct{}, len(ix.entries))
	for _, e := range ix.entries {
		if _, gone := removed[e.Path]; gone {
			continue
		}
		kept = append(kept, e)
		present[e.Path] = struct{}{}
	}

	for _, a := range added {
		if _, dup := present[a.Path]; dup {
			continue
		}
		present[a.Path] = struct{}{}
		kept = append(kept, Entry{ID: a.Path, Name: a.Name, Path: a.Path})
	}

	sortEntries(kept)
	ix.entries = kept
	ix.gen++
}

// sortEntries orders entries case-insensitively by name, path as the
// deterministic tiebreak.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a := strings.ToLower(entries[i].Name)
		b := strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].Path < entries[j].Path
	})
}
