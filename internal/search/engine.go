// Package search scores and ranks index entries against a user query using
// a multi-strategy fuzzy-matching ladder.
package search

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/appdex/internal/index"
)

// defaultCacheSize bounds the query result cache when the caller passes a
// non-positive size.
const defaultCacheSize = 128

// cacheKey identifies one evaluated query against one index generation.
// Results for stale generations age out of the LRU naturally.
type cacheKey struct {
	query string
	limit int
	gen   uint64
}

// Engine evaluates queries against index snapshots. It never mutates the
// corpus it is handed. Safe for concurrent use.
type Engine struct {
	cache *lru.Cache[cacheKey, []index.Entry]
}

// NewEngine creates an engine with an LRU result cache of the given size.
func NewEngine(cacheSize int) (*Engine, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[cacheKey, []index.Entry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &Engine{cache: cache}, nil
}

// Search scores the corpus against query and returns at most limit entries,
// best match first. An empty query yields an empty result; callers wanting a
// default listing must use the corpus directly, bypassing scoring. Equal
// scores keep their corpus order. gen is the index generation the corpus
// was snapshotted at; it keys the result cache.
func (e *Engine) Search(query string, corpus []index.Entry, gen uint64, limit int) []index.Entry {
	if query == "" {
		return nil
	}

	key := cacheKey{query: query, limit: limit, gen: gen}
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}

	results := Rank(query, corpus, limit)
	e.cache.Add(key, results)
	return results
}

// scored pairs an entry with its ladder score.
type scored struct {
	entry index.Entry
	score int
}

// Rank scores and sorts the corpus without caching. Exposed for callers that
// manage their own snapshots (and for tests).
func Rank(query string, corpus []index.Entry, limit int) []index.Entry {
	if query == "" {
		return nil
	}

	matches := make([]scored, 0, len(corpus))
	for _, entry := range corpus {
		if s, ok := Score(entry.Name, query); ok {
			matches = append(matches, scored{entry: entry, score: s})
		}
	}

	// Stable sort pins equal scores to their corpus order, which keeps
	// ranking deterministic across runs.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]index.Entry, len(matches))
	for i, m := range matches {
		results[i] = m.entry
	}
	return results
}
