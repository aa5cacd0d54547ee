// Package app wires the scanner, cache, index, search engine, watcher, and
// launcher into one long-lived service behind a small asynchronous API. The
// presentation layer talks only to the Service; no call on it blocks on disk
// I/O or scanning.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Aman-CERP/appdex/internal/cache"
	"github.com/Aman-CERP/appdex/internal/config"
	apperrors "github.com/Aman-CERP/appdex/internal/errors"
	"github.com/Aman-CERP/appdex/internal/history"
	"github.com/Aman-CERP/appdex/internal/index"
	"github.com/Aman-CERP/appdex/internal/launcher"
	"github.com/Aman-CERP/appdex/internal/scanner"
	"github.com/Aman-CERP/appdex/internal/search"
	"github.com/Aman-CERP/appdex/internal/watcher"
)

// Event is published to subscribers when a result set is ready or the
// loading state changes.
type Event struct {
	// Results is the ranked result set for the most recent query. For an
	// empty query it is the full index listing.
	Results []index.Entry

	// Loading is true while a background rescan is in flight.
	Loading bool
}

// Options configures a Service. Config is required; everything else has a
// working default or is injectable for tests.
type Options struct {
	Config *config.Config

	// Launcher opens applications. Defaults to the OS launcher.
	Launcher launcher.Launcher

	// History records successful launches. Nil disables recording.
	History *history.Store

	// Watcher overrides the filesystem watcher. Nil builds one from the
	// config when watching is enabled.
	Watcher watcher.Watcher

	// Reporter receives non-fatal errors (cache writes, watcher faults,
	// history inserts). Defaults to a log reporter.
	Reporter apperrors.Reporter

	Logger *slog.Logger
}

// Service coordinates all indexing and query work. Create with New, then
// Start; queries are servable immediately from the persisted cache while the
// first reconcile runs in the background.
type Service struct {
	cfg      *config.Config
	idx      *index.Index
	store    *cache.Store
	rec      *index.Reconciler
	engine   *search.Engine
	watch    watcher.Watcher
	launch   launcher.Launcher
	hist     *history.Store
	reporter apperrors.Reporter
	logger   *slog.Logger

	debounce   time.Duration
	maxResults int

	mu        sync.Mutex
	subs      []func(Event)
	timer     *time.Timer
	seq       uint64
	lastQuery string
	started   bool

	// pubMu serializes event fanout. Result publications hold it across
	// the staleness check AND the fanout, so a slow evaluation of an old
	// query can never overwrite a newer query's results.
	pubMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a Service from the given options. It does not touch the disk;
// all I/O is deferred to Start.
func New(opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, apperrors.ConfigError("service requires a configuration", nil)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = apperrors.NewLogReporter(logger)
	}

	launch := opts.Launcher
	if launch == nil {
		launch = launcher.NewOSLauncher(logger)
	}

	debounce, err := cfg.QueryDebounce()
	if err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(cfg.Search.CacheSize)
	if err != nil {
		return nil, err
	}

	idx := index.New()
	store := cache.NewStore(cfg.Paths.CachePath, logger)
	scan := scanner.New(logger)
	rec := index.NewReconciler(idx, scan, store, cfg.Paths.SearchDirs, reporter, logger)

	watch := opts.Watcher
	if watch == nil && cfg.Watch.Enabled {
		watchDebounce, err := cfg.WatchDebounce()
		if err != nil {
			return nil, err
		}
		pollInterval, err := cfg.PollInterval()
		if err != nil {
			return nil, err
		}
		watch = watcher.New(cfg.Paths.SearchDirs, watcher.Options{
			Debounce:     watchDebounce,
			PollInterval: pollInterval,
		})
	}

	return &Service{
		cfg:        cfg,
		idx:        idx,
		store:      store,
		rec:        rec,
		engine:     engine,
		watch:      watch,
		launch:     launch,
		hist:       opts.History,
		reporter:   reporter,
		logger:     logger,
		debounce:   debounce,
		maxResults: cfg.Search.MaxResults,
	}, nil
}

// Start loads the persisted cache so queries are servable immediately, then
// kicks one reconcile and the watcher pipeline in the background. It returns
// without blocking on any of them.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if snap, ok := s.store.Load(); ok {
		s.idx.Replace(snap.Items())
		s.logger.Info("index restored from cache",
			slog.Int("entries", s.idx.Len()))
	}
	s.publishCurrent()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if changed, _ := s.rec.Reconcile(s.ctx); changed {
			s.publishCurrent()
		}
	}()

	if s.watch != nil {
		s.startWatcher()
	}
	return nil
}

// startWatcher runs the watcher and its trigger pump. Each debounced trigger
// maps to one reconcile; changed reconciles republish results.
func (s *Service) startWatcher() {
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.watch.Start(s.ctx); err != nil {
			s.reporter.Report(err)
		}
	}()
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ctx.Done():
				return
			case _, ok := <-s.watch.Triggers():
				if !ok {
					return
				}
				if changed, _ := s.rec.Reconcile(s.ctx); changed {
					s.publishCurrent()
				}
			case err, ok := <-s.watch.Errors():
				if !ok {
					return
				}
				s.reporter.Report(err)
			}
		}
	}()
}

// Stop cancels all background work and waits for it to drain. Safe to call
// more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	if s.watch != nil {
		_ = s.watch.Stop()
	}
	s.wg.Wait()
}

// Subscribe registers a callback for result and loading-state events.
// Callbacks run on service goroutines and must return quickly.
func (s *Service) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Search submits a query. Evaluation is debounced: rapid successive calls
// collapse so only the final query is scored, and a result that finishes
// after a newer query was submitted is dropped rather than published out of
// order.
func (s *Service) Search(query string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.lastQuery = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.evaluate(query, seq)
	})
	s.mu.Unlock()
}

// evaluate scores one debounced query and publishes its results unless a
// newer query has superseded it.
func (s *Service) evaluate(query string, seq uint64) {
	s.mu.Lock()
	stale := seq != s.seq
	s.mu.Unlock()
	if stale {
		return
	}

	s.publishResults(seq, Event{Results: s.results(query)})
}

// results ranks the current index view for query. The empty query yields
// the full listing, capped like any other result set. Entries and generation
// come from one index lock acquisition; a reconcile landing mid-evaluation
// can therefore never cache old-corpus results under the new generation.
func (s *Service) results(query string) []index.Entry {
	snapshot, gen := s.idx.View()
	if query == "" {
		if s.maxResults > 0 && len(snapshot) > s.maxResults {
			snapshot = snapshot[:s.maxResults]
		}
		return snapshot
	}
	return s.engine.Search(query, snapshot, gen, s.maxResults)
}

// Refresh forces a full rescan and cache rebuild in the background. It is a
// no-op on a service that is not running, so the rescan goroutine can never
// race the shutdown in Stop.
func (s *Service) Refresh() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	s.publish(Event{Loading: true})
	go func() {
		defer s.wg.Done()
		s.rec.FullRescan(ctx)
		s.publishCurrent()
	}()
}

// ClearCache deletes the persisted cache and rebuilds it from a full rescan.
func (s *Service) ClearCache() {
	if err := s.store.Delete(); err != nil {
		s.reporter.Report(err)
	}
	s.Refresh()
}

// Launch opens the application at path. Launch failure is the one error
// surfaced to the caller; successful launches are recorded in history when a
// store is configured, and a failed record never fails the launch.
func (s *Service) Launch(ctx context.Context, path string) error {
	if err := s.launch.Launch(ctx, path); err != nil {
		return err
	}
	if s.hist != nil {
		if err := s.hist.Record(path, s.nameOf(path)); err != nil {
			s.reporter.Report(err)
		}
	}
	return nil
}

// nameOf resolves a path to its indexed display name, falling back to the
// path itself for entries launched outside the index.
func (s *Service) nameOf(path string) string {
	for _, e := range s.idx.Snapshot() {
		if e.Path == path {
			return e.Name
		}
	}
	return path
}

// publishCurrent re-evaluates the most recent query against the live index
// and publishes the result. Called after any reconcile that changed the
// index, so visible results track filesystem changes without a new query.
func (s *Service) publishCurrent() {
	s.mu.Lock()
	query := s.lastQuery
	seq := s.seq
	s.mu.Unlock()
	s.publishResults(seq, Event{Results: s.results(query)})
}

// publishResults fans out a result set for the query identified by seq,
// dropping it when a newer query has been submitted. The check and the
// fanout share the publish lock: once a newer evaluation has published,
// no older one can get through behind it.
func (s *Service) publishResults(seq uint64, ev Event) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	stale := seq != s.seq
	s.mu.Unlock()
	if stale {
		return
	}

	s.fanout(ev)
}

// publish fans an event out to all subscribers, serialized with result
// publications.
func (s *Service) publish(ev Event) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.fanout(ev)
}

// fanout delivers one event to every subscriber. Callers hold pubMu.
func (s *Service) fanout(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
