package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/cache"
	"github.com/Aman-CERP/appdex/internal/config"
	apperrors "github.com/Aman-CERP/appdex/internal/errors"
	"github.com/Aman-CERP/appdex/internal/index"
	"github.com/Aman-CERP/appdex/internal/launcher"
	"github.com/Aman-CERP/appdex/internal/scanner"
	"github.com/Aman-CERP/appdex/internal/search"
	"github.com/Aman-CERP/appdex/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string // "text", "json"
	launch bool   // launch the best match instead of printing
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed applications",
		Long: `Search indexed applications with fuzzy matching.

Matches are ranked: exact name first, then prefix, word-start,
substring, initials, and finally scattered-character matches.

Examples:
  appdex search safari
  appdex search "google chrome" --limit 5
  appdex search gc --launch
  appdex search term --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (0 uses the configured default)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.launch, "launch", false, "Launch the best match")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	idx, err := buildIndex(ctx, cfg)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit <= 0 {
		limit = cfg.Search.MaxResults
	}

	results := search.Rank(query, idx.Snapshot(), limit)
	slog.Debug("search complete",
		slog.String("query", query),
		slog.Int("results", len(results)))

	if opts.launch {
		if len(results) == 0 {
			return apperrors.New(apperrors.ErrCodeLaunchNotFound,
				"no application matches "+query, nil)
		}
		l := launcher.NewOSLauncher(slog.Default())
		return l.Launch(ctx, results[0].Path)
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		ui.WriteResults(cmd.OutOrStdout(), results)
		return nil
	}
}

// buildIndex produces a ready-to-query index for one-shot commands. The
// persisted cache serves when present; otherwise the result comes from a
// fresh scan, which also seeds the cache for next time.
func buildIndex(ctx context.Context, cfg *config.Config) (*index.Index, error) {
	logger := slog.Default()
	store := cache.NewStore(cfg.Paths.CachePath, logger)
	idx := index.New()

	if snap, ok := store.Load(); ok {
		idx.Replace(snap.Items())
		return idx, nil
	}

	scan := scanner.New(logger)
	rec := index.NewReconciler(idx, scan, store, cfg.Paths.SearchDirs,
		apperrors.NewLogReporter(logger), logger)
	rec.FullRescan(ctx)
	return idx, nil
}
