package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/cache"
	"github.com/Aman-CERP/appdex/internal/config"
	apperrors "github.com/Aman-CERP/appdex/internal/errors"
	"github.com/Aman-CERP/appdex/internal/index"
	"github.com/Aman-CERP/appdex/internal/scanner"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rescan application directories and rebuild the cache",
		Long: `Rescan all configured application directories from scratch and
rewrite the on-disk cache. Use this when the index looks stale and you
do not want to wait for the filesystem watcher.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRefresh(cmd.Context(), cmd)
		},
	}
}

func runRefresh(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.Default()
	store := cache.NewStore(cfg.Paths.CachePath, logger)
	idx := index.New()
	rec := index.NewReconciler(idx, scanner.New(logger), store, cfg.Paths.SearchDirs,
		apperrors.NewLogReporter(logger), logger)

	rec.FullRescan(ctx)

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d applications.\n", idx.Len())
	return err
}
