package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/cache"
	"github.com/Aman-CERP/appdex/internal/config"
	"github.com/Aman-CERP/appdex/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index and cache status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			st := ui.Status{
				SearchDirs: cfg.Paths.SearchDirs,
				CachePath:  cfg.Paths.CachePath,
				Watching:   cfg.Watch.Enabled,
			}

			store := cache.NewStore(cfg.Paths.CachePath, slog.Default())
			if snap, ok := store.Load(); ok {
				st.CacheExists = fileExists(cfg.Paths.CachePath)
				st.CacheUpdated = snap.LastUpdated
				st.Entries = len(snap.Apps)
			}

			ui.WriteStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}
