package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/cache"
	"github.com/Aman-CERP/appdex/internal/config"
)

func newClearCmd() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted application cache",
		Long: `Delete the persisted application cache. The next search rebuilds it
from a full scan; pass --rebuild to rescan immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store := cache.NewStore(cfg.Paths.CachePath, slog.Default())
			if err := store.Delete(); err != nil {
				return err
			}

			if rebuild {
				return runRefresh(cmd.Context(), cmd)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return err
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Rescan immediately after clearing")

	return cmd
}
