package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/config"
	"github.com/Aman-CERP/appdex/internal/history"
	"github.com/Aman-CERP/appdex/internal/ui"
)

func newRecentCmd() *cobra.Command {
	var limit int
	var format string
	var forget string

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently launched applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			hist, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer func() { _ = hist.Close() }()

			if forget != "" {
				return hist.Forget(forget)
			}

			records, err := hist.Recent(limit)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			ui.WriteHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of records")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&forget, "forget", "", "Remove the history entry for the given path")

	return cmd
}
