// Package cmd provides the CLI commands for appdex.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/appdex/internal/app"
	"github.com/Aman-CERP/appdex/internal/config"
	"github.com/Aman-CERP/appdex/internal/history"
	"github.com/Aman-CERP/appdex/internal/logging"
	"github.com/Aman-CERP/appdex/internal/ui"
	"github.com/Aman-CERP/appdex/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the appdex CLI.
func NewRootCmd() *cobra.Command {
	var plain bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "appdex",
		Short: "Fast application launcher index",
		Long: `Appdex indexes the applications installed on this machine and finds
them with fuzzy search.

Run 'appdex' with no arguments for the interactive picker: type to
filter, enter to launch. The index is cached on disk, so results appear
instantly while a background scan keeps them fresh.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runPicker(cmd.Context(), cmd, plain, noColor)
		},
	}

	cmd.SetVersionTemplate("appdex version {{.Version}}\n")

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the full index instead of the interactive picker")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.appdex/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newRecentCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

// stopLogging closes the debug log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// runPicker runs the interactive search picker and launches the selection.
func runPicker(ctx context.Context, cmd *cobra.Command, plain, noColor bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	uiCfg := ui.NewConfig(cmd.OutOrStdout(),
		ui.WithForcePlain(plain),
		ui.WithNoColor(noColor))

	// Pipes and --plain get the full listing on stdout instead of a TUI.
	if !ui.UseInteractive(uiCfg) {
		idx, err := buildIndex(ctx, cfg)
		if err != nil {
			return err
		}
		ui.WriteResults(cmd.OutOrStdout(), idx.Snapshot())
		return nil
	}

	svc, hist, err := buildService(cfg)
	if err != nil {
		return err
	}
	if hist != nil {
		defer func() { _ = hist.Close() }()
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	choice, ok, err := ui.RunPicker(ctx, svc, uiCfg)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	slog.Info("launching application",
		slog.String("name", choice.Name),
		slog.String("path", choice.Path))
	return svc.Launch(ctx, choice.Path)
}

// buildService assembles the coordinator and, when enabled, the launch
// history store. The caller owns closing the returned store.
func buildService(cfg *config.Config) (*app.Service, *history.Store, error) {
	var hist *history.Store
	if cfg.History.Enabled {
		h, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is an extra; a broken store must not block launching.
			slog.Warn("launch history unavailable", slog.String("error", err.Error()))
		} else {
			hist = h
		}
	}

	svc, err := app.New(app.Options{Config: cfg, History: hist})
	if err != nil {
		if hist != nil {
			_ = hist.Close()
		}
		return nil, nil, err
	}
	return svc, hist, nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
