// Package launcher starts application bundles through the OS.
package launcher

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	apperrors "github.com/Aman-CERP/appdex/internal/errors"
)

// Launcher is the OS process-launch collaborator. Launch failure is the one
// user-visible error in the indexing/search boundary.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// Func adapts a function to the Launcher interface.
type Func func(ctx context.Context, path string) error

// Launch implements Launcher.
func (f Func) Launch(ctx context.Context, path string) error {
	return f(ctx, path)
}

// OSLauncher launches bundles with the platform opener: `open` on darwin,
// `xdg-open` elsewhere.
type OSLauncher struct {
	logger *slog.Logger
}

// NewOSLauncher creates a launcher. A nil logger falls back to slog.Default().
func NewOSLauncher(logger *slog.Logger) *OSLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &OSLauncher{logger: logger}
}

// Launch starts the bundle at path.
func (l *OSLauncher) Launch(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperrors.New(apperrors.ErrCodeLaunchNotFound, "application not found", err).
			WithDetail("path", path)
	}

	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}

	cmd := exec.CommandContext(ctx, opener, path)
	if err := cmd.Run(); err != nil {
		return apperrors.LaunchError("failed to launch application", err).
			WithDetail("path", path)
	}

	l.logger.Info("launched application", slog.String("path", path))
	return nil
}
