package errors

import (
	"log/slog"
)

// Reporter receives non-fatal errors from components that absorb failures
// locally (cache save, history writes). Implementations must be safe for
// concurrent use.
type Reporter interface {
	Report(err error)
}

// LogReporter reports errors through a slog.Logger, mapping severity to the
// log level.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter backed by the given logger.
// A nil logger falls back to slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs the error with its code and category when available.
func (r *LogReporter) Report(err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.String("error", err.Error())}
	if ae, ok := err.(*AppError); ok {
		attrs = append(attrs,
			slog.String("code", ae.Code),
			slog.String("category", string(ae.Category)),
		)
		for k, v := range ae.Details {
			attrs = append(attrs, slog.String(k, v))
		}
		if ae.Severity == SeverityWarning {
			r.logger.Warn("non-fatal error", attrs...)
			return
		}
	}
	r.logger.Error("error reported", attrs...)
}

// Discard is a Reporter that drops all errors. Useful in tests.
type Discard struct{}

// Report implements Reporter.
func (Discard) Report(error) {}
