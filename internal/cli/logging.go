package cli

import (
	"io"
	"log/slog"
)

// newLogger builds the pipeline diagnostics logger. Diagnostics go to
// stderr so they never mix with the styled command output; --verbose
// lowers the level to Debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
