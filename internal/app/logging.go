package app

import (
	"io"
	"log/slog"
)

// newLogger builds the diagnostics logger. Default level is warn so regular
// runs only show user-facing output.
func newLogger(w io.Writer, verbose, quiet, asJSON bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
