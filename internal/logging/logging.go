// Package logging provides structured logging setup for guest-room.
package logging

import (
	"io"
	"log/slog"
)

// Setup initializes the default slog logger writing to w.
// Verbose mode uses human-readable text at debug level; otherwise JSON at
// warn level so routine output stays quiet.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	var handler slog.Handler
	if verbose {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
