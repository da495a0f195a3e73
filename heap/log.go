package heap

import (
	"io"
	"log/slog"
	"os"
)

// logEnv turns on debug logging to stderr for heaps built without a logger.
const logEnv = "ELHEAP_LOG"

func newLogger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	if os.Getenv(logEnv) != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
