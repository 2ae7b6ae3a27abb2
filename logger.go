package packedgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with packedgo-specific helpers.
// The store logs nothing on hot paths; only rare structural events
// (slot retirement) and construction-time debug output are emitted.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a text handler to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCapacity adds a max-capacity field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("max_capacity", capacity),
	}
}

// LogSlotRetired logs the permanent retirement of a slot whose generation
// counter is exhausted.
func (l *Logger) LogSlotRetired(slot uint32, retiredTotal uint64) {
	l.Warn("slot generation exhausted, slot retired",
		"slot", slot,
		"retired_total", retiredTotal,
	)
}
