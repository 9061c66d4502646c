package everybit

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with everybit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithFile adds a script file field to the logger.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// WithCase adds a test case field to the logger.
func (l *Logger) WithCase(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("case", id),
	}
}

// LogAlloc logs the allocation of a bit array.
func (l *Logger) LogAlloc(ctx context.Context, bits uint64, offHeap bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "allocation failed",
			"bits", bits,
			"off_heap", offHeap,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "allocation completed",
			"bits", bits,
			"off_heap", offHeap,
		)
	}
}

// LogFree logs the release of a bit array.
func (l *Logger) LogFree(ctx context.Context, bits uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "free failed",
			"bits", bits,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "storage released",
			"bits", bits,
		)
	}
}

// LogExpect logs the outcome of an expectation in a test script.
func (l *Logger) LogExpect(ctx context.Context, line int, passed bool, reason string) {
	if passed {
		l.DebugContext(ctx, "expectation passed",
			"line", line,
		)
	} else {
		l.WarnContext(ctx, "expectation failed",
			"line", line,
			"reason", reason,
		)
	}
}

// LogRun logs the completion of a test script.
func (l *Logger) LogRun(ctx context.Context, passed, failed int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "script aborted",
			"passed", passed,
			"failed", failed,
			"error", err,
		)
	case failed > 0:
		l.WarnContext(ctx, "script completed with failures",
			"passed", passed,
			"failed", failed,
		)
	default:
		l.InfoContext(ctx, "script completed",
			"passed", passed,
		)
	}
}

// LogTier logs one tier of a timed rotation run.
func (l *Logger) LogTier(ctx context.Context, tier int, bytes, shift uint64, elapsed time.Duration, exceeded bool) {
	if exceeded {
		l.InfoContext(ctx, "tier exceeded budget",
			"tier", tier,
			"bytes", bytes,
			"shift", shift,
			"elapsed", elapsed,
		)
	} else {
		l.DebugContext(ctx, "tier completed",
			"tier", tier,
			"bytes", bytes,
			"shift", shift,
			"elapsed", elapsed,
		)
	}
}
