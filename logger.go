package mvbtree

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mvbtree-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogInsert logs the outcome of an Insert call, including how many restarts
// (conflicts or internal splits) it took before committing.
func (l *Logger) LogInsert(ctx context.Context, restarts int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed", "restarts", restarts, "error", err)
		return
	}
	l.DebugContext(ctx, "insert completed", "restarts", restarts)
}

// LogLookup logs the outcome of a Lookup call.
func (l *Logger) LogLookup(ctx context.Context, hit bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed", "error", err)
		return
	}
	l.DebugContext(ctx, "lookup completed", "hit", hit)
}

// LogScan logs the outcome of a Scan call.
func (l *Logger) LogScan(ctx context.Context, requested, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed", "requested", requested, "error", err)
		return
	}
	l.DebugContext(ctx, "scan completed", "requested", requested, "found", found)
}

// LogSplit logs a node split, kind is "leaf" or "inner".
func (l *Logger) LogSplit(ctx context.Context, kind string) {
	l.DebugContext(ctx, "node split", "kind", kind)
}

// LogRootPromotion logs a tree-height increase.
func (l *Logger) LogRootPromotion(ctx context.Context) {
	l.InfoContext(ctx, "root promoted, tree height increased")
}
