package colorquant

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with colorquant-specific context.
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

// WithMethod adds a method field to the logger.
func (l *Logger) WithMethod(m Method) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", m.String()),
	}
}

// WithPaletteSize adds a palette size field to the logger.
func (l *Logger) WithPaletteSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("palette_size", n),
	}
}

// LogExtract logs the distinct colour extraction.
func (l *Logger) LogExtract(ctx context.Context, pixels, distinct, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "colour extraction failed",
			"pixels", pixels,
			"workers", workers,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "colour extraction completed",
			"pixels", pixels,
			"distinct", distinct,
			"workers", workers,
			"duration", elapsed,
		)
	}
}

// LogBuild logs the kd-tree construction.
func (l *Logger) LogBuild(ctx context.Context, nodes, depth int, elapsed time.Duration) {
	l.DebugContext(ctx, "kd-tree built",
		"nodes", nodes,
		"depth", depth,
		"duration", elapsed,
	)
}

// LogIteration logs one clustering iteration.
func (l *Logger) LogIteration(ctx context.Context, it Iteration) {
	attrs := []any{
		"iteration", it.Number,
		"moved", it.Moved,
		"empty", it.EmptyClusters,
		"visited", it.Visited,
		"pruned", it.Pruned,
		"bulk", it.Bulk,
	}
	if it.Distortion >= 0 {
		attrs = append(attrs, "distortion", it.Distortion)
	}
	l.DebugContext(ctx, "iteration completed", attrs...)
}

// LogEmptyCluster logs a palette entry that received no colours.
func (l *Logger) LogEmptyCluster(ctx context.Context, iteration, index int) {
	l.WarnContext(ctx, "empty cluster, keeping previous centroid",
		"iteration", iteration,
		"index", index,
	)
}

// LogQuantize logs a finished quantization.
func (l *Logger) LogQuantize(ctx context.Context, res *Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantization failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "quantization completed",
		"colors", len(res.Centroids),
		"distinct", res.DistinctColors,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"distortion", res.Distortion,
		"duration", elapsed,
	)
}
