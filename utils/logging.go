package utils

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey int

const (
	ContextKeyLogger ContextKey = iota
)

// NewLogger builds the process-wide logger. format is "text" or "json";
// anything else falls back to text.
func NewLogger(format string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})
	}
	return slog.New(handler)
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

// LoggerFromContext returns the logger stored in the context, or the default
// logger when none was stored.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
