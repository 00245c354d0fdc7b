package logging

import (
	"context"
	"log/slog"
)

// LevelTrace is more verbose than slog.LevelDebug. It carries per-option
// detail such as hydration fallbacks.
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps a -v count to a level: 0 warn, 1 info, 2 debug,
// 3 or more trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// LevelFor combines the -q flag, the -v count and the value of the debug
// environment variable. The flag count wins over the variable, which
// accepts "1" or "true" for debug and "2" for trace.
func LevelFor(quiet bool, verbosity int, debugEnv string) slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		switch debugEnv {
		case "1", "true":
			verbosity = 2
		case "2":
			verbosity = 3
		}
	}
	return LevelFromVerbosity(verbosity)
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}
