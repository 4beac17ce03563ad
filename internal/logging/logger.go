package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New returns the process logger. Production writes JSON lines; every other
// environment gets the human readable console writer.
func New(appName, env string) zerolog.Logger {
	return newWithOutput(os.Stdout, appName, env)
}

func newWithOutput(out io.Writer, appName, env string) zerolog.Logger {
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}
	}
	return zerolog.New(out).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext stores a request-scoped logger.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Ctx returns the logger stored by IntoContext, or fallback. The result is a
// pointer so callers can chain level methods directly.
func Ctx(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return &logger
		}
	}
	return &fallback
}

// FromContext is Ctx with a disabled fallback.
func FromContext(ctx context.Context) *zerolog.Logger {
	return Ctx(ctx, zerolog.Nop())
}
