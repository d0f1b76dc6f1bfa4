package engine

import (
	"log/slog"

	"github.com/gertd/go-pluralize"
)

// Logger is the logging surface used across pagedb. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultLogger returns slog.Default().
func DefaultLogger() Logger {
	return slog.Default()
}

// NopLogger discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

var plural = pluralize.NewClient()

// Count renders n with word in the matching number, e.g. "1 row", "3 rows".
func Count(n int64, word string) string {
	return plural.Pluralize(word, int(n), true)
}
