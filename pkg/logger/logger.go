// Package logger provides the structured logger used across the storefront
// core. Swallowed failures (mirror pushes, storage retries) are reported
// here and nowhere else.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging surface the core depends on.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	WithField(key string, value any) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
}

// New returns a Logger writing JSON lines to stdout.
func New() Logger {
	return &zerologLogger{
		logger: zerolog.New(os.Stdout).With().Timestamp().Logger(),
	}
}

// NewNop returns a Logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}

func (l *zerologLogger) Debug(msg string) { l.logger.Debug().Msg(msg) }
func (l *zerologLogger) Info(msg string)  { l.logger.Info().Msg(msg) }
func (l *zerologLogger) Warn(msg string)  { l.logger.Warn().Msg(msg) }
func (l *zerologLogger) Error(msg string) { l.logger.Error().Msg(msg) }

func (l *zerologLogger) WithField(key string, value any) Logger {
	return &zerologLogger{logger: l.logger.With().Interface(key, value).Logger()}
}
