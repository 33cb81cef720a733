// Package zerolog provides a github.com/rs/zerolog adapter for the
// realip.Logger interface.
package zerolog

import (
	"context"

	"github.com/abczzz13/realip"
	zl "github.com/rs/zerolog"
)

// Logger implements realip.Logger on top of a zerolog.Logger.
//
// When the request context carries a zerolog logger (zerolog.Ctx), that
// logger is used so request scoped fields such as request ids are kept.
type Logger struct {
	logger zl.Logger
}

// New returns a Logger writing to logger.
func New(logger zl.Logger) *Logger {
	return &Logger{logger: logger}
}

// WithLogger returns a realip option that installs logger as the resolver's
// Logger.
func WithLogger(logger zl.Logger) realip.Option {
	return realip.WithLogger(New(logger))
}

// WarnContext logs msg at warn level with args as alternating key/value
// fields.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	logger := l.logger
	if ctx != nil {
		if ctxLogger := zl.Ctx(ctx); ctxLogger.GetLevel() != zl.Disabled {
			logger = *ctxLogger
		}
	}

	event := logger.Warn()
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	if len(args) > 0 {
		event = event.Fields(args)
	}
	event.Msg(msg)
}
