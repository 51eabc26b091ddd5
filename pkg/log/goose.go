package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger adapts zerolog to goose's Logger interface
type GooseLogger struct {
	logger *zerolog.Logger
}

// Fatalf is downgraded to an error: a failed migration is returned by goose.Up
// and handled by the caller instead of exiting the process.
func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Error().Str("component", "migrations").Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Debug().Str("component", "migrations").Msgf(format, v...)
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx),
	}
}
