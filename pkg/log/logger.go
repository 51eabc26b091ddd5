package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// Options control how the process logger writes.
type Options struct {
	Debug bool
	// JSON disables the console writer and emits one JSON object per line.
	JSON bool
	Out  io.Writer
}

func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	return NewContextWithOptions(ctx, Options{Debug: debug, JSON: os.Getenv("LOG_FORMAT") == "json"})
}

func NewContextWithOptions(ctx context.Context, opts Options) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// Use a diode (ring buffer) for non-blocking logging
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger Dropped %d messages\n", missed)
	})

	var output io.Writer = wr
	if !opts.JSON {
		output = zerolog.ConsoleWriter{
			Out:        wr,
			TimeFormat: time.DateTime,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.CallerFieldName,
				zerolog.MessageFieldName,
			},
		}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(2).
		Logger()

	log.Logger = logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// WithFields returns a context whose logger carries the given string fields.
func WithFields(ctx context.Context, kv ...string) context.Context {
	lc := FromCtx(ctx).With()
	for i := 0; i+1 < len(kv); i += 2 {
		lc = lc.Str(kv[i], kv[i+1])
	}
	l := lc.Logger()
	return l.WithContext(ctx)
}
