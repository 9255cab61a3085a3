package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "jun",
	})
}

// levelFor maps the debug switch to a log level.
func levelFor(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// progress times one pipeline step and reports it at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(logger *log.Logger) *progress {
	return &progress{logger: logger, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...interface{}) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Debug(msg, append([]interface{}{"took", elapsed}, keyvals...)...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
