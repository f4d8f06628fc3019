// Package logger adapts zerolog to the ports.Logger interface.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZeroLogger implements the ports.Logger interface on top of zerolog.
type ZeroLogger struct {
	l zerolog.Logger
}

// New creates a zerolog-backed logger writing to os.Stderr. Unparseable level
// strings fall back to info.
func New(level string) *ZeroLogger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a logger writing to the given sink.
func NewWithWriter(level string, w io.Writer) *ZeroLogger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return &ZeroLogger{
		l: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// Debug logs a message at Debug level.
func (z *ZeroLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.emit(z.l.Debug(), msg, fields)
}

// Info logs a message at Info level.
func (z *ZeroLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.emit(z.l.Info(), msg, fields)
}

// Warn logs a message at Warning level.
func (z *ZeroLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.emit(z.l.Warn(), msg, fields)
}

// Error logs an error message at Error level.
func (z *ZeroLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	z.emit(z.l.Error().Err(err), msg, fields)
}

func (z *ZeroLogger) emit(ev *zerolog.Event, msg string, fields []map[string]interface{}) {
	if len(fields) > 0 && fields[0] != nil {
		ev = ev.Fields(fields[0])
	}
	ev.Msg(msg)
}
