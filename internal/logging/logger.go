// Package logging defines the structured-logging interface used across the
// client, with slog and zap implementations selected from configuration.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "email", email)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported backends.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Level is a backend-neutral log level name: debug, info, warn or error.
type Level string

// New builds a Logger for the named backend writing to w. The returned
// closer syncs the zap core and is a no-op for slog.
func New(backend string, level Level, w io.Writer) (Logger, func() error, error) {
	switch strings.ToLower(backend) {
	case "", BackendSlog:
		return NewSlogLogger(newSlog(level, w)), func() error { return nil }, nil
	case BackendZap:
		z := newZap(level, w)
		// the core is unbuffered; Sync on a terminal only ever reports EINVAL
		closeFn := func() error {
			_ = z.Sync()
			return nil
		}
		return NewZapLogger(z), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
