// Package logging defines a minimal structured-logging interface used across
// the project, with slog and logrus backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "entry saved", "entry_id", id, "user_id", uid)
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options selects and configures a backend.
type Options struct {
	Backend string // "slog" or "logrus"
	Format  string // "text" or "json"
	Level   string // "debug", "info", "warn", "error"
}

// New builds a Logger writing to w.
func New(w io.Writer, o Options) (Logger, error) {
	switch strings.ToLower(o.Backend) {
	case "", "slog":
		level, err := slogLevel(o.Level)
		if err != nil {
			return nil, err
		}
		opts := &slog.HandlerOptions{Level: level}
		var h slog.Handler
		if strings.EqualFold(o.Format, "json") {
			h = slog.NewJSONHandler(w, opts)
		} else {
			h = slog.NewTextHandler(w, opts)
		}
		return NewSlogLogger(slog.New(h)), nil

	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		level, err := logrus.ParseLevel(levelOrDefault(o.Level))
		if err != nil {
			return nil, err
		}
		l.SetLevel(level)
		if strings.EqualFold(o.Format, "json") {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
		}
		return NewLogrusLogger(l), nil
	}
	return nil, fmt.Errorf("unknown log backend %q", o.Backend)
}

func levelOrDefault(s string) string {
	if s == "" {
		return "info"
	}
	return strings.ToLower(s)
}

func slogLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(levelOrDefault(s)))
	return l, err
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
