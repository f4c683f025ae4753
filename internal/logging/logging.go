// Package logging builds the process logger and carries request-scoped
// fields through a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/triviaz/internal/llm"
)

// Options configures New.
type Options struct {
	Level  string // logrus level name; empty means "info"
	Format string // "text" or "json"; empty means "text"
	File   string // append to this file when set
	// Fallback is used when File is empty. nil means io.Discard.
	Fallback io.Writer
}

var base logrus.FieldLogger = discard()

// New creates a logger from opts. The returned closer releases the log
// file, if one was opened.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	logger.SetLevel(level)

	switch opts.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: opts.File != ""})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f
	case opts.Fallback != nil:
		logger.SetOutput(opts.Fallback)
	default:
		logger.SetOutput(io.Discard)
	}

	return logger, closer, nil
}

// SetDefault replaces the logger returned by WithContext.
func SetDefault(l logrus.FieldLogger) {
	if l == nil {
		l = discard()
	}
	base = l
}

// Default returns the process logger.
func Default() logrus.FieldLogger { return base }

type ctxKey struct{}

// WithRunID attaches a quiz run ID to ctx for log correlation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, runID)
}

// WithContext returns the default logger with the run ID and LLM purpose
// found in ctx.
func WithContext(ctx context.Context) logrus.FieldLogger {
	return FromContext(ctx, base)
}

// FromContext decorates logger with the fields carried by ctx.
func FromContext(ctx context.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	fields := logrus.Fields{}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		fields["run_id"] = id
	}
	if p := llm.PurposeFrom(ctx); p != "unknown" {
		fields["purpose"] = p
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.WithFields(fields)
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
