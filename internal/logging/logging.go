// Package logging builds the process logger: human-readable text on stdout
// plus JSON lines in a size-rotated file under the logs directory.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// File rotation limits.
const (
	FileName   = "gridironlabs.log"
	MaxSizeMB  = 5
	MaxBackups = 3
)

// ParseLevel maps DEBUG/INFO/WARN(ING)/ERROR to a slog level, defaulting
// to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup returns a logger writing to stdout and, when logDir is non-empty,
// to a rotated JSON file. The returned closer flushes the file.
func Setup(level, logDir string) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	console := slog.NewTextHandler(os.Stdout, opts)

	if logDir == "" {
		return slog.New(console), nopCloser{}, nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
	}
	return slog.New(Fanout(console, slog.NewJSONHandler(file, opts))), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// --------------------------------------------------------------------------
// Fanout handler
// --------------------------------------------------------------------------

type fanout []slog.Handler

// Fanout sends every record to each handler that is enabled for its level.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanout(handlers)
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
