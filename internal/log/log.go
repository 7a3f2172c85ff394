// Package log is the process-wide structured logger for gsp.
//
// Records go to stderr (warnings and errors only unless verbose) and, when a
// debug directory is configured, to daily JSONL files that always capture
// every level. Until Init is called the package logs through slog.Default.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var (
	logger     = slog.Default()
	fileWriter *FileWriter
)

// Options configures the logger.
type Options struct {
	// Verbose lowers the stderr threshold from warn to debug.
	Verbose bool
	// JSONFormat switches stderr output from text to JSON.
	JSONFormat bool
	// DebugDir receives daily JSONL files. Empty disables file logging.
	DebugDir string
	// RetentionDays removes debug files older than this many days (0 keeps all).
	RetentionDays int
	// Stderr overrides os.Stderr.
	Stderr io.Writer
}

// Init replaces the package logger according to opts.
func Init(opts Options) error {
	Close()

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	stderrOpts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if opts.JSONFormat {
		handlers = append(handlers, slog.NewJSONHandler(stderr, stderrOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stderr, stderrOpts))
	}

	if opts.DebugDir != "" {
		if opts.RetentionDays > 0 {
			Cleanup(opts.DebugDir, opts.RetentionDays)
		}

		fw, err := NewFileWriter(opts.DebugDir)
		if err != nil {
			return err
		}
		fileWriter = fw
		handlers = append(handlers, slog.NewJSONHandler(fw, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	logger = slog.New(fanout(handlers))
	slog.SetDefault(logger)
	return nil
}

// Close releases the debug file, if any.
func Close() {
	if fileWriter != nil {
		fileWriter.Close()
		fileWriter = nil
	}
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
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

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

func Info(msg string, args ...any) { logger.Info(msg, args...) }

func Warn(msg string, args ...any) { logger.Warn(msg, args...) }

func Error(msg string, args ...any) { logger.Error(msg, args...) }

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
