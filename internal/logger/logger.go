// Package logger provides the process-wide structured logger for mdextract.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(New(Options{}))
}

// Options configures the logger.
type Options struct {
	Debug  bool      // Enable debug level logging
	Quiet  bool      // Only show errors; wins over Debug
	JSON   bool      // Output as JSON
	Output io.Writer // Output destination (default: stderr)
}

// Level returns the minimum level implied by the options.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Debug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from opts without installing it.
func New(opts Options) *slog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level()}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(output, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(output, handlerOpts))
}

// Init installs a logger built from opts.
func Init(opts Options) {
	current.Store(New(opts))
}

// SetLogger installs a caller-provided logger, letting library users route
// mdextract logs into their own handler. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		current.Store(l)
	}
}

// Get returns the installed logger.
func Get() *slog.Logger {
	return current.Load()
}

// Enabled reports whether messages at level would be emitted.
func Enabled(level slog.Level) bool {
	return Get().Enabled(context.Background(), level)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// With returns the installed logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
