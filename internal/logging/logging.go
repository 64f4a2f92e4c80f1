// Package logging sets up the zerolog loggers used across quicksearch.
// The TUI owns the terminal, so everything goes to files.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logs bundles the application logger and the open history logger
type Logs struct {
	App     zerolog.Logger
	History zerolog.Logger

	closers []io.Closer
}

// Options configures where logs go
type Options struct {
	Dir   string // directory for quicksearch.log and history.log
	Level string // zerolog level name, "info" when empty
}

// DefaultDir returns $XDG_STATE_HOME/quicksearch, falling back to ~/.local/state
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "quicksearch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "quicksearch")
}

// Open creates the log directory and opens both log files in append mode
func Open(opts Options) (*Logs, error) {
	if opts.Dir == "" {
		opts.Dir = DefaultDir()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	appFile, err := openAppend(filepath.Join(opts.Dir, "quicksearch.log"))
	if err != nil {
		return nil, err
	}
	historyFile, err := openAppend(filepath.Join(opts.Dir, "history.log"))
	if err != nil {
		_ = appFile.Close()
		return nil, err
	}

	return &Logs{
		App:     New(appFile, level),
		History: New(historyFile, zerolog.InfoLevel).With().Str("component", "history").Logger(),
		closers: []io.Closer{appFile, historyFile},
	}, nil
}

// Close closes the underlying files
func (l *Logs) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// New builds a timestamped logger on w
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger, used by tests and when no logger is wired
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level, empty means info
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// WithComponent returns a child logger tagged with a component field
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext extracts the logger from context.
// If no logger is found, returns a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
