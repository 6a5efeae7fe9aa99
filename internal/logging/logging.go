// Package logging sets up the session log. The terminal belongs to the
// chat shell, so records go to a file as slog text lines tagged with a
// per-process session ID and the emitting subsystem.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// Options configures Open.
type Options struct {
	Level   string // debug, info, warn or error; empty means info
	File    string // path of the log file
	Session string // session ID; empty means a fresh UUID
	Debug   bool   // forces debug level
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Open creates the log file (appending) and returns a logger writing to it.
// The returned closer closes the file.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, level, opts.Session), f, nil
}

// New returns a logger writing text records to w.
func New(w io.Writer, level slog.Level, session string) *slog.Logger {
	if session == "" {
		session = uuid.NewString()
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("session", session)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// For tags l with a subsystem name. A nil l yields a discard logger.
func For(l *slog.Logger, subsystem string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With("subsystem", subsystem)
}

// Truncate shortens s to at most width display columns for one-line logs.
func Truncate(s string, width int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	return runewidth.Truncate(s, width, "...")
}
