// Package logging builds the application logger. Records go to the console
// and to two files in the log directory: verbose.log receives everything
// from debug up, info.log from info up. Both files are truncated when the
// logger is built, so they only ever hold the current run.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"github.com/mrlokans/archivist/internal/entities"
)

const (
	VerboseLogName = "verbose.log"
	InfoLogName    = "info.log"
)

type Options struct {
	Dir     string
	Level   string    // console level, defaults to info
	Console io.Writer // defaults to os.Stderr
}

// Logger owns the log files and closes them on Close.
type Logger struct {
	*slog.Logger
	files []*os.File
}

// New builds a logger whose records all carry the run attribute. An empty
// Dir disables the log files.
func New(opts Options, run int) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: ParseLevel(opts.Level)}),
	}

	l := &Logger{}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		for _, f := range []struct {
			name  string
			level slog.Level
		}{
			{VerboseLogName, slog.LevelDebug},
			{InfoLogName, slog.LevelInfo},
		} {
			file, err := os.Create(filepath.Join(opts.Dir, f.name))
			if err != nil {
				l.Close()
				return nil, fmt.Errorf("failed to open log file: %w", err)
			}
			l.files = append(l.files, file)
			handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: f.level}))
		}
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...)).With("run", run)
	return l, nil
}

func (l *Logger) Close() error {
	var errs []error
	for _, f := range l.files {
		errs = append(errs, f.Close())
	}
	l.files = nil
	return errors.Join(errs...)
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// RunCounter persists the number of times the application has started.
type RunCounter interface {
	IncrementInt(key string) (int, error)
}

// NextRun increments and returns the persisted run counter.
func NextRun(store RunCounter) (int, error) {
	run, err := store.IncrementInt(entities.SettingKeyRunCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment run counter: %w", err)
	}
	return run, nil
}

// Discard returns a logger that drops every record, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
