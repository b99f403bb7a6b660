// Package logging builds the slog logger shared by every sunshift component.
//
// The logger appends to a log file for the lifetime of the process and
// mirrors lines to stderr unless quiet. There is no global logger: callers
// pass the *slog.Logger into each constructor.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Options controls how the logger is built.
type Options struct {
	// Path is the append-only log file. Empty disables the file sink.
	Path string

	// Verbose lowers the level to debug.
	Verbose bool

	// Quiet drops the stderr copy. The file still receives every line.
	Quiet bool

	// Stderr overrides the console sink (tests).
	Stderr io.Writer
}

// Logger is a slog logger plus the file handle it writes to.
type Logger struct {
	*slog.Logger

	file  *os.File
	runID string
}

// New opens the log file in append mode and returns a logger tagged with a
// per-process run id.
func New(opts Options) (*Logger, error) {
	var writers []io.Writer

	var file *os.File
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	if !opts.Quiet {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	runID := uuid.NewString()[:8]
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return &Logger{
		Logger: slog.New(handler).With("run", runID),
		file:   file,
		runID:  runID,
	}, nil
}

// RunID returns the identifier attached to every line of this process.
func (l *Logger) RunID() string {
	return l.runID
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
