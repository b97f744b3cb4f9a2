// Package logging provides the verbosity-gated diagnostic logger used by the
// widget framework. Each call writes its message and a level-dependent number
// of detail strings to an append-only sink, one line per argument.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is the sink used when no path is configured.
const DefaultPath = "termstack.log"

// Verbosity levels. Any level above LevelDetail writes more detail strings.
const (
	LevelOff    = 0 // all calls are no-ops
	LevelInfo   = 1 // message only
	LevelDetail = 2 // message plus first detail
)

// Logger writes diagnostic lines to a sink.
// A nil *Logger is valid and discards everything.
type Logger struct {
	level int
	out   io.Writer
	file  *os.File
	mu    sync.Mutex
}

// NewLogger creates a logger writing to path. The file is truncated here,
// once per logger; every later call appends. At LevelOff no file is touched.
func NewLogger(path string, level int) (*Logger, error) {
	if level < LevelOff {
		return nil, fmt.Errorf("invalid log level %d", level)
	}
	if level == LevelOff {
		return &Logger{level: LevelOff, out: io.Discard}, nil
	}
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{level: level, out: file, file: file}, nil
}

// NewWriterLogger creates a logger over an arbitrary writer.
func NewWriterLogger(w io.Writer, level int) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{level: level, out: w}
}

// Level returns the configured verbosity.
func (l *Logger) Level() int {
	if l == nil {
		return LevelOff
	}
	return l.level
}

// Enabled reports whether calls produce output.
func (l *Logger) Enabled() bool {
	return l.Level() > LevelOff
}

// Log writes msg, then up to Level()-1 of details, each on its own line.
func (l *Logger) Log(msg string, details ...string) {
	if l == nil || l.level < LevelInfo {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Write errors are dropped: diagnostics never fail the caller.
	_, _ = io.WriteString(l.out, msg+"\n")
	for i := 1; i < l.level && i-1 < len(details); i++ {
		_, _ = io.WriteString(l.out, details[i-1]+"\n")
	}
}

// Logf formats a single-line message.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil || l.level < LevelInfo {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Close closes the sink file, if the logger owns one.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.file.Close()
	l.file = nil
	l.out = io.Discard
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
