package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		level   int
		wantErr bool
		wantOut bool
	}{
		{
			name:    "creates file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "ui.log") },
			level:   LevelInfo,
			wantOut: true,
		},
		{
			name:    "creates nested directories",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "a", "b", "ui.log") },
			level:   LevelDetail,
			wantOut: true,
		},
		{
			name:  "level off touches nothing",
			path:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "off.log") },
			level: LevelOff,
		},
		{
			name:    "negative level",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "neg.log") },
			level:   -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			logger, err := NewLogger(path, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer logger.Close()

			_, statErr := os.Stat(path)
			if tt.wantOut && statErr != nil {
				t.Errorf("log file not created: %v", statErr)
			}
			if !tt.wantOut && statErr == nil {
				t.Errorf("log file should not exist at level off")
			}
		})
	}
}

func TestNewLogger_TruncatesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.log")
	if err := os.WriteFile(path, []byte("stale line\n"), 0644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	logger, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Log("first")
	logger.Log("second")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got, want := string(data), "first\nsecond\n"; got != want {
		t.Errorf("log contents = %q, want %q", got, want)
	}
}

func TestLog_VerbosityGatesDetails(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{LevelOff, ""},
		{LevelInfo, "msg\n"},
		{LevelDetail, "msg\nd1\n"},
		{3, "msg\nd1\nd2\n"},
		{10, "msg\nd1\nd2\nd3\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := NewWriterLogger(&buf, tt.level)
		logger.Log("msg", "d1", "d2", "d3")
		if got := buf.String(); got != tt.want {
			t.Errorf("level %d: got %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)
	logger.Logf("resize %dx%d", 3, 4)
	if got := buf.String(); got != "resize 3x4\n" {
		t.Errorf("Logf wrote %q", got)
	}
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Log("ignored", "detail")
	logger.Logf("ignored %d", 1)
	if logger.Enabled() {
		t.Error("nil logger should not be enabled")
	}
	if logger.Level() != LevelOff {
		t.Errorf("nil logger level = %d", logger.Level())
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
}
