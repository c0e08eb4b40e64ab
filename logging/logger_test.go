package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerWritesToComponentFile(t *testing.T) {
	t.Setenv("STAFFDESK_HOME", t.TempDir())
	Reset()

	logger := NewLogger("test-component")
	logger.Info("hello from test")

	path, err := LogFilePath("test-component")
	if err != nil {
		t.Fatalf("LogFilePath() error = %v", err)
	}

	// The file sink is opened at logger construction; the write is
	// synchronous, so the entry should already be on disk.
	data := readFileEventually(t, path)
	if !strings.Contains(data, "hello from test") {
		t.Errorf("log file missing entry, got: %q", data)
	}
	if !strings.Contains(data, "test-component") {
		t.Errorf("log file missing component field, got: %q", data)
	}
}

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	t.Setenv("STAFFDESK_HOME", t.TempDir())
	Reset()

	first := NewLogger("cached")
	second := NewLogger("cached")
	if first != second {
		t.Error("NewLogger should return the same entry for the same component")
	}
}

func TestLevelFromEnvironment(t *testing.T) {
	t.Setenv("STAFFDESK_HOME", t.TempDir())
	t.Setenv("STAFFDESK_LOG_LEVEL", "debug")
	Reset()

	logger := NewLogger("level-check")
	if logger.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.Logger.GetLevel())
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "disk almost full",
		Data:    logrus.Fields{"component": "api", "path": "/tmp"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "[WARN]") {
		t.Errorf("expected short level tag, got: %q", text)
	}
	if !strings.Contains(text, "disk almost full") {
		t.Errorf("expected message, got: %q", text)
	}
	if !strings.Contains(text, "path=/tmp") {
		t.Errorf("expected extra field, got: %q", text)
	}
}

func readFileEventually(t *testing.T, path string) string {
	t.Helper()

	var buf bytes.Buffer
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			buf.Write(data)
			return buf.String()
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("log file %s never appeared", path)
	return ""
}
