package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mcqgen.log")

	for i, msg := range []string{"first run", "second run"} {
		l, err := New(path, "info")
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		l.Info(msg, zap.String("topic", "Physics"))
		l.Debug("hidden at info level")
		if err := l.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), text)
	}
	if !strings.Contains(lines[0], "info") || !strings.Contains(lines[0], "first run") {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"topic": "Physics"`) {
		t.Errorf("fields missing: %s", lines[1])
	}
	if strings.Contains(text, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	l, err := New(path, "debug")
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("visible")
	l.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "visible") {
		t.Errorf("debug entry missing: %s", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("", "")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("dropped")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
