package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmptyPathIsNop(t *testing.T) {
	log, err := New("  ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("dropped")
}

func TestWritesJSONToFile(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	path := filepath.Join(t.TempDir(), "logs", "herbview.log")
	log, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("catalog loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"catalog loaded"`) || !strings.Contains(string(data), `"severity":"DEBUG"`) {
		t.Fatalf("unexpected log output %q", data)
	}
}
