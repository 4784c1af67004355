package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rsx.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	if !Enabled() {
		t.Fatal("Enabled() = false after Init")
	}
	Log("compiled %d file(s)", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "compiled 3 file(s)") {
		t.Errorf("log = %q, want message", data)
	}
}

func TestLog_NoopAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsx.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	Log("dropped")

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") {
		t.Error("message written after Close")
	}
}
