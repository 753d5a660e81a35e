package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("hidden debug message")
	Info("report built", "subjects", 3)
	Warn("backup rotation failed")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("Log file was not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "report built") || !strings.Contains(content, "subjects=3") {
		t.Errorf("expected info entry in log file, got %q", content)
	}
	if strings.Contains(content, "hidden debug message") {
		t.Error("debug entry written outside debug mode")
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	var stderr bytes.Buffer

	if err := Init(Config{Debug: true, ConfigDir: configDir, Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("fetching course", "id", "bio")
	if !strings.Contains(stderr.String(), "fetching course") {
		t.Errorf("expected debug entry mirrored to stderr, got %q", stderr.String())
	}
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/cfg")
	if got != filepath.Join("/tmp/cfg", "logs", "studylit.log") {
		t.Errorf("LogFile() = %q", got)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
