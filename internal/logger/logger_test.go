package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWithFileOutput(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "atlasgen.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Compress:   false,
	}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Sugar.Infow("packing warning", "kind", "decode_failure", "path", "broken.png")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "decode_failure") {
		t.Errorf("log entry missing fields: %s", data)
	}
}

func TestInit_NoFile(t *testing.T) {
	if err := Init("info", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Log == nil || Sugar == nil {
		t.Fatal("globals not set")
	}
	Sync()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"error", "error"},
		{"info", "info"},
		{"bogus", "info"}, // unknown levels fall back to info
		{"", "info"},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDebugLevelFiltering(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "filtered.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	if err := InitWithFileConfig("warn", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Sugar.Debugw("should be filtered")
	Sugar.Infow("should be filtered too")
	Sugar.Warnw("should appear")
	Sync()

	data, _ := os.ReadFile(logFile)
	if strings.Contains(string(data), "filtered") {
		t.Errorf("below-level entries leaked into log: %s", data)
	}
	if !strings.Contains(string(data), "should appear") {
		t.Errorf("warn entry missing from log: %s", data)
	}
}
