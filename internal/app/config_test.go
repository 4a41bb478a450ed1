package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("server:\n  run-mode: debug\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, realpath, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if realpath == "" {
		t.Error("Expected non-empty config realpath")
	}

	// 显式值覆盖默认值
	if cfg.Server.RunMode != "debug" {
		t.Errorf("Expected run-mode debug, got %s", cfg.Server.RunMode)
	}

	// 未设置的字段回填默认值
	if cfg.Server.HttpPort != "127.0.0.1:9200" {
		t.Errorf("Expected default http-port, got %s", cfg.Server.HttpPort)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %s", cfg.Database.Type)
	}
	if cfg.History.MaxEntries != 200 {
		t.Errorf("Expected default max-entries 200, got %d", cfg.History.MaxEntries)
	}
	if !cfg.Monitor.IsEnable {
		t.Error("Expected monitor enabled by default")
	}
	if cfg.Export.IsEnable {
		t.Error("Expected export disabled by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	content := `
history:
  max-entries: 50
  poll-interval: 2s
  max-content-size: 1024
  trim-interval: 1m
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, _, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.History.MaxEntries != 50 {
		t.Errorf("Expected max-entries 50, got %d", cfg.History.MaxEntries)
	}
	if cfg.History.MaxContentSize != 1024 {
		t.Errorf("Expected max-content-size 1024, got %d", cfg.History.MaxContentSize)
	}
	if got := cfg.GetPollInterval(); got != 2*time.Second {
		t.Errorf("Expected poll interval 2s, got %v", got)
	}
	if got := cfg.GetTrimInterval(); got != time.Minute {
		t.Errorf("Expected trim interval 1m, got %v", got)
	}
}

func TestGetPollIntervalFallback(t *testing.T) {
	cfg := &AppConfig{}
	cfg.History.PollInterval = "not-a-duration"

	if got := cfg.GetPollInterval(); got != 500*time.Millisecond {
		t.Errorf("Expected fallback poll interval 500ms, got %v", got)
	}

	cfg.History.TrimInterval = ""
	if got := cfg.GetTrimInterval(); got != 10*time.Minute {
		t.Errorf("Expected fallback trim interval 10m, got %v", got)
	}
}

func TestConfigSave(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("history:\n  max-entries: 100\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, _, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.History.MaxEntries = 77
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v, file: %s", err, cfg.File)
	}

	updatedData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read updated config file: %v", err)
	}

	var updated AppConfig
	if err := yaml.Unmarshal(updatedData, &updated); err != nil {
		t.Fatalf("Failed to unmarshal updated config: %v", err)
	}
	if updated.History.MaxEntries != 77 {
		t.Errorf("Expected max-entries 77, got %d", updated.History.MaxEntries)
	}
}
