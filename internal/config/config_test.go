package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHomeHonorsEnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diag-home")
	t.Setenv("CYBERDIAG_HOME", dir)

	home, err := Home()
	if err != nil {
		t.Fatalf("Home() failed: %v", err)
	}
	if home != dir {
		t.Errorf("Home() = %s, want %s", home, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Home directory not created: %v", err)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CYBERDIAG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.SaveDelay != time.Second {
		t.Errorf("SaveDelay = %v, want 1s", cfg.SaveDelay)
	}
}

func TestLoadParsesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CYBERDIAG_HOME", home)

	content := "log_level: debug\nsave_delay: 250ms\nno_color: true\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.SaveDelay != 250*time.Millisecond {
		t.Errorf("SaveDelay = %v, want 250ms", cfg.SaveDelay)
	}
	if !cfg.NoColor {
		t.Error("Expected NoColor true")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CYBERDIAG_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("log_level: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a malformed config file")
	}
}

func TestSessionAndHistoryPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CYBERDIAG_HOME", home)

	cfg := DefaultConfig()
	sessionPath, err := cfg.SessionPath()
	if err != nil {
		t.Fatalf("SessionPath failed: %v", err)
	}
	if sessionPath != filepath.Join(home, "session.json") {
		t.Errorf("SessionPath = %s", sessionPath)
	}

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath failed: %v", err)
	}
	if historyPath != filepath.Join(home, "history.db") {
		t.Errorf("HistoryPath = %s", historyPath)
	}

	cfg.SessionFile = "/tmp/elsewhere.json"
	sessionPath, err = cfg.SessionPath()
	if err != nil {
		t.Fatalf("SessionPath failed: %v", err)
	}
	if sessionPath != "/tmp/elsewhere.json" {
		t.Errorf("Override ignored: %s", sessionPath)
	}
}
