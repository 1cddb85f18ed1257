// Package config resolves the cyberdiag home directory and the optional
// configuration file controlling paths, logging and persistence behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime options of the CLI.
type Config struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// SaveDelay is the debounce delay applied to session persistence
	SaveDelay time.Duration `yaml:"save_delay"`

	// SessionFile overrides the session document path
	SessionFile string `yaml:"session_file"`

	// HistoryDB overrides the assessment history database path
	HistoryDB string `yaml:"history_db"`

	// NoColor disables colored terminal output
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		SaveDelay: time.Second,
	}
}

// Home returns the cyberdiag home directory, creating it if needed.
// Priority: CYBERDIAG_HOME, then the XDG data directory, then ~/.cyberdiag.
func Home() (string, error) {
	dir := os.Getenv("CYBERDIAG_HOME")
	if dir == "" {
		if xdg.DataHome != "" {
			dir = filepath.Join(xdg.DataHome, "cyberdiag")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory: %w", err)
			}
			dir = filepath.Join(home, ".cyberdiag")
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cyberdiag home %s: %w", dir, err)
	}
	return dir, nil
}

// Load reads config.yaml from the cyberdiag home. A missing file yields the
// defaults; a malformed file is an error so typos do not silently fall back.
func Load() (*Config, error) {
	home, err := Home()
	if err != nil {
		return nil, err
	}
	return loadFrom(filepath.Join(home, "config.yaml"))
}

// yamlConfig mirrors Config for YAML parsing, with durations as strings.
type yamlConfig struct {
	LogLevel    string `yaml:"log_level"`
	SaveDelay   string `yaml:"save_delay"`
	SessionFile string `yaml:"session_file"`
	HistoryDB   string `yaml:"history_db"`
	NoColor     bool   `yaml:"no_color"`
}

func loadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.SaveDelay != "" {
		delay, err := time.ParseDuration(yamlCfg.SaveDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid save_delay format %q: %w", yamlCfg.SaveDelay, err)
		}
		cfg.SaveDelay = delay
	}
	cfg.SessionFile = yamlCfg.SessionFile
	cfg.HistoryDB = yamlCfg.HistoryDB
	cfg.NoColor = yamlCfg.NoColor
	if cfg.SaveDelay <= 0 {
		cfg.SaveDelay = time.Second
	}
	return cfg, nil
}

// SessionPath returns the path of the persisted session document.
func (c *Config) SessionPath() (string, error) {
	if c.SessionFile != "" {
		return c.SessionFile, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "session.json"), nil
}

// HistoryPath returns the path of the assessment history database.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryDB != "" {
		return c.HistoryDB, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
