// Package config resolves nvr settings from defaults, a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	HistoryPath  string `yaml:"history"`
	Backend      string `yaml:"backend"`
	HistoryLimit int    `yaml:"history_limit"`
	Currency     string `yaml:"currency"`
}

// Dir is the per-user nvr directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nvr")
}

// DefaultHistoryPath is the history location used when none is configured.
// Each backend gets its own file so switching backends never reads the
// other's format.
func DefaultHistoryPath(backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(Dir(), "nvr_records.db")
	}
	return filepath.Join(Dir(), "nvr_records.json")
}

// Default returns the built-in configuration. HistoryPath is left empty
// until Resolve picks one for the chosen backend.
func Default() *Config {
	return &Config{
		Backend:      BackendJSON,
		HistoryLimit: 20,
		Currency:     "¥",
	}
}

// Path is the config file location: $NVR_CONFIG or ~/.nvr/config.yaml.
func Path() string {
	if env := os.Getenv("NVR_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.HistoryPath = getEnv("NVR_HISTORY", cfg.HistoryPath)
	cfg.Backend = getEnv("NVR_BACKEND", cfg.Backend)
	cfg.HistoryLimit = getEnvInt("NVR_HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.Currency = getEnv("NVR_CURRENCY", cfg.Currency)

	return cfg, nil
}

// Resolve fills in settings that depend on others. Call it after all
// overrides are applied.
func (c *Config) Resolve() {
	if c.HistoryPath == "" {
		c.HistoryPath = DefaultHistoryPath(c.Backend)
	}
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.HistoryPath == "" {
		return fmt.Errorf("history path cannot be empty")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (valid: json, sqlite)", c.Backend)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
