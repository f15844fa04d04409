// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the resolved configuration.
type Config struct {
	// Output settings
	Format string `json:"format"`

	// Limit caps the number of suggestions shown (0 = no cap).
	Limit int `json:"limit"`

	// History settings
	CacheDir string `json:"cache_dir"`
	History  bool   `json:"history"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// FlagOverrides holds command-line flag values.
type FlagOverrides struct {
	Format   string
	Limit    int
	CacheDir string
}

// Default returns the default configuration.
func Default() *Config {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}

	return &Config{
		Format:   "auto",
		Limit:    0,
		CacheDir: filepath.Join(cacheDir, "whenq"),
		History:  true,
		Sources:  make(map[string]string),
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > global file > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	loadFromFile(cfg, GlobalConfigPath(), SourceGlobal)
	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	return cfg, nil
}

func loadFromFile(cfg *Config, path string, source Source) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return // File doesn't exist, skip
	}

	var fileCfg map[string]any
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return
	}

	if v, ok := fileCfg["format"].(string); ok && v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(source)
	}
	if v, ok := fileCfg["limit"].(float64); ok && v == float64(int(v)) && v >= 0 {
		cfg.Limit = int(v)
		cfg.Sources["limit"] = string(source)
	}
	if v, ok := fileCfg["cache_dir"].(string); ok && v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(source)
	}
	if v, ok := fileCfg["history"].(bool); ok {
		cfg.History = v
		cfg.Sources["history"] = string(source)
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("WHENQ_FORMAT"); v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(SourceEnv)
	}
	if v := os.Getenv("WHENQ_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Limit = n
			cfg.Sources["limit"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("WHENQ_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(SourceEnv)
	}
	if v := os.Getenv("WHENQ_HISTORY"); v != "" {
		if b, ok := parseEnvBool(v); ok {
			cfg.History = b
			cfg.Sources["history"] = string(SourceEnv)
		}
	}
}

// parseEnvBool parses a boolean environment variable strictly.
// Unrecognized values are ignored rather than coerced.
func parseEnvBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.Format != "" {
		cfg.Format = o.Format
		cfg.Sources["format"] = string(SourceFlag)
	}
	if o.Limit > 0 {
		cfg.Limit = o.Limit
		cfg.Sources["limit"] = string(SourceFlag)
	}
	if o.CacheDir != "" {
		cfg.CacheDir = o.CacheDir
		cfg.Sources["cache_dir"] = string(SourceFlag)
	}
}

// Keys lists the settable configuration keys for `whenq config`.
func Keys() []string {
	return []string{"format", "limit", "cache_dir", "history"}
}

// Get returns the current value for a key as a display string.
func (cfg *Config) Get(key string) (string, bool) {
	switch key {
	case "format":
		return cfg.Format, true
	case "limit":
		return strconv.Itoa(cfg.Limit), true
	case "cache_dir":
		return cfg.CacheDir, true
	case "history":
		return strconv.FormatBool(cfg.History), true
	}
	return "", false
}

// Set validates and persists a key into the global config file. Only the
// given key is touched; other persisted values are left as they are.
func Set(key, value string) error {
	raw := map[string]any{}
	if data, err := os.ReadFile(GlobalConfigPath()); err == nil { //nolint:gosec // G304: trusted path
		_ = json.Unmarshal(data, &raw)
	}

	switch key {
	case "format":
		switch value {
		case "auto", "json", "quiet", "styled", "count":
			raw[key] = value
		default:
			return fmt.Errorf("invalid format %q (want auto, json, quiet, styled, or count)", value)
		}
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid limit %q (want a non-negative integer)", value)
		}
		raw[key] = n
	case "cache_dir":
		raw[key] = value
	case "history":
		b, ok := parseEnvBool(value)
		if !ok {
			return fmt.Errorf("invalid history %q (want true or false)", value)
		}
		raw[key] = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := os.MkdirAll(GlobalConfigDir(), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(GlobalConfigPath(), append(data, '\n'), 0o600)
}

// GlobalConfigDir returns the global config directory path.
func GlobalConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "whenq")
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.json")
}
