package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnv(t *testing.T) (configDir string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("WHENQ_FORMAT", "")
	t.Setenv("WHENQ_LIMIT", "")
	t.Setenv("WHENQ_CACHE_DIR", "")
	t.Setenv("WHENQ_HISTORY", "")
	return filepath.Join(dir, "whenq")
}

func writeGlobalConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600))
}

func TestDefault(t *testing.T) {
	setupTestEnv(t)

	cfg := Default()
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, 0, cfg.Limit)
	assert.True(t, cfg.History)
	assert.Contains(t, cfg.CacheDir, "whenq")
}

func TestLoadDefaults(t *testing.T) {
	setupTestEnv(t)

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Format)
	assert.Empty(t, cfg.Sources)
}

func TestLoadGlobalFile(t *testing.T) {
	dir := setupTestEnv(t)
	writeGlobalConfig(t, dir, `{"format": "json", "limit": 3, "history": false}`)

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.Limit)
	assert.False(t, cfg.History)
	assert.Equal(t, string(SourceGlobal), cfg.Sources["format"])
	assert.Equal(t, string(SourceGlobal), cfg.Sources["limit"])
}

func TestLoadMalformedGlobalFile(t *testing.T) {
	dir := setupTestEnv(t)
	writeGlobalConfig(t, dir, `{not json`)

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := setupTestEnv(t)
	writeGlobalConfig(t, dir, `{"format": "json", "limit": 3}`)
	t.Setenv("WHENQ_FORMAT", "quiet")
	t.Setenv("WHENQ_LIMIT", "7")
	t.Setenv("WHENQ_HISTORY", "false")

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "quiet", cfg.Format)
	assert.Equal(t, 7, cfg.Limit)
	assert.False(t, cfg.History)
	assert.Equal(t, string(SourceEnv), cfg.Sources["format"])
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("WHENQ_FORMAT", "quiet")

	cfg, err := Load(FlagOverrides{Format: "styled", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "styled", cfg.Format)
	assert.Equal(t, 2, cfg.Limit)
	assert.Equal(t, string(SourceFlag), cfg.Sources["format"])
	assert.Equal(t, string(SourceFlag), cfg.Sources["limit"])
}

func TestLoadIgnoresBadEnvValues(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("WHENQ_LIMIT", "not-a-number")
	t.Setenv("WHENQ_HISTORY", "maybe")

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Limit)
	assert.True(t, cfg.History)
}

func TestParseEnvBool(t *testing.T) {
	tests := []struct {
		input string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"false", false, true},
		{"0", false, true},
		{"yes", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		value, ok := parseEnvBool(tt.input)
		assert.Equal(t, tt.ok, ok, "parseEnvBool(%q) ok", tt.input)
		assert.Equal(t, tt.value, value, "parseEnvBool(%q) value", tt.input)
	}
}

func TestGet(t *testing.T) {
	setupTestEnv(t)
	cfg := Default()
	cfg.Limit = 5

	v, ok := cfg.Get("format")
	assert.True(t, ok)
	assert.Equal(t, "auto", v)

	v, ok = cfg.Get("limit")
	assert.True(t, ok)
	assert.Equal(t, "5", v)

	v, ok = cfg.Get("history")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok = cfg.Get("nope")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	setupTestEnv(t)

	require.NoError(t, Set("format", "json"))
	require.NoError(t, Set("limit", "4"))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 4, cfg.Limit)
}

func TestSetPreservesOtherKeys(t *testing.T) {
	setupTestEnv(t)

	require.NoError(t, Set("format", "json"))
	require.NoError(t, Set("history", "false"))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.History)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	setupTestEnv(t)

	assert.Error(t, Set("format", "fancy"))
	assert.Error(t, Set("limit", "-1"))
	assert.Error(t, Set("limit", "lots"))
	assert.Error(t, Set("history", "maybe"))
	assert.Error(t, Set("nope", "x"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"format", "limit", "cache_dir", "history"}, Keys())
}
