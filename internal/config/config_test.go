package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPath, cfg.DefaultPath)
	assert.Equal(t, DefaultLocale, cfg.Locale)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.IgnoreCase)
	assert.Empty(t, cfg.Hotkeys)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
default_path: /data/checks.csv
ignore_case: true
log:
  level: debug
  file: /tmp/checkreg.log
colors:
  int: "#00FF00"
hotkeys:
  Sort: ["S", "f2"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/checks.csv", cfg.DefaultPath)
	assert.True(t, cfg.IgnoreCase)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/checkreg.log", cfg.Log.File)
	assert.Equal(t, "#00FF00", cfg.Colors.Int)
	assert.Empty(t, cfg.Colors.Text)
	assert.Equal(t, []string{"S", "f2"}, cfg.Hotkeys["Sort"])
	assert.Equal(t, DefaultLocale, cfg.Locale)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\ndefault_path: a.csv\n")
	t.Setenv("CHECKREG_LOG_LEVEL", "warn")
	t.Setenv("CHECKREG_DEFAULT_PATH", "b.csv")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "b.csv", cfg.DefaultPath)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeConfig(t, "log: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
