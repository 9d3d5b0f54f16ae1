// Package config loads checkreg settings.
// Precedence (highest to lowest): env vars > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileName is looked up in the user's home directory.
const FileName = ".checkreg.yaml"

// EnvPrefix prefixes environment overrides, e.g. CHECKREG_LOG_LEVEL.
const EnvPrefix = "CHECKREG_"

const (
	DefaultPath     = "regdata.csv"
	DefaultLocale   = "en"
	DefaultLogLevel = "info"
)

type Config struct {
	// DefaultPath is what Load Data opens before falling back to the
	// file chooser.
	DefaultPath string `koanf:"default_path"`
	Locale      string `koanf:"locale"`
	IgnoreCase  bool   `koanf:"ignore_case"`

	Log     LogConfig           `koanf:"log"`
	Colors  ColorConfig         `koanf:"colors"`
	Hotkeys map[string][]string `koanf:"hotkeys"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	// File receives log output. Empty discards it, since the terminal
	// belongs to the grid.
	File string `koanf:"file"`
}

type ColorConfig struct {
	Int  string `koanf:"int"`
	Text string `koanf:"text"`
}

func defaults() map[string]any {
	return map[string]any{
		"default_path": DefaultPath,
		"locale":       DefaultLocale,
		"ignore_case":  false,
		"log.level":    DefaultLogLevel,
		"log.file":     "",
	}
}

// DefaultFile returns ~/.checkreg.yaml, or "" if there is no home directory.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads path if it exists. A missing file is not an error; it yields
// the defaults plus any environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	// CHECKREG_LOG_LEVEL -> log.level, CHECKREG_DEFAULT_PATH -> default_path.
	envCb := func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if rest, ok := strings.CutPrefix(key, "log_"); ok {
			return "log." + rest
		}
		if rest, ok := strings.CutPrefix(key, "colors_"); ok {
			return "colors." + rest
		}
		return key
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envCb), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
