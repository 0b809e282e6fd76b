// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file.
const (
	EnvPort      = "UPLOADER_PORT"
	EnvBaud      = "UPLOADER_BAUD"
	EnvAssetsDir = "UPLOADER_ASSETS_DIR"
	EnvLogLevel  = "UPLOADER_LOG_LEVEL"
)

// Load parses a config file. The format follows the extension: .toml, otherwise YAML.
// An empty path yields a zero Config (all defaults after Normalize).
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment values onto cfg.
// getenv is os.Getenv in production.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	u := &cfg.Uploader

	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		u.Port = v
	}
	if v := strings.TrimSpace(getenv(EnvBaud)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvBaud, v, err)
		}
		u.BaudRate = n
	}
	if v := strings.TrimSpace(getenv(EnvAssetsDir)); v != "" {
		u.AssetsDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		u.Log.Level = v
	}

	return nil
}
