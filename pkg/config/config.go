package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	xdgAppName = "todo"
	configFile = "config.json"

	defaultDataFile = "tasks.json"
	defaultLogLevel = "warn"
)

type Config struct {
	// DataFile is the backing file. Relative paths resolve against the
	// working directory.
	DataFile string `json:"data_file"`
	LogLevel string `json:"log_level"`
	LogJSON  bool   `json:"log_json"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{DataFile: defaultDataFile, LogLevel: defaultLogLevel}
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

// Load reads the config from the user's config directory.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults; on
// any other error the defaults are returned together with the error.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return Default(), fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.DataFile = strings.TrimSpace(cfg.DataFile)
	if cfg.DataFile == "" {
		cfg.DataFile = defaultDataFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}
