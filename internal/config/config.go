package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration. Values come from a
// YAML file with environment-variable overrides (ENV > YAML > defaults).
type Config struct {
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`

	MonitorInterval int `yaml:"monitor_interval_ms" env:"SUPERCLIP_MONITOR_INTERVAL_MS" env-default:"500"`
	MaxItemSize     int `yaml:"max_item_size_bytes" env:"SUPERCLIP_MAX_ITEM_SIZE"       env-default:"10485760"`
}

// HistoryConfig holds persistence settings.
type HistoryConfig struct {
	// Path to the history document. Empty means the default
	// per-user location under the config directory.
	Path     string        `yaml:"path"     env:"SUPERCLIP_HISTORY_PATH"`
	Debounce time.Duration `yaml:"debounce" env:"SUPERCLIP_HISTORY_DEBOUNCE" env-default:"1500ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"SUPERCLIP_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the per-user config file and the
// environment. A missing file is not an error; defaults and env apply.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("SUPERCLIP_CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	}

	cfg.validate()

	return &cfg, nil
}

// HistoryPath resolves the location of the persisted history document.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// Dir returns the per-user configuration directory, creating it if
// needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".superclip")
	return dir, os.MkdirAll(dir, 0o755)
}

func (c *Config) validate() {
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = 500
	}
	if c.MaxItemSize <= 0 {
		c.MaxItemSize = 10 * 1024 * 1024
	}
	if c.History.Debounce <= 0 {
		c.History.Debounce = 1500 * time.Millisecond
	}
}
