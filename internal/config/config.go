// Package config reads and writes the bplan TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDBPath    = "BPLAN_DB_PATH"
	EnvExportDir = "BPLAN_EXPORT_DIR"
	EnvLogLevel  = "BPLAN_LOG_LEVEL"
	EnvConfigDir = "BPLAN_CONFIG_DIR"
)

// Config holds all bplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Alerts     AlertsConfig     `toml:"alerts"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage locations.
type GeneralConfig struct {
	DBPath    string `toml:"db_path,omitempty"`
	ExportDir string `toml:"export_dir,omitempty"`
}

// AlertsConfig controls alert notifications.
type AlertsConfig struct {
	Notify bool `toml:"notify"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Alerts: AlertsConfig{
			Notify: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadEnv reads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetDBPath returns the database path from env var or config. An empty
// result means the store's default location.
func GetDBPath(cfg Config) string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	return cfg.General.DBPath
}

// GetExportDir returns the export directory from env var or config.
func GetExportDir(cfg Config) string {
	if d := os.Getenv(EnvExportDir); d != "" {
		return d
	}
	return cfg.General.ExportDir
}

// GetLogLevel returns the log level from env var or config.
func GetLogLevel(cfg Config) string {
	if l := os.Getenv(EnvLogLevel); l != "" {
		return l
	}
	return cfg.Log.Level
}
