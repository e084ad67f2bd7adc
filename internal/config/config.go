package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultHoursPerDay is the working-hours rate used to suggest assignment hours.
	DefaultHoursPerDay = 8

	// DefaultUnderutilizedThreshold flags people whose assigned hours fall below it.
	DefaultUnderutilizedThreshold = 8
)

type Config struct {
	HoursPerDay            int    `toml:"hours_per_day"`
	UnderutilizedThreshold int    `toml:"underutilized_threshold"`
	LogLevel               string `toml:"log_level"`
	LogFormat              string `toml:"log_format"`
	ExportsOutput          string `toml:"exports_output"`
}

func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		HoursPerDay:            DefaultHoursPerDay,
		UnderutilizedThreshold: DefaultUnderutilizedThreshold,
		LogLevel:               "info",
		LogFormat:              "text",
		ExportsOutput:          filepath.Join(homeDir, "Documents", "staffboard"),
	}
}

// StaffboardDir is ~/.staffboard unless STAFFBOARD_HOME points elsewhere.
func StaffboardDir() (string, error) {
	if dir := os.Getenv("STAFFBOARD_HOME"); dir != "" {
		return expandPath(dir), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".staffboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := StaffboardDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := StaffboardDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "staffboard.sqlite"), nil
}

func ErrorLogPath() (string, error) {
	dir, err := StaffboardDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "errors.log"), nil
}

func EnsureDirectories() error {
	dir, err := StaffboardDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// First run: write the defaults so users have a file to edit
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	cfg.ExportsOutput = expandPath(cfg.ExportsOutput)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Validate checks value ranges that would otherwise break hour suggestions or logging.
func (c *Config) Validate() error {
	if c.HoursPerDay <= 0 || c.HoursPerDay > 24 {
		return fmt.Errorf("hours_per_day must be between 1 and 24, got %d", c.HoursPerDay)
	}
	if c.UnderutilizedThreshold < 0 {
		return fmt.Errorf("underutilized_threshold must not be negative, got %d", c.UnderutilizedThreshold)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
