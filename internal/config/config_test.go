package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultsOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STAFFBOARD_HOME", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultHoursPerDay, cfg.HoursPerDay)
	assert.Equal(t, DefaultUnderutilizedThreshold, cfg.UnderutilizedThreshold)

	_, err = os.Stat(filepath.Join(home, "config.toml"))
	assert.NoError(t, err, "config file should be written on first run")
	_, err = os.Stat(filepath.Join(home, "db"))
	assert.NoError(t, err, "db directory should exist")
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STAFFBOARD_HOME", home)

	content := "hours_per_day = 7\nunderutilized_threshold = 20\nlog_level = \"debug\"\nlog_format = \"json\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.HoursPerDay)
	assert.Equal(t, 20, cfg.UnderutilizedThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STAFFBOARD_HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("hours_per_day = 0\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hours_per_day")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "negative threshold", mutate: func(c *Config) { c.UnderutilizedThreshold = -1 }, wantErr: "underutilized_threshold"},
		{name: "too many hours", mutate: func(c *Config) { c.HoursPerDay = 25 }, wantErr: "hours_per_day"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log_level"},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
