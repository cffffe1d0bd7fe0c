package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "2026-01-30T19:00:00", cfg.EventDate)
	assert.False(t, cfg.HasDatabase())
	assert.False(t, cfg.HasAdminPassword())
	assert.Equal(t, 45.0, cfg.AudioEnd)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "redis://localhost:6379/0")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("AUDIO_LOOP_START", "12.5")
	t.Setenv("AUDIO_LOOP_END", "70")
	t.Setenv("EVENT_TIMEZONE", "UTC")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.DatabaseURL)
	assert.True(t, cfg.HasAdminPassword())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12.5, cfg.AudioStart)
	assert.Equal(t, 70.0, cfg.AudioEnd)

	target, err := cfg.EventTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 30, 19, 0, 0, 0, time.UTC), target)
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	require.NoError(t, os.Unsetenv("ADMIN_PASSWORD"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADMIN_PASSWORD=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ADMIN_PASSWORD") })

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AdminPassword)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad event date", mutate: func(c *Config) { c.EventDate = "next friday" }, wantErr: "invalid event_date"},
		{name: "bad timezone", mutate: func(c *Config) { c.EventTimezone = "Mars/Olympus" }, wantErr: "invalid event_timezone"},
		{name: "empty audio loop", mutate: func(c *Config) { c.AudioStart, c.AudioEnd = 30, 30 }, wantErr: "audio loop"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }, wantErr: "port is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
