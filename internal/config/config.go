package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const eventDateLayout = "2006-01-02T15:04:05"

type Config struct {
	DatabaseURL   string `koanf:"database_url"`
	AdminPassword string `koanf:"admin_password"`
	Port          string `koanf:"port"`
	LogLevel      string `koanf:"log_level"`
	MetricsUser   string `koanf:"metrics_user"`
	MetricsPass   string `koanf:"metrics_pass"`

	EventDate     string  `koanf:"event_date"`
	EventTimezone string  `koanf:"event_timezone"`
	AudioSrc      string  `koanf:"audio_src"`
	AudioStart    float64 `koanf:"audio_loop_start"`
	AudioEnd      float64 `koanf:"audio_loop_end"`

	APIURL    string `koanf:"api_url"`
	CachePath string `koanf:"cache_path"`
}

// knownKeys limits the environment provider to the variables we read.
var knownKeys = map[string]bool{
	"DATABASE_URL":     true,
	"ADMIN_PASSWORD":   true,
	"PORT":             true,
	"LOG_LEVEL":        true,
	"METRICS_USER":     true,
	"METRICS_PASS":     true,
	"EVENT_DATE":       true,
	"EVENT_TIMEZONE":   true,
	"AUDIO_SRC":        true,
	"AUDIO_LOOP_START": true,
	"AUDIO_LOOP_END":   true,
	"API_URL":          true,
	"CACHE_PATH":       true,
}

func DefaultConfig() *Config {
	return &Config{
		Port:          "3333",
		LogLevel:      "info",
		EventDate:     "2026-01-30T19:00:00",
		EventTimezone: "Local",
		AudioSrc:      "/assets/audio/background.mp3",
		AudioStart:    0,
		AudioEnd:      45,
		APIURL:        "http://localhost:3333",
	}
}

// Load reads an optional .env file, then overlays the process environment
// on top of the defaults. A missing DATABASE_URL is not an error here; the
// messages endpoint reports it per request.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug("No .env file found")
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(env.Provider("", ".", func(s string) string {
		if !knownKeys[s] {
			return ""
		}
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if _, err := c.EventTime(); err != nil {
		return err
	}

	if c.AudioStart < 0 || c.AudioEnd <= c.AudioStart {
		return fmt.Errorf("audio loop [%v, %v) is empty or negative", c.AudioStart, c.AudioEnd)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	return nil
}

// EventTime is the countdown target in the configured zone.
func (c *Config) EventTime() (time.Time, error) {
	loc := time.Local
	if c.EventTimezone != "" && c.EventTimezone != "Local" {
		l, err := time.LoadLocation(c.EventTimezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid event_timezone %q: %w", c.EventTimezone, err)
		}
		loc = l
	}

	t, err := time.ParseInLocation(eventDateLayout, c.EventDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event_date %q: %w", c.EventDate, err)
	}
	return t, nil
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasAdminPassword() bool {
	return c.AdminPassword != ""
}

// DefaultCachePath is where the CLI keeps its offline copy of the guestbook.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "engagement", "local.db")
}
