package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Tiliavir/mood-journal/internal/storage"
)

// Config is the root configuration for mj, stored in ~/.mj/config.json.
// The file supports single-line // comments for documentation purposes.
// Environment variables override file values.
type Config struct {
	// DataDir is where diary entries, drafts and statistics are stored.
	DataDir string        `json:"data_dir" env:"MJ_DATA_DIR"`
	Stats   StatsConfig   `json:"stats"`
	Log     LogConfig     `json:"log"`
	Session SessionConfig `json:"session"`
}

// StatsConfig selects the statistics persistence backend.
type StatsConfig struct {
	// Backend is "json" (stats.json) or "sqlite" (stats.sqlite).
	Backend string `json:"backend" env:"MJ_STATS_BACKEND" env-default:"json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"  env:"MJ_LOG_LEVEL"  env-default:"warn"`
	Format string `json:"format" env:"MJ_LOG_FORMAT" env-default:"text"`
}

// SessionConfig holds timer defaults.
type SessionConfig struct {
	RestMinutes       int     `json:"rest_minutes"       env:"MJ_REST_MINUTES"       env-default:"5"`
	MeditationMinutes int     `json:"meditation_minutes" env:"MJ_MEDITATION_MINUTES" env-default:"0"`
	DistanceRateKmh   float64 `json:"distance_rate_kmh"  env:"MJ_DISTANCE_RATE_KMH"  env-default:"0"`
}

// Stats backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// mj configuration – ~/.mj/config.json
//
// All settings are optional. Every value can also be set through the
// environment variable named next to it, which wins over this file.
{
  // Directory holding diary entries, the draft and statistics. (MJ_DATA_DIR)
  // Leave empty to use ~/.mj.
  "data_dir": "",

  "stats": {
    // "json" keeps statistics in stats.json, "sqlite" in stats.sqlite. (MJ_STATS_BACKEND)
    "backend": "json"
  },

  "log": {
    // debug, info, warn or error. (MJ_LOG_LEVEL)
    "level": "warn",
    // "text" or "json". (MJ_LOG_FORMAT)
    "format": "text"
  },

  "session": {
    // Length of a rest countdown. (MJ_REST_MINUTES)
    "rest_minutes": 5,
    // Length of a meditation countdown; 0 counts up until stopped. (MJ_MEDITATION_MINUTES)
    "meditation_minutes": 0,
    // Focus sessions of at least a minute also record distance at this speed.
    // 0 disables distance tracking. (MJ_DISTANCE_RATE_KMH)
    "distance_rate_kmh": 0
  }
}
`

// FilePath returns the config file location: $MJ_CONFIG or ~/.mj/config.json.
func FilePath() (string, error) {
	if p := os.Getenv("MJ_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file, creating it with annotated defaults on first
// run, then applies environment overrides and defaults for unset fields.
func Load() (*Config, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.DataDir == "" {
		if cfg.DataDir, err = storage.BaseDir(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed through defaults alone.
func (c *Config) Validate() error {
	c.Stats.Backend = strings.ToLower(strings.TrimSpace(c.Stats.Backend))
	switch c.Stats.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("stats.backend must be %q or %q (got %q)", BackendJSON, BackendSQLite, c.Stats.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}

	if c.Session.RestMinutes <= 0 {
		return fmt.Errorf("session.rest_minutes must be > 0 (got %d)", c.Session.RestMinutes)
	}
	if c.Session.MeditationMinutes < 0 {
		return fmt.Errorf("session.meditation_minutes must be >= 0 (got %d)", c.Session.MeditationMinutes)
	}
	if c.Session.DistanceRateKmh < 0 {
		return fmt.Errorf("session.distance_rate_kmh must be >= 0 (got %v)", c.Session.DistanceRateKmh)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
