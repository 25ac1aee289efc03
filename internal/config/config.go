// Package config loads the optional alarmnote.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
)

// EnvDBConnection overrides the database setting when set
const EnvDBConnection = "ALARMNOTE_DB_CONNECTION"

// Duration is a time.Duration written as a Go duration string ("25s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database          string   `toml:"database"`
	Debug             bool     `toml:"debug"`
	BackgroundBudget  Duration `toml:"background_budget"`
	DeliverSchedule   string   `toml:"deliver_schedule"`
	ReconcileSchedule string   `toml:"reconcile_schedule"`
	DefaultTitle      string   `toml:"default_title"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Database:          constants.DefaultConfigPath,
		BackgroundBudget:  Duration{constants.DefaultBackgroundBudget},
		DeliverSchedule:   constants.DefaultDeliverSchedule,
		ReconcileSchedule: constants.DefaultReconcileSchedule,
		DefaultTitle:      constants.DefaultNotificationTitle,
	}
}

// Load reads path over the defaults. A missing file is not an error. The
// ALARMNOTE_DB_CONNECTION environment variable replaces the database setting.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}

	md, err := toml.DecodeFile(expanded, &cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("No config file, using defaults", "path", expanded)
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", expanded, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			logger.Warn("Ignoring unknown config keys", "path", expanded, "keys", strings.Join(keys, ", "))
		}
	}

	if v := os.Getenv(EnvDBConnection); v != "" {
		cfg.Database = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks value ranges and cron expressions
func (c Config) Validate() error {
	if c.Database == "" {
		return errors.New("database must not be empty")
	}
	if c.BackgroundBudget.Duration <= 0 {
		return fmt.Errorf("background_budget must be positive, got %s", c.BackgroundBudget)
	}
	if _, err := ParseSchedule(c.DeliverSchedule); err != nil {
		return fmt.Errorf("deliver_schedule: %w", err)
	}
	if _, err := ParseSchedule(c.ReconcileSchedule); err != nil {
		return fmt.Errorf("reconcile_schedule: %w", err)
	}
	return nil
}

// ParseSchedule parses a five-field cron expression or a descriptor such as
// "@every 1m" or "@hourly".
func ParseSchedule(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return schedule, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir returns the directory holding the config file, used for logs
func Dir(path string) string {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "."
	}
	return filepath.Dir(expanded)
}
