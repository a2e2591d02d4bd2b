package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"fitbuddy/internal/platform"
	"fitbuddy/internal/storage"
)

// AppName names the data directory and the single-instance lock.
const AppName = "fitbuddy"

// AppConfig is the process configuration shared by every host.
type AppConfig struct {
	User         string        `env:"FITBUDDY_USER" envDefault:"default"`
	Store        string        `env:"FITBUDDY_STORE" envDefault:"yaml"`
	DataDir      string        `env:"FITBUDDY_DATA_DIR"`
	LogFile      string        `env:"FITBUDDY_LOG_FILE"`
	LogLevel     string        `env:"FITBUDDY_LOG_LEVEL" envDefault:"info"`
	TickInterval time.Duration `env:"FITBUDDY_TICK_INTERVAL" envDefault:"1s"`
	Audio        bool          `env:"FITBUDDY_AUDIO" envDefault:"true"`
}

// Load parses the environment and fills an empty data directory with the
// OS default.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := platform.DataDir(AppName)
		if err != nil {
			return cfg, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// BindFlags registers flags that override the environment values already in
// cfg.
func (cfg *AppConfig) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&cfg.User, "user", "u", cfg.User, "preference record to load and save")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "preference backend: yaml, sqlite, fyne or memory")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for preferences")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write rotated JSON logs to this file")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "length of one timer second")
	flags.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play alert tones")
}

// Validate checks values the environment parser cannot.
func (cfg AppConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(cfg.User) == "" {
		errs = append(errs, storage.ErrEmptyUserKey)
	}
	switch storage.Kind(cfg.Store) {
	case storage.KindYAML, storage.KindSQLite, storage.KindFyne, storage.KindMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", cfg.Store))
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if cfg.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
