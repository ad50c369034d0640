// Package config loads runtime settings from an optional .env file and the
// environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variable names
const (
	EnvDBDriver         = "EXAMDESK_DB_DRIVER"
	EnvDBDSN            = "EXAMDESK_DB_DSN"
	EnvLogLevel         = "EXAMDESK_LOG_LEVEL"
	EnvBackupDir        = "EXAMDESK_BACKUP_DIR"
	EnvBackupInterval   = "EXAMDESK_BACKUP_INTERVAL"
	EnvBackupFormat     = "EXAMDESK_BACKUP_FORMAT"
	EnvDefaultPassMarks = "EXAMDESK_DEFAULT_PASS_MARKS"
)

// Config holds the runtime settings
type Config struct {
	DBDriver         string        `validate:"required,oneof=sqlite3 postgres"`
	DBDSN            string        `validate:"required"`
	LogLevel         string        `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	BackupDir        string        `validate:"required"`
	BackupInterval   time.Duration `validate:"gt=0"`
	BackupFormat     string        `validate:"required,oneof=json yaml"`
	DefaultPassMarks float64       `validate:"gte=0,lte=100"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		DBDriver:         "sqlite3",
		DBDSN:            "data/examdesk.db",
		LogLevel:         "info",
		BackupDir:        "backups",
		BackupInterval:   time.Hour,
		BackupFormat:     "json",
		DefaultPassMarks: 50,
	}
}

// Load reads envFile when it exists, applies the environment over the
// defaults and validates the result. Variables already set in the process
// environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "failed to load %s", envFile)
		}
	}

	cfg := DefaultConfig()
	setString(&cfg.DBDriver, EnvDBDriver)
	setString(&cfg.DBDSN, EnvDBDSN)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.BackupDir, EnvBackupDir)
	setString(&cfg.BackupFormat, EnvBackupFormat)

	if v := os.Getenv(EnvBackupInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvBackupInterval)
		}
		cfg.BackupInterval = d
	}
	if v := os.Getenv(EnvDefaultPassMarks); v != "" {
		marks, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvDefaultPassMarks)
		}
		cfg.DefaultPassMarks = marks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
