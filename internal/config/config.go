// Package config loads application settings from a YAML file and
// LAYOUTCONV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"layout-converter/internal/coerce"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// LAYOUTCONV_STORAGE_BACKEND=sqlite.
const EnvPrefix = "LAYOUTCONV"

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Settings holds all configuration for the application.
type Settings struct {
	Logging    LoggingSettings    `mapstructure:"logging"`
	Storage    StorageSettings    `mapstructure:"storage"`
	Coercion   CoercionSettings   `mapstructure:"coercion"`
	Conversion ConversionSettings `mapstructure:"conversion"`
	Metrics    MetricsSettings    `mapstructure:"metrics"`
}

// LoggingSettings holds logging configuration.
type LoggingSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// StorageSettings selects and configures the store backend.
type StorageSettings struct {
	Backend string         `mapstructure:"backend" validate:"oneof=file redis sqlite"`
	Dir     string         `mapstructure:"dir" validate:"required_if=Backend file"`
	Redis   RedisSettings  `mapstructure:"redis"`
	SQLite  SQLiteSettings `mapstructure:"sqlite"`
}

// RedisSettings holds Redis configuration.
type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

// SQLiteSettings holds SQLite configuration.
type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

// CoercionSettings holds value coercion policy.
type CoercionSettings struct {
	// MaskPolicy maps data type names to user, keep or remove.
	MaskPolicy map[string]string `mapstructure:"mask_policy" validate:"dive,oneof=user keep remove"`
}

// ConversionSettings holds engine limits.
type ConversionSettings struct {
	WarningLimit int `mapstructure:"warning_limit" validate:"gte=0"`
}

// MetricsSettings holds metrics export configuration.
type MetricsSettings struct {
	// Textfile is where metrics are written after a run; empty disables.
	Textfile string `mapstructure:"textfile"`
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.dir", "./layouts")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "layoutconv")
	v.SetDefault("storage.sqlite.path", "./layout-converter.db")
	v.SetDefault("coercion.mask_policy", map[string]string{"numeric": string(coerce.MaskKeep)})
	v.SetDefault("conversion.warning_limit", 500)
	v.SetDefault("metrics.textfile", "")
}

// Load reads settings. An empty path searches layout-converter.yaml in the
// working directory and ./config; a missing file is not an error then.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("layout-converter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	switch s.Storage.Backend {
	case BackendRedis:
		if s.Storage.Redis.Addr == "" {
			return errors.New("invalid settings: storage.redis.addr is required for the redis backend")
		}
	case BackendSQLite:
		if s.Storage.SQLite.Path == "" {
			return errors.New("invalid settings: storage.sqlite.path is required for the sqlite backend")
		}
	}

	if _, err := s.MaskPolicy(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}

// MaskPolicy returns the configured mask policy.
func (s *Settings) MaskPolicy() (coerce.MaskPolicy, error) {
	return coerce.ParseMaskPolicy(s.Coercion.MaskPolicy)
}
