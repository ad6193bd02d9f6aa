package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Log level constants
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Log type constants
const (
	TypeConsole = "console"
	TypeFile    = "file"
	TypeDiscard = "discard"
)

// EnvPrefix prefixes environment overrides read by LoadSettings,
// e.g. RSA_LOG_LEVEL=debug.
const EnvPrefix = "RSA_LOG"

// Settings holds the logging configuration: level, sink type and, for file
// sinks, the rotation policy.
type Settings struct {
	Level      string `mapstructure:"level" validate:"required,oneof=debug info warning error"`
	Type       string `mapstructure:"type" validate:"required,oneof=console file discard"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// ErrInvalidSettings is wrapped by every error Validate returns.
var ErrInvalidSettings = errors.New("invalid logging settings")

// Rotation bounds accepted for file sinks.
const (
	maxFileSizeMB  = 100
	maxFileBackups = 10
	maxFileAgeDays = 365
)

// Validate reports the first field of s that cannot configure a logger.
func (s *Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: no settings given", ErrInvalidSettings)
	}

	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if s.Type != TypeFile {
		return nil
	}

	switch {
	case s.FilePath == "":
		return fmt.Errorf("%w: file sink needs file_path", ErrInvalidSettings)
	case s.MaxSize < 1 || s.MaxSize > maxFileSizeMB:
		return fmt.Errorf("%w: max_size %d outside 1..%d MB", ErrInvalidSettings, s.MaxSize, maxFileSizeMB)
	case s.MaxBackups < 1 || s.MaxBackups > maxFileBackups:
		return fmt.Errorf("%w: max_backups %d outside 1..%d", ErrInvalidSettings, s.MaxBackups, maxFileBackups)
	case s.MaxAge < 1 || s.MaxAge > maxFileAgeDays:
		return fmt.Errorf("%w: max_age %d outside 1..%d days", ErrInvalidSettings, s.MaxAge, maxFileAgeDays)
	}
	return nil
}

// DefaultSettings logs info and above to the console.
func DefaultSettings() *Settings {
	return &Settings{
		Level: LevelInfo,
		Type:  TypeConsole,
	}
}

// LoadSettings reads settings from a JSON, YAML or TOML file. Environment
// variables prefixed with EnvPrefix override file values. Missing keys keep
// DefaultSettings and a ten-megabyte, three-backup, 28-day rotation.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("level", defaults.Level)
	v.SetDefault("type", defaults.Type)
	v.SetDefault("file_path", "")
	v.SetDefault("max_size", 10)
	v.SetDefault("max_backups", 3)
	v.SetDefault("max_age", 28)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read logging config: %w", err)
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("decode logging config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}
