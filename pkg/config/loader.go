package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/fieldkit/pkg/logger"
)

// EnvPrefix is prepended to every variable name in Settings.
const EnvPrefix = "FIELDKIT_"

// Settings holds the process-level knobs of fieldkit tools.
type Settings struct {
	// ValidateOnWrite makes fields built from a schema validate on Set.
	ValidateOnWrite bool `env:"VALIDATE_ON_WRITE" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// SchemaPath is the default field schema file.
	SchemaPath string `env:"SCHEMA_PATH"`
}

// LoadEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. With no
// files it loads ./.env if present.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		// The default file is optional.
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses Settings from the environment and checks the values that
// have a fixed vocabulary.
func Load() (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return Settings{}, errors.Join(ErrParsingConfig, err)
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return Settings{}, fmt.Errorf("%w: %s%s: %w", ErrInvalidSetting, EnvPrefix, "LOG_LEVEL", err)
	}
	if _, err := logger.ParseFormat(s.LogFormat); err != nil {
		return Settings{}, fmt.Errorf("%w: %s%s: %w", ErrInvalidSetting, EnvPrefix, "LOG_FORMAT", err)
	}
	return s, nil
}

// Level returns the parsed log level, falling back to info.
func (s Settings) Level() slog.Level {
	l, _ := logger.ParseLevel(s.LogLevel)
	return l
}

// LoggerOptions translates the logging settings into logger options.
func (s Settings) LoggerOptions() []logger.Option {
	opts := []logger.Option{logger.WithLevel(s.Level())}
	if f, err := logger.ParseFormat(s.LogFormat); err == nil {
		opts = append(opts, logger.WithFormat(f))
	}
	return opts
}
