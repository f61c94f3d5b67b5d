// Package config loads fieldkit settings from environment variables.
//
// It wraps `github.com/joho/godotenv` for optional .env files and
// `github.com/caarlos0/env/v11` for parsing. All variables share the
// FIELDKIT_ prefix:
//
//	FIELDKIT_VALIDATE_ON_WRITE  validate values on Set (default false)
//	FIELDKIT_LOG_LEVEL          debug, info, warn or error (default info)
//	FIELDKIT_LOG_FORMAT         text or json (default text)
//	FIELDKIT_SCHEMA_PATH        default schema file for fieldcheck
//
// # Usage
//
//	if err := config.LoadEnv(); err != nil {
//	    return err
//	}
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	log := logger.New(settings.LoggerOptions()...)
//
// # Error Handling
//
// Errors wrap one of the sentinels ErrParsingConfig, ErrLoadingEnvFile or
// ErrInvalidSetting and can be matched with errors.Is.
package config
