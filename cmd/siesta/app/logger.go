package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/entalpic/siesta/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag, then SIESTA_LOG_LEVEL or LOG_LEVEL
//  2. -v/--verbose (debug)
//  3. -q/--quiet (error)
//  4. warn
//
// User-facing output goes through the messenger, so diagnostics stay quiet
// unless asked for.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:   level,
		Format:  config.LogFormat,
		Output:  config.LogOutput,
		NoColor: config.NoColor,
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		return validateLogLevel(config.LogLevel)
	}
	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "error"
	case config.Verbose:
		return "debug"
	case config.Quiet:
		return "error"
	}
	return "warn"
}

// validateLogLevel returns level if zerolog knows it, "warn" otherwise.
func validateLogLevel(level string) string {
	if _, err := zerolog.ParseLevel(level); err != nil || level == "" {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"warn\"\n", level)
		return "warn"
	}
	return level
}
