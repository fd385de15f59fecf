// Package logging provides structured diagnostic logging for siesta using zerolog.
// User-facing messages go through pkg/alerts; this package is for the
// operator-level trail: what was fetched, copied, skipped or backed up.
//
// Example usage:
//
//	log := logging.Component("reconcile")
//	log.Debug().Str("path", dest).Msg("copying file")
//
//	ctx := logging.WithLogger(context.Background(), &log)
//	logging.FromContext(ctx).Info().Msg("fetched boilerplate")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// defaultLogger is what packages log to when nobody handed them a logger.
// The CLI replaces it once flags are parsed.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig reads the logger settings available before any flag parsing.
func envConfig() *Config {
	level := os.Getenv("SIESTA_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" && os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	return &Config{
		Level:   level,
		Format:  os.Getenv("LOG_FORMAT"),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// Component returns a child of the default logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

// Warn starts a warning on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
