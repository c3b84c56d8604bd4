package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes a new zerolog.Logger tagged with the service name.
// 'devMode' enables human-readable console logging. An unparsable level
// falls back to info.
func New(devMode bool, level, service string) zerolog.Logger {
	var logger zerolog.Logger

	if devMode {
		// Human-readable, colorful output for local development
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(consoleWriter)
	} else {
		// Efficient JSON output for production
		logger = zerolog.New(os.Stderr)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return logger.Level(lvl).With().Timestamp().Str("service", service).Logger()
}
