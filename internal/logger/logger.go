// Package logger builds the process-wide zerolog root logger. Level comes
// from LOG_LEVEL, output format from LOG_FORMAT (console by default, json
// for machine collection).
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs the root logger from the environment.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var w = os.Stderr
	logger := zerolog.New(w)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Str("service", "healthinsights").Logger()
}
