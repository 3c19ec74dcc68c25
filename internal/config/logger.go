package config

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger handed to every component of a run.
// Quiet mode raises the level to error so progress lines disappear while
// fatal conditions are still reported.
func NewLogger(out io.Writer, level string, quiet bool) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     out,
		NoColor: false,
	}).With().Timestamp().Logger()

	parsedLevel := zerolog.InfoLevel // default
	if level != "" {
		if l, err := zerolog.ParseLevel(level); err == nil {
			parsedLevel = l
		} else {
			logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'info'")
		}
	}
	if quiet && parsedLevel < zerolog.ErrorLevel {
		parsedLevel = zerolog.ErrorLevel
	}

	return logger.Level(parsedLevel)
}
