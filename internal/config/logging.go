package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger from c and returns it.
// An unknown level keeps the current global level.
func (c Config) SetupLogging(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	// Loggers pulled from a context without one attached fall back to the global.
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}
