package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return NewLoggerTo(os.Stdout, env)
}

// NewLoggerTo is NewLogger with an explicit sink; the CLI logs to stderr so
// stdout stays clean for command output.
func NewLoggerTo(w io.Writer, env string) zerolog.Logger {
	if isDev(env) {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// LogLevel picks the global level: an explicit LOG_LEVEL wins, otherwise
// debug in dev and info elsewhere.
func LogLevel(env, name string) zerolog.Level {
	if name != "" {
		if l, err := zerolog.ParseLevel(name); err == nil && l != zerolog.NoLevel {
			return l
		}
	}
	if isDev(env) {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func isDev(env string) bool { return env == "dev" || env == "development" }
