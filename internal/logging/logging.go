// Package logging builds the zerolog loggers used across the module.
package logging

import (
	"io"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a configured level name to a zerolog level. Unknown
// names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a JSON logger writing to w at the given level.
func New(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewConsole returns a human-readable logger writing to w.
func NewConsole(level string, w io.Writer) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
}

// Setup installs the global logger and routes the standard library logger
// through it. In stdio mode stdout carries the MCP protocol, so logs go to
// w and are discarded entirely unless the level is debug.
func Setup(level string, stdio bool, w io.Writer) zerolog.Logger {
	logger := NewConsole(level, w)
	if stdio && ParseLevel(level) != zerolog.DebugLevel {
		logger = zerolog.Nop()
	}

	log.Logger = logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)

	return logger
}
