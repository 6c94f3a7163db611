package logging

import (
	"bytes"
	stdlog "log"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("tool", "fer_parse").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"tool":"fer_parse"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestSetup(t *testing.T) {
	oldLogger := log.Logger
	t.Cleanup(func() {
		log.Logger = oldLogger
		stdlog.SetOutput(os.Stderr)
		stdlog.SetFlags(stdlog.LstdFlags)
	})

	tests := []struct {
		name    string
		level   string
		stdio   bool
		visible bool
	}{
		{name: "stdio info is silent", level: "info", stdio: true, visible: false},
		{name: "stdio debug logs", level: "debug", stdio: true, visible: true},
		{name: "server info logs", level: "info", stdio: false, visible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.level, tt.stdio, &buf)

			log.Info().Msg("global line")
			stdlog.Print("std line")

			if tt.visible {
				assert.Contains(t, buf.String(), "global line")
				assert.Contains(t, buf.String(), "std line")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
