//go:build !integration

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_LevelParsing(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "not-a-level", want: zerolog.InfoLevel},
		{level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInit_OutputModes(t *testing.T) {
	// Both modes must produce a usable logger; the JSON one is what the
	// service runs with.
	Init("info", false)
	jsonLogger := Logger()
	assert.NotNil(t, jsonLogger)

	Init("info", true)
	prettyLogger := Logger()
	assert.NotNil(t, prettyLogger)
}

func TestLogger_ReflectsGlobal(t *testing.T) {
	Init("warn", false)

	log := Logger()
	assert.NotNil(t, log)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
