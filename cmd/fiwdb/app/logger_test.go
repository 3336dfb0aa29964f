package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default", Config{}, "info"},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"quiet wins over verbose", Config{Verbose: true, Quiet: true}, "warn"},
		{"override wins over verbose", Config{Verbose: true, LogLevelOverride: "error"}, "error"},
		{"invalid override", Config{LogLevelOverride: "loud"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.cfg))
		})
	}

	t.Run("configured level", func(t *testing.T) {
		cfg := Config{}
		cfg.LogLevel = "trace"
		assert.Equal(t, "trace", determineLogLevel(&cfg))

		cfg.Verbose = true
		assert.Equal(t, "debug", determineLogLevel(&cfg), "-v beats the configured level")
	})
}
