package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/teambuilder/internal/testutil"
)

func writeRunConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teambuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("TEAMBUILDER_CONFIG", path)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestRun_PrintsRoster(t *testing.T) {
	writeRunConfig(t, `
log_level: error
ruleset: ../../data/ruleset.yaml
species: [Pelipper]
format:
  team_size: 1
`)
	var out bytes.Buffer
	require.NoError(t, run(testutil.ContextWithTimeout(t, time.Minute), &out))

	assert.Contains(t, out.String(), "1. Pelipper @ ")
	assert.Contains(t, out.String(), "Ability: ")
}

func TestRun_PrintsRosterBeforeStorageFailure(t *testing.T) {
	writeRunConfig(t, `
log_level: error
ruleset: ../../data/ruleset.yaml
species: [Pelipper]
format:
  team_size: 1
database:
  enabled: true
  host: 127.0.0.1
  port: 1
`)
	var out bytes.Buffer
	err := run(testutil.ContextWithTimeout(t, time.Minute), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to database")

	assert.Contains(t, out.String(), "1. Pelipper @ ", "built roster is shown even though saving failed")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
