// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   slog.Level
		enabled bool
	}{
		{"none", 0, false},
		{"error", slog.LevelError, true},
		{"warn", slog.LevelWarn, true},
		{"info", slog.LevelInfo, true},
		{"debug", slog.LevelDebug, true},
	}
	for _, tt := range tests {
		level, enabled, err := ParseLevel(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.enabled, enabled, tt.name)
		if enabled {
			assert.Equal(t, tt.level, level, tt.name)
		}
	}

	_, _, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, "verbose")
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "waveplay.log")
	logger, closer, err := New("warn", path)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Info("hidden")
	logger.Warn("sending waveform", "points", 10000)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "sending waveform", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 10000, entry["points"])
}

func TestNew_None(t *testing.T) {
	t.Parallel()

	logger, closer, err := New("none", filepath.Join(t.TempDir(), "unused.log"))
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNew_Stdout(t *testing.T) {
	t.Parallel()

	logger, closer, err := New("debug", "")
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestConfigure_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := Configure("loud", "")
	assert.Error(t, err)
}
