package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hiergrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Tree.ShowLevelHeader)
	assert.True(t, cfg.Tree.RetainRemovedRowNodes)
	assert.False(t, cfg.Tree.UseTreeColumnIndex)
	assert.Equal(t, 8, cfg.Render.PixelsPerChar)
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
}

func TestLoad(t *testing.T) {
	t.Run("overlays the defaults", func(t *testing.T) {
		path := writeConfig(t, `
tree:
  show_level_header: false
  dpi_scale: 2
log:
  level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.False(t, cfg.Tree.ShowLevelHeader)
		assert.Equal(t, 2.0, cfg.Tree.DPIScale)
		assert.True(t, cfg.Tree.ExpandOnSearch)
		assert.Equal(t, 16, cfg.Tree.LevelHeaderWidth)
		assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	})

	tests := []struct {
		name    string
		content string
		message string
	}{
		{"header width", "tree: {level_header_width: 0}", "LevelHeaderWidth must be at least 1"},
		{"dpi scale", "tree: {dpi_scale: 9}", "DPIScale must not exceed 8"},
		{"zero dpi scale", "tree: {dpi_scale: 0}", "DPIScale failed gt"},
		{"pixels per char", "render: {pixels_per_char: 0}", "PixelsPerChar must be at least 1"},
		{"log level", "log: {level: loud}", "Level must be one of debug info warn error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tree: ["))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal config")
	})
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
