package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, 800, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.Equal(t, "canopy", cfg.Window.Title)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	content := []byte("logger:\n  level: debug\n  format: json\nrender:\n  width: 320\n  height: 240\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 320, cfg.Render.Width)
	assert.Equal(t, 240, cfg.Render.Height)
	// Untouched keys keep their defaults.
	assert.Equal(t, 600, cfg.Window.Height)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CANOPY_RENDER_WIDTH", "1024")
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Render.Width)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero render width", func(c *Config) { c.Render.Width = 0 }},
		{"negative window height", func(c *Config) { c.Window.Height = -1 }},
		{"bad log format", func(c *Config) { c.Logger.Format = "xml" }},
		{"no replay frames", func(c *Config) { c.Render.MaxReplayFrames = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
