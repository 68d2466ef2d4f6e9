package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireglow/postfx"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, 100, cfg.Scene.Cuboids)
	assert.Equal(t, float32(20), cfg.Scene.FogFar)
	assert.Equal(t, postfx.DefaultBloomParams(), cfg.Bloom.Params())
	assert.False(t, cfg.CustomShader)
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse([]byte(`
custom_shader = true

[window]
title = "glow"

[bloom]
strength = 2.5
radius = 0.4
`))
	require.NoError(t, err)
	assert.True(t, cfg.CustomShader)
	assert.Equal(t, "glow", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, float32(2.5), cfg.Bloom.Strength)
	assert.Equal(t, float32(0.4), cfg.Bloom.Radius)
	assert.Equal(t, float32(1), cfg.Bloom.Exposure)
	assert.Equal(t, 100, cfg.Scene.Cuboids)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("[bloom]\nglow = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glow")
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[window\nwidth = 3"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative cuboids", func(c *Config) { c.Scene.Cuboids = -1 }, "cuboids"},
		{"empty fog", func(c *Config) { c.Scene.FogFar = 0 }, "fog range"},
		{"strength", func(c *Config) { c.Bloom.Strength = 5 }, "strength"},
		{"radius", func(c *Config) { c.Bloom.Radius = -0.1 }, "radius"},
		{"exposure", func(c *Config) { c.Bloom.Exposure = 0 }, "exposure"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.edit(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateEdges(t *testing.T) {
	cfg := Default()
	cfg.Bloom.Strength = 0
	cfg.Bloom.Threshold = 1
	cfg.Bloom.Radius = 0
	cfg.Scene.Cuboids = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wireglow.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\ncuboids = 12\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Scene.Cuboids)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("[scene]\ncuboids = -3\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
