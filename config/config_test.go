package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, BackendSoftware, cfg.Backend)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid, "default has no graph")

	cfg.Graph = "graph.hcl"
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "fx.toml", `
width = 64
height = 32
frames = 3
log_level = "debug"
graph = "graph.hcl"
output = "/tmp/out.png"

[assets]
photo = "photo.png"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	dir := filepath.Dir(path)

	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, 3, cfg.Frames)
	assert.Equal(t, BackendSoftware, cfg.Backend, "unset keys keep defaults")
	assert.Equal(t, filepath.Join(dir, "graph.hcl"), cfg.Graph)
	assert.Equal(t, filepath.Join(dir, "photo.png"), cfg.Assets["photo"])
	assert.Equal(t, "/tmp/out.png", cfg.Output)
	require.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "fx.yml", `
width: 16
height: 16
backend: "null"
graph: /abs/graph.hcl
assets:
  photo: /abs/photo.png
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendNull, cfg.Backend)
	assert.Equal(t, "/abs/graph.hcl", cfg.Graph)
	assert.Equal(t, "/abs/photo.png", cfg.Assets["photo"])
	assert.Equal(t, 1, cfg.Frames)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "fx.json", `{}`))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(write(t, "fx.toml", `width = "wide"`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.Graph = "g.hcl"

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"no frames", func(c *Config) { c.Frames = 0 }},
		{"backend", func(c *Config) { c.Backend = "vulkan" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
