package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggfx/config"
	"github.com/gogpu/ggfx/serial"
)

const graph = `
buffer "base" {}

pass "fill" {
  output   = "base"
  uniforms = { color = [0, 0, 1, 1] }
}

pass "invert" {
  inputs = ["base"]
  output = "output"
}
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(graph), 0o600))

	cfg := config.Default()
	cfg.Width, cfg.Height = 8, 8
	cfg.Frames = 2
	cfg.Graph = path
	cfg.Output = filepath.Join(dir, "out.png")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRenderGraph(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, renderGraph(context.Background(), cfg))

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, g, b, a := img.At(3, 3).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestRenderGraphDryRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = config.BackendNull
	require.NoError(t, renderGraph(context.Background(), cfg))
	_, err := os.Stat(cfg.Output)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteRecords(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, writeRecords(context.Background(), cfg, path))

	records, err := serial.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"@0"}, records[1].Inputs)
}

func TestMissingAsset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assets = map[string]string{"photo": filepath.Join(t.TempDir(), "none.png")}
	assert.Error(t, renderGraph(context.Background(), cfg))
}
