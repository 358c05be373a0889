// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func newHALEnv(t *testing.T) *render.HALEnvironment {
	t.Helper()
	device, queue := createNoopDevice(t)
	env, err := render.NewHALEnvironment(device, queue, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewHALEnvironment failed: %v", err)
	}
	return env
}

func TestSourceAccessors(t *testing.T) {
	src := Source("fn shade(uv: vec2<f32>) -> vec4<f32> { return vec4<f32>(1.0, 1.0, 1.0, 1.0); }",
		[]string{"a", "b", "c", "d", "e"})

	for _, want := range []string{
		"array<vec4<f32>, 2>",
		"fn p_a() -> f32 {\n    return params.values[0].x;",
		"fn p_d() -> f32 {\n    return params.values[0].w;",
		"fn p_e() -> f32 {\n    return params.values[1].x;",
		"@fragment",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q", want)
		}
	}
}

func TestSourceWithoutParams(t *testing.T) {
	src := Source("fn shade(uv: vec2<f32>) -> vec4<f32> { return vec4<f32>(uv, 0.0, 1.0); }", nil)
	if !strings.Contains(src, "array<vec4<f32>, 1>") {
		t.Error("parameterless program should still declare one vec4 row")
	}
	if got := uniformSize(0); got != 32 {
		t.Errorf("uniformSize(0) = %d, want 32", got)
	}
	if got := uniformSize(5); got != 48 {
		t.Errorf("uniformSize(5) = %d, want 48", got)
	}
}

func TestPresetsRegistered(t *testing.T) {
	for _, name := range []string{NameSolid, NamePlasma, NameRadial} {
		t.Run(name, func(t *testing.T) {
			s, err := ggfx.NewShader(name)
			if err != nil {
				t.Fatalf("NewShader failed: %v", err)
			}
			defer s.Destroy()
			if err := s.Init(render.NullEnvironment{}); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			g := s.(*Generator)
			if len(g.spirv) == 0 {
				t.Error("expected compiled SPIR-V")
			}
		})
	}
}

func TestPresetDefaults(t *testing.T) {
	s := ggfx.MustShader(NamePlasma)
	defer s.Destroy()
	u := s.Uniforms()
	if got := u.Float("speed"); got != 1 {
		t.Errorf("speed = %v, want 1", got)
	}
	if got := u.Float("scale"); got != 10 {
		t.Errorf("scale = %v, want 10", got)
	}
}

func TestGeneratorWithoutDevice(t *testing.T) {
	g := ggfx.MustShader(NameSolid).(*Generator)
	defer g.Destroy()
	if err := g.Init(render.NullEnvironment{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	err := g.Draw(render.NewPixmapTarget(4, 4), ggfx.TopLeft)
	if !errors.Is(err, ErrNoTextureView) {
		t.Errorf("Draw(pixmap) = %v, want ErrNoTextureView", err)
	}

	view := render.NewSurfaceTarget(4, 4, gputypes.TextureFormatRGBA8Unorm, struct{ hal.TextureView }{})
	err = g.Draw(view, ggfx.TopLeft)
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("Draw without device = %v, want ErrNoDevice", err)
	}
}

func TestGeneratorCompileError(t *testing.T) {
	g := NewGenerator("broken", "fn shade(uv: vec2<f32>) -> vec4<f32> { return nope; }")
	defer g.Destroy()
	if err := g.Init(render.NullEnvironment{}); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestGeneratorDrawHAL(t *testing.T) {
	env := newHALEnv(t)
	target, err := env.NewBuffer(32, 16, "out")
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	defer target.Destroy()

	g := ggfx.MustShader(NameSolid).(*Generator)
	defer g.Destroy()

	p := ggfx.NewPipeline(env, ggfx.WithConvention(ggfx.BottomLeft))
	defer p.Destroy()
	b := ggfx.NewBuilder(p)
	b.Pass(g).Float("r", 0.25).Float("g", 0.5).To(ggfx.Fixed(target))
	if err := b.Err(); err != nil {
		t.Fatalf("build: %v", err)
	}

	for range 2 {
		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	if g.Pipelines() != 1 {
		t.Errorf("Pipelines() = %d, want 1 (one format)", g.Pipelines())
	}

	want := []float32{32, 16, 1, 0, 0.25, 0.5, 0, 1}
	for i, w := range want {
		if g.staging[i] != w {
			t.Errorf("staging[%d] = %v, want %v", i, g.staging[i], w)
		}
	}
}

// countingDevice counts shader modules created and destroyed on a noop device.
type countingDevice struct {
	hal.Device
	created, destroyed int
}

func (d *countingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	d.created++
	return d.Device.CreateShaderModule(desc)
}

func (d *countingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.destroyed++
	d.Device.DestroyShaderModule(m)
}

func newCountingEnv(t *testing.T) (*render.HALEnvironment, *countingDevice) {
	t.Helper()
	device, queue := createNoopDevice(t)
	dev := &countingDevice{Device: device}
	env, err := render.NewHALEnvironment(dev, queue, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewHALEnvironment failed: %v", err)
	}
	return env, dev
}

func TestGeneratorSharedAcrossPipelines(t *testing.T) {
	env, dev := newCountingEnv(t)
	g := ggfx.MustShader(NamePlasma).(*Generator)

	out := ggfx.NewBufferReference("out")
	for range 2 {
		p := ggfx.NewPipeline(env)
		defer p.Destroy()
		if _, err := p.AddStep(g, nil, out, nil); err != nil {
			t.Fatalf("AddStep: %v", err)
		}
	}
	if dev.created != 1 || dev.destroyed != 0 {
		t.Errorf("modules created=%d destroyed=%d, want 1 and 0", dev.created, dev.destroyed)
	}

	other, otherDev := newCountingEnv(t)
	if err := g.Init(other); err != nil {
		t.Fatalf("Init on another device: %v", err)
	}
	if dev.destroyed != 1 || otherDev.created != 1 {
		t.Errorf("moving devices: old destroyed=%d, new created=%d, want 1 and 1", dev.destroyed, otherDev.created)
	}

	g.Destroy()
	if otherDev.destroyed != 1 {
		t.Errorf("Destroy released %d modules on the new device, want 1", otherDev.destroyed)
	}
}

func TestUniformBytesLayout(t *testing.T) {
	g := NewGenerator("layout", "", "x")
	g.staging[headerFloats] = 2.5
	data := g.uniformBytes(8, 4, ggfx.TopLeft)
	if len(data) != int(uniformSize(1)) {
		t.Fatalf("len = %d, want %d", len(data), uniformSize(1))
	}
	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	if at(0) != 8 || at(1) != 4 || at(2) != 0 {
		t.Errorf("header = %v %v %v, want 8 4 0", at(0), at(1), at(2))
	}
	if at(headerFloats) != 2.5 {
		t.Errorf("x = %v, want 2.5", at(headerFloats))
	}
}

func TestGeneratorDestroyIdempotent(t *testing.T) {
	env := newHALEnv(t)
	g := ggfx.MustShader(NameRadial).(*Generator)
	if err := g.Init(env); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if g.bindGroup == nil || g.uniformBuf == nil {
		t.Fatal("expected GPU resources after Init")
	}
	g.Destroy()
	g.Destroy()
	if g.module != nil || g.bindGroup != nil {
		t.Error("resources not released")
	}
}
