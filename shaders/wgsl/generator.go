// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/internal/modcache"
	"github.com/gogpu/ggfx/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoTextureView is returned by Draw for targets without a GPU view,
	// such as CPU pixmaps.
	ErrNoTextureView = errors.New("wgsl: target has no texture view")

	// ErrNoDevice is returned by Draw when the generator was initialized
	// outside of a HAL environment.
	ErrNoDevice = errors.New("wgsl: generator has no GPU device")
)

// fenceTimeout bounds the wait for one generator draw.
const fenceTimeout = 5 * time.Second

// Generator is a GPU shader that fills its target with a procedural WGSL
// function. Every parameter is a float uniform, packed into one uniform
// buffer together with the target size.
//
// Init validates the program with naga in any environment, so generators
// can be configured and serialized without a device. GPU resources are
// created only in a render.HALEnvironment, and pipelines are created
// lazily per target format.
type Generator struct {
	ggfx.ShaderBase

	params []string
	index  map[string]int
	source string
	spirv  []uint32

	staging []float32

	device hal.Device
	queue  hal.Queue

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	pipelines  map[gputypes.TextureFormat]hal.RenderPipeline
}

// NewGenerator creates a generator named name running body. Each listed
// param becomes a float uniform with a zero default; see Source for the
// contract of body.
func NewGenerator(name, body string, params ...string) *Generator {
	g := &Generator{
		ShaderBase: ggfx.NewShaderBase(name),
		params:     slices.Clone(params),
		index:      make(map[string]int, len(params)),
		source:     Source(body, params),
		staging:    make([]float32, headerFloats+4*vec4Count(len(params))),
		pipelines:  make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}
	u := g.Uniforms()
	for i, p := range params {
		g.index[p] = i
		u.Declare(p, ggfx.UniformFloat)
		_ = u.SetFloat(p, 0)
	}
	return g
}

// Source returns the full WGSL program.
func (g *Generator) Source() string { return g.source }

// Params returns the parameter names in buffer order.
func (g *Generator) Params() []string { return slices.Clone(g.params) }

// Init compiles the program and, in a HAL environment, creates the shader
// module, layouts and uniform buffer. Resources are shared by every pipeline
// on the same device; moving to another device releases the old ones first.
func (g *Generator) Init(env render.Environment) error {
	spirv, err := modcache.Compile(g.source)
	if err != nil {
		return fmt.Errorf("wgsl: compile %s: %w", g.Name(), err)
	}
	g.spirv = spirv

	hev, ok := env.(*render.HALEnvironment)
	if !ok {
		ggfx.Logger().Debug("wgsl: generator without device", "shader", g.Name())
		return nil
	}
	if g.bindGroup != nil && g.device == hev.Device() {
		return nil
	}
	g.destroyResources()
	g.device = hev.Device()
	g.queue = hev.Queue()
	if err := g.createResources(); err != nil {
		g.destroyResources()
		return err
	}
	return nil
}

func (g *Generator) createResources() error {
	label := g.Name()
	module, err := g.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: g.spirv},
	})
	if err != nil {
		return fmt.Errorf("wgsl: create shader module: %w", err)
	}
	g.module = module

	bindLayout, err := g.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgsl: create uniform layout: %w", err)
	}
	g.bindLayout = bindLayout

	pipeLayout, err := g.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{g.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgsl: create pipeline layout: %w", err)
	}
	g.pipeLayout = pipeLayout

	size := uniformSize(len(g.params))
	buf, err := g.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_uniforms",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgsl: create uniform buffer: %w", err)
	}
	g.uniformBuf = buf

	bindGroup, err := g.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: g.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: size,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgsl: create bind group: %w", err)
	}
	g.bindGroup = bindGroup
	return nil
}

// ensurePipeline returns the render pipeline for format, creating it on
// first use.
func (g *Generator) ensurePipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if p, ok := g.pipelines[format]; ok {
		return p, nil
	}
	p, err := g.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  g.Name() + "_pipeline",
		Layout: g.pipeLayout,
		Vertex: hal.VertexState{
			Module:     g.module,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     g.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: format, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgsl: create pipeline for %v: %w", format, err)
	}
	g.pipelines[format] = p
	return p, nil
}

// WriteUniform copies a flushed parameter into the staging block.
func (g *Generator) WriteUniform(u *ggfx.Uniform) {
	i, ok := g.index[u.Name()]
	if !ok {
		return
	}
	g.staging[headerFloats+i] = u.Float()
}

// uniformBytes encodes the staging block for a target of the given size.
func (g *Generator) uniformBytes(width, height int, conv ggfx.Convention) []byte {
	g.staging[0] = float32(width)
	g.staging[1] = float32(height)
	g.staging[2] = 0
	if conv == ggfx.BottomLeft {
		g.staging[2] = 1
	}
	out := make([]byte, 4*len(g.staging))
	for i, f := range g.staging {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

// Draw renders the generator into target's texture view and waits for the
// GPU to finish.
func (g *Generator) Draw(target render.Target, conv ggfx.Convention) error {
	view := target.TextureView()
	if view == nil {
		return ErrNoTextureView
	}
	if g.device == nil || g.bindGroup == nil {
		return ErrNoDevice
	}
	pipeline, err := g.ensurePipeline(target.Format())
	if err != nil {
		return err
	}
	g.queue.WriteBuffer(g.uniformBuf, 0, g.uniformBytes(target.Width(), target.Height(), conv))

	encoder, err := g.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: g.Name() + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgsl: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(g.Name()); err != nil {
		return fmt.Errorf("wgsl: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: g.Name() + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, g.bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgsl: end encoding: %w", err)
	}
	defer g.device.FreeCommandBuffer(cmd)

	fence, err := g.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgsl: create fence: %w", err)
	}
	defer g.device.DestroyFence(fence)

	if err := g.queue.Submit([]hal.CommandBuffer{cmd}, fence, 1); err != nil {
		return fmt.Errorf("wgsl: submit: %w", err)
	}
	ok, err := g.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wgsl: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Pipelines returns the number of per-format pipelines created so far.
func (g *Generator) Pipelines() int { return len(g.pipelines) }

// destroyResources releases GPU objects in reverse creation order.
func (g *Generator) destroyResources() {
	if g.device == nil {
		return
	}
	for f, p := range g.pipelines {
		g.device.DestroyRenderPipeline(p)
		delete(g.pipelines, f)
	}
	if g.bindGroup != nil {
		g.device.DestroyBindGroup(g.bindGroup)
		g.bindGroup = nil
	}
	if g.uniformBuf != nil {
		g.device.DestroyBuffer(g.uniformBuf)
		g.uniformBuf = nil
	}
	if g.pipeLayout != nil {
		g.device.DestroyPipelineLayout(g.pipeLayout)
		g.pipeLayout = nil
	}
	if g.bindLayout != nil {
		g.device.DestroyBindGroupLayout(g.bindLayout)
		g.bindLayout = nil
	}
	if g.module != nil {
		g.device.DestroyShaderModule(g.module)
		g.module = nil
	}
}

// Destroy releases GPU resources and the base bookkeeping.
func (g *Generator) Destroy() {
	g.destroyResources()
	g.device = nil
	g.queue = nil
	g.ShaderBase.Destroy()
}

var (
	_ ggfx.ShaderProgram = (*Generator)(nil)
	_ ggfx.UniformSink   = (*Generator)(nil)
)
