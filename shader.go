package ggfx

import "github.com/gogpu/ggfx/render"

// Convention is the vertical coordinate convention of a draw target.
type Convention uint8

const (
	// TopLeft puts the origin at the top-left corner, y growing down.
	// Offscreen CPU buffers use this convention.
	TopLeft Convention = iota

	// BottomLeft puts the origin at the bottom-left corner, y growing up.
	BottomLeft
)

// String returns the convention name.
func (c Convention) String() string {
	if c == BottomLeft {
		return "bottom-left"
	}
	return "top-left"
}

// ShaderProgram is a configurable program that draws into a render target.
//
// The pipeline talks to shaders only through this contract. A shader is
// initialized once by Pipeline.AddStep, configured through its uniforms and
// input slots by step setup closures, and drawn once per step per run.
// Shaders are owned by the caller: the pipeline never calls Destroy.
type ShaderProgram interface {
	// Name returns the registry name used to reconstruct the shader.
	Name() string

	// Init prepares the shader for drawing in env.
	Init(env render.Environment) error

	// Uniforms returns the shader's uniform slots.
	Uniforms() *UniformSet

	// Inputs returns the textures bound to the sampler slots.
	Inputs() []render.Target

	// SetInput binds tex to the given sampler slot.
	SetInput(slot int, tex render.Target)

	// ClearInputs unbinds every sampler slot.
	ClearInputs()

	// Draw renders into target using the given coordinate convention.
	Draw(target render.Target, conv Convention) error

	// Destroy releases shader resources and observer subscriptions.
	Destroy()
}

// ShaderBase implements the bookkeeping half of ShaderProgram. Shader
// implementations embed it and provide Draw.
type ShaderBase struct {
	name     string
	uniforms *UniformSet
	inputs   []render.Target
}

// NewShaderBase returns a base for a shader registered under name.
func NewShaderBase(name string) ShaderBase {
	return ShaderBase{name: name, uniforms: NewUniformSet()}
}

// Name returns the registry name.
func (b *ShaderBase) Name() string { return b.name }

// Init does nothing. Shaders with device resources override it.
func (b *ShaderBase) Init(render.Environment) error { return nil }

// Uniforms returns the uniform slots.
func (b *ShaderBase) Uniforms() *UniformSet { return b.uniforms }

// Inputs returns the bound textures. Unset slots are nil.
func (b *ShaderBase) Inputs() []render.Target { return b.inputs }

// SetInput binds tex to slot, growing the slot list as needed.
func (b *ShaderBase) SetInput(slot int, tex render.Target) {
	if slot < 0 {
		return
	}
	for len(b.inputs) <= slot {
		b.inputs = append(b.inputs, nil)
	}
	b.inputs[slot] = tex
}

// ClearInputs unbinds every slot, keeping the slot list's capacity.
func (b *ShaderBase) ClearInputs() {
	clear(b.inputs)
	b.inputs = b.inputs[:0]
}

// Input returns the texture in slot, or nil.
func (b *ShaderBase) Input(slot int) render.Target {
	if slot < 0 || slot >= len(b.inputs) {
		return nil
	}
	return b.inputs[slot]
}

// Destroy drops input bindings and cancels uniform observers.
func (b *ShaderBase) Destroy() {
	b.inputs = nil
	b.uniforms.Close()
}
