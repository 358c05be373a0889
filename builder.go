package ggfx

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/ggfx/render"
)

// Builder is a small DSL for adding steps to a Pipeline.
//
// Builder methods never return errors directly. The first error is kept and
// reported by Err, and later calls become no-ops, so graph functions read as
// a straight sequence of passes:
//
//	b := ggfx.NewBuilder(p)
//	src := b.Asset("photo", photo)
//	blurred := b.Buffer("blurred")
//	b.Pass(blur).Sample(src).Float("radius", 4).To(blurred)
//	b.Pass(blend).Sample(src, blurred).String("mode", "screen").To(ggfx.Fixed(out))
//	b.Recycle(blurred)
//	err := b.Err()
type Builder struct {
	p      *Pipeline
	assets map[string]render.Target
	names  map[render.Target]string
	err    error
}

// NewBuilder returns a builder adding steps to p.
func NewBuilder(p *Pipeline) *Builder {
	return &Builder{
		p:      p,
		assets: make(map[string]render.Target),
		names:  make(map[render.Target]string),
	}
}

// Pipeline returns the pipeline being built.
func (b *Builder) Pipeline() *Pipeline { return b.p }

// Err returns the first error raised while building.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Buffer creates an intermediate buffer reference.
func (b *Builder) Buffer(label string) *BufferReference {
	return NewBufferReference(label)
}

// Asset registers an externally owned texture under a stable name and
// returns it as a texture source. Serialized graphs refer to it by name.
func (b *Builder) Asset(name string, tex render.Target) FixedTarget {
	if tex == nil {
		b.fail(fmt.Errorf("ggfx: asset %q: %w", name, ErrNilTarget))
		return FixedTarget{}
	}
	b.assets[name] = tex
	b.names[tex] = name
	return Fixed(tex)
}

// AssetName returns the name tex was registered under.
func (b *Builder) AssetName(tex render.Target) (string, bool) {
	name, ok := b.names[tex]
	return name, ok
}

// Assets returns the registered assets by name.
func (b *Builder) Assets() map[string]render.Target {
	out := make(map[string]render.Target, len(b.assets))
	for k, v := range b.assets {
		out[k] = v
	}
	return out
}

// Task appends a task step.
func (b *Builder) Task(fn TaskFunc, inputs ...any) {
	if b.err != nil {
		return
	}
	if _, err := b.p.AddTask(inputs, fn); err != nil {
		b.fail(err)
	}
}

// Recycle appends a task step that returns refs to the pool. Later passes
// in the same run may then reuse their buffers.
func (b *Builder) Recycle(refs ...*BufferReference) {
	b.Task(func(_ context.Context, rc *RunContext) error {
		rc.Pool.Recycle(refs...)
		return nil
	})
}

// Pass starts configuring a shader step.
func (b *Builder) Pass(shader ShaderProgram) *PassBuilder {
	pb := &PassBuilder{b: b, shader: shader}
	if shader == nil {
		b.fail(ErrNilShader)
	}
	return pb
}

// PassBuilder collects the configuration of one shader step.
type PassBuilder struct {
	b       *Builder
	shader  ShaderProgram
	sources []TextureSource
	inputs  []any
	setups  []SetupFunc
}

func (pb *PassBuilder) checkSlot(name string, kind UniformKind) bool {
	if pb.b.err != nil || pb.shader == nil {
		return false
	}
	u, ok := pb.shader.Uniforms().Lookup(name)
	if !ok {
		pb.b.fail(fmt.Errorf("%w: %s has no uniform %q", ErrUnknownUniform, pb.shader.Name(), name))
		return false
	}
	if u.Kind() != kind {
		pb.b.fail(fmt.Errorf("%w: %s.%s is %s, not %s", ErrUniformKind, pb.shader.Name(), name, u.Kind(), kind))
		return false
	}
	return true
}

func (pb *PassBuilder) set(fn func(u *UniformSet) error) {
	pb.setups = append(pb.setups, func(_ context.Context, _ *RunContext, s ShaderProgram) error {
		return fn(s.Uniforms())
	})
}

// Sample binds sources to sampler slots 0..n-1.
func (pb *PassBuilder) Sample(sources ...TextureSource) *PassBuilder {
	for _, src := range sources {
		if src == nil {
			pb.b.fail(fmt.Errorf("ggfx: sample source: %w", ErrNilTarget))
			return pb
		}
	}
	pb.sources = append(pb.sources, sources...)
	return pb
}

// Float sets a constant float uniform.
func (pb *PassBuilder) Float(name string, v float32) *PassBuilder {
	if pb.checkSlot(name, UniformFloat) {
		pb.set(func(u *UniformSet) error { return u.SetFloat(name, v) })
	}
	return pb
}

// FloatInput sets a float uniform from an input read on every run. Sampled
// inputs are tracked by the pipeline.
func (pb *PassBuilder) FloatInput(name string, in Input[float64]) *PassBuilder {
	if pb.checkSlot(name, UniformFloat) {
		pb.inputs = append(pb.inputs, in)
		pb.set(func(u *UniformSet) error { return u.SetFloat(name, float32(in.Get())) })
	}
	return pb
}

// Floats sets a float array uniform.
func (pb *PassBuilder) Floats(name string, v ...float32) *PassBuilder {
	if pb.checkSlot(name, UniformVec) {
		vals := append([]float32(nil), v...)
		pb.set(func(u *UniformSet) error { return u.SetVec(name, vals) })
	}
	return pb
}

// Int sets an int uniform.
func (pb *PassBuilder) Int(name string, v int) *PassBuilder {
	if pb.checkSlot(name, UniformInt) {
		pb.set(func(u *UniformSet) error { return u.SetInt(name, v) })
	}
	return pb
}

// IntInput sets an int uniform from an input read on every run.
func (pb *PassBuilder) IntInput(name string, in Input[int]) *PassBuilder {
	if pb.checkSlot(name, UniformInt) {
		pb.inputs = append(pb.inputs, in)
		pb.set(func(u *UniformSet) error { return u.SetInt(name, in.Get()) })
	}
	return pb
}

// Bool sets a bool uniform.
func (pb *PassBuilder) Bool(name string, v bool) *PassBuilder {
	if pb.checkSlot(name, UniformBool) {
		pb.set(func(u *UniformSet) error { return u.SetBool(name, v) })
	}
	return pb
}

// String sets a string uniform.
func (pb *PassBuilder) String(name string, v string) *PassBuilder {
	if pb.checkSlot(name, UniformString) {
		pb.set(func(u *UniformSet) error { return u.SetString(name, v) })
	}
	return pb
}

// Uniform assigns a loosely typed value through UniformSet.Apply.
func (pb *PassBuilder) Uniform(name string, v any) *PassBuilder {
	if pb.b.err != nil || pb.shader == nil {
		return pb
	}
	if err := pb.shader.Uniforms().Apply(name, v); err != nil {
		pb.b.fail(fmt.Errorf("ggfx: %s: %w", pb.shader.Name(), err))
	}
	return pb
}

// Setup adds a custom setup closure, run after the builder's own setters.
// inputs are tracked like step inputs.
func (pb *PassBuilder) Setup(fn SetupFunc, inputs ...any) *PassBuilder {
	if fn != nil {
		pb.setups = append(pb.setups, fn)
	}
	pb.inputs = append(pb.inputs, inputs...)
	return pb
}

// To appends the configured step drawing into target. It returns nil if the
// builder has failed.
func (pb *PassBuilder) To(target TargetResolver) *ShaderStep {
	b := pb.b
	if b.err != nil {
		return nil
	}
	if target == nil {
		b.fail(ErrNilTarget)
		return nil
	}
	sources := pb.sources
	setups := pb.setups
	setup := func(ctx context.Context, rc *RunContext, s ShaderProgram) error {
		s.ClearInputs()
		for slot, src := range sources {
			tex, err := src.Texture(rc)
			if err != nil {
				return fmt.Errorf("input %d: %w", slot, err)
			}
			s.SetInput(slot, tex)
		}
		var errs []error
		for _, fn := range setups {
			if err := fn(ctx, rc, s); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	step, err := b.p.AddStep(pb.shader, pb.inputs, target, setup)
	if err != nil {
		b.fail(err)
		return nil
	}
	return step
}
