package serial

import (
	"context"
	"fmt"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Resolver supplies the externally owned texture registered under name.
type Resolver func(name string) (render.Target, bool)

// MapResolver resolves names from a fixed map.
func MapResolver(m map[string]render.Target) Resolver {
	return func(name string) (render.Target, bool) {
		t, ok := m[name]
		return t, ok
	}
}

// Effect replays serialized records. It implements ggfx.Effect.
type Effect struct {
	Records []Record

	env      render.Environment
	resolver Resolver
	opts     []ggfx.PipelineOption
	effect   *ggfx.GraphEffect
	shaders  []ggfx.ShaderProgram
}

// NewEffect returns an effect drawing records in env. resolver supplies
// named assets and may be nil when the graph has none.
func NewEffect(records []Record, env render.Environment, resolver Resolver, opts ...ggfx.PipelineOption) *Effect {
	return &Effect{
		Records:  records,
		env:      env,
		resolver: resolver,
		opts:     opts,
	}
}

// ApplyTo appends one shader step per record to p. The last record draws
// into target instead of its recorded output. Inputs the resolver cannot
// supply are logged and left unbound.
func (e *Effect) ApplyTo(p *ggfx.Pipeline, target ggfx.TargetResolver, resolver Resolver) error {
	return e.replay(p, target, resolver)
}

// Graph returns a graph function replaying the records. Textures are looked
// up among the builder's assets and then through resolver. Resolved textures
// are registered as builder assets under their recorded names, so the graph
// serializes back to the same records.
func (e *Effect) Graph(resolver Resolver) ggfx.GraphFunc {
	return func(b *ggfx.Builder, out ggfx.TargetResolver) error {
		assets := b.Assets()
		lookup := func(name string) (render.Target, bool) {
			tex, ok := assets[name]
			if !ok && resolver != nil {
				tex, ok = resolver(name)
			}
			if ok {
				b.Asset(name, tex)
			}
			return tex, ok
		}
		return e.replay(b.Pipeline(), out, lookup)
	}
}

func (e *Effect) replay(p *ggfx.Pipeline, target ggfx.TargetResolver, resolve Resolver) error {
	if target == nil {
		return ggfx.ErrNilTarget
	}
	if resolve == nil {
		resolve = func(string) (render.Target, bool) { return nil, false }
	}
	log := ggfx.Logger()

	last := len(e.Records) - 1
	refs := make(map[string]*ggfx.BufferReference)
	refOf := func(id string) *ggfx.BufferReference {
		r, ok := refs[id]
		if !ok {
			r = ggfx.NewBufferReference(id)
			refs[id] = r
		}
		return r
	}

	for i, rec := range e.Records {
		shader, err := ggfx.NewShader(rec.ShaderClassName)
		if err != nil {
			return fmt.Errorf("serial: record %d: %w", i, err)
		}
		e.shaders = append(e.shaders, shader)
		if err := applyProperties(shader, rec.ShaderProperties); err != nil {
			return fmt.Errorf("serial: record %d: %w", i, err)
		}

		sources := make([]ggfx.TextureSource, len(rec.Inputs))
		for slot, name := range rec.Inputs {
			switch {
			case name == "":
			case bufferID(name):
				sources[slot] = refOf(name)
			default:
				tex, ok := resolve(name)
				if !ok {
					log.Warn("serial: missing texture", "record", i, "shader", rec.ShaderClassName, "input", slot, "name", name)
					continue
				}
				sources[slot] = ggfx.Fixed(tex)
			}
		}

		var out ggfx.TargetResolver
		switch {
		case i == last:
			out = target
		case bufferID(rec.Output):
			out = refOf(rec.Output)
		default:
			tex, ok := resolve(rec.Output)
			if !ok {
				return fmt.Errorf("serial: record %d: %w: %q", i, ErrMissingTarget, rec.Output)
			}
			out = ggfx.Fixed(tex)
		}

		setup := func(_ context.Context, rc *ggfx.RunContext, s ggfx.ShaderProgram) error {
			s.ClearInputs()
			for slot, src := range sources {
				if src == nil {
					continue
				}
				tex, err := src.Texture(rc)
				if err != nil {
					return fmt.Errorf("input %d: %w", slot, err)
				}
				s.SetInput(slot, tex)
			}
			return nil
		}
		if _, err := p.AddStep(shader, nil, out, setup); err != nil {
			return fmt.Errorf("serial: record %d: %w", i, err)
		}
	}
	log.Info("serial: effect applied", "records", len(e.Records), "buffers", len(refs))
	return nil
}

// DrawTo replays the records into target, building a pipeline per target on
// first use.
func (e *Effect) DrawTo(ctx context.Context, target render.Target) error {
	if e.effect == nil {
		e.effect = ggfx.NewGraphEffect(e.env, e.Graph(e.resolver), e.opts...)
	}
	return e.effect.DrawTo(ctx, target)
}

// Destroy destroys cached pipelines and every shader created by replay.
func (e *Effect) Destroy() {
	if e.effect != nil {
		e.effect.Destroy()
	}
	for _, s := range e.shaders {
		s.Destroy()
	}
	e.shaders = nil
}

var _ ggfx.Effect = (*Effect)(nil)
