package graphfile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Build adds the graph's passes to b, drawing passes whose output is
// OutputName into out. Build has the ggfx.GraphFunc signature, so a graph
// can be passed to ggfx.NewGraphEffect or serialized directly:
//
//	fx := ggfx.NewGraphEffect(env, g.Build)
//
// Each call creates fresh shader instances; Destroy releases them.
func (g *Graph) Build(b *ggfx.Builder, out ggfx.TargetResolver) error {
	buffers := make(map[string]*ggfx.BufferReference, len(g.Buffers))
	for _, name := range g.Buffers {
		buffers[name] = b.Buffer(name)
	}
	assets := b.Assets()

	source := func(name string) (ggfx.TextureSource, error) {
		if ref, ok := buffers[name]; ok {
			return ref, nil
		}
		if tex, ok := assets[name]; ok {
			return ggfx.Fixed(tex), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	for i, p := range g.Passes {
		shader, err := ggfx.NewShader(p.Shader)
		if err != nil {
			return fmt.Errorf("graphfile: pass %d: %w", i, err)
		}
		g.shaders = append(g.shaders, shader)

		sources := make([]ggfx.TextureSource, 0, len(p.Inputs))
		for _, name := range p.Inputs {
			src, err := source(name)
			if err != nil {
				return fmt.Errorf("graphfile: pass %d (%s) input: %w", i, p.Shader, err)
			}
			sources = append(sources, src)
		}

		target, err := g.target(p.Output, out, buffers, assets)
		if err != nil {
			return fmt.Errorf("graphfile: pass %d (%s) output: %w", i, p.Shader, err)
		}

		pb := b.Pass(shader).Sample(sources...)
		for _, name := range slices.Sorted(maps.Keys(p.Uniforms)) {
			pb.Uniform(name, p.Uniforms[name])
		}
		pb.To(target)

		if len(p.Recycle) > 0 {
			refs := make([]*ggfx.BufferReference, 0, len(p.Recycle))
			for _, name := range p.Recycle {
				ref, ok := buffers[name]
				if !ok {
					return fmt.Errorf("graphfile: pass %d (%s) recycle: %w: %q", i, p.Shader, ErrUnknownName, name)
				}
				refs = append(refs, ref)
			}
			b.Recycle(refs...)
		}
		if err := b.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) target(name string, out ggfx.TargetResolver, buffers map[string]*ggfx.BufferReference, assets map[string]render.Target) (ggfx.TargetResolver, error) {
	if name == OutputName {
		return out, nil
	}
	if ref, ok := buffers[name]; ok {
		return ref, nil
	}
	if tex, ok := assets[name]; ok {
		return ggfx.Fixed(tex), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Shaders returns the names of the shaders the graph uses, in pass order.
func (g *Graph) Shaders() []string {
	names := make([]string, len(g.Passes))
	for i, p := range g.Passes {
		names[i] = p.Shader
	}
	return names
}

// Destroy destroys every shader created by Build.
func (g *Graph) Destroy() {
	for _, s := range g.shaders {
		s.Destroy()
	}
	g.shaders = nil
}
