package serial

import (
	"context"
	"fmt"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Record describes one shader step of a serialized graph.
type Record struct {
	ShaderClassName  string         `json:"shaderClassName"`
	ShaderProperties map[string]any `json:"shaderProperties"`
	Inputs           []string       `json:"inputs"`
	Output           string         `json:"output"`
}

// Option configures Serialize.
type Option func(*options)

type options struct {
	width, height int
	ctx           context.Context
}

func defaultOptions() options {
	return options{width: 256, height: 256, ctx: context.Background()}
}

// WithSize sets the size of the placeholder buffers. Graphs whose setup
// depends on the buffer resolution should be serialized at the size they
// will be replayed at.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithContext sets the context passed to setup closures.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// bufferID reports whether name refers to an intermediate buffer.
func bufferID(name string) bool {
	return len(name) > 1 && name[0] == '@'
}

// namer hands out "@n" identifiers in order of first appearance.
type namer struct {
	b   *ggfx.Builder
	ids map[*ggfx.BufferReference]string
}

func (n *namer) ref(r *ggfx.BufferReference) string {
	if id, ok := n.ids[r]; ok {
		return id
	}
	id := fmt.Sprintf("@%d", len(n.ids))
	n.ids[r] = id
	return id
}

func (n *namer) texture(pool *ggfx.BufferPool, tex render.Target) (string, error) {
	if tex == nil {
		return "", nil
	}
	if name, ok := n.b.AssetName(tex); ok {
		return name, nil
	}
	if ref, ok := pool.RefFor(tex); ok {
		return n.ref(ref), nil
	}
	return "", ErrUnnamedTexture
}

func (n *namer) target(r ggfx.TargetResolver) (string, error) {
	switch t := r.(type) {
	case *ggfx.BufferReference:
		return n.ref(t), nil
	case ggfx.FixedTarget:
		if name, ok := n.b.AssetName(t.Target()); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %T", ErrUnnamedTarget, r)
}

// Serialize captures the shader steps added by build. The graph's final
// output is an intermediate buffer in the records; replay redirects the last
// record to the caller's target.
//
// Task steps are not serialized.
func Serialize(build ggfx.GraphFunc, opts ...Option) ([]Record, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := ggfx.NewPipeline(render.NullEnvironment{},
		ggfx.WithBufferSize(o.width, o.height),
		ggfx.WithLabel("serialize"))
	defer p.Destroy()

	b := ggfx.NewBuilder(p)
	if err := build(b, ggfx.NewBufferReference("output")); err != nil {
		return nil, err
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	n := &namer{b: b, ids: make(map[*ggfx.BufferReference]string)}
	var records []Record
	err := p.Collect(o.ctx, func(s *ggfx.ShaderStep) error {
		shader := s.Shader()
		rec := Record{
			ShaderClassName:  shader.Name(),
			ShaderProperties: shader.Uniforms().Snapshot(),
			Inputs:           []string{},
		}
		for slot, tex := range shader.Inputs() {
			name, err := n.texture(p.Pool(), tex)
			if err != nil {
				return fmt.Errorf("serial: step %d input %d: %w", s.Index(), slot, err)
			}
			rec.Inputs = append(rec.Inputs, name)
		}
		out, err := n.target(s.Target())
		if err != nil {
			return fmt.Errorf("serial: step %d: %w", s.Index(), err)
		}
		rec.Output = out
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ggfx.Logger().Debug("serial: graph serialized", "records", len(records), "buffers", len(n.ids))
	return records, nil
}
