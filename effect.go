package ggfx

import (
	"context"

	"github.com/gogpu/ggfx/render"
)

// Effect draws a graph of passes into a caller-supplied target.
type Effect interface {
	DrawTo(ctx context.Context, target render.Target) error
	Destroy()
}

// EffectExecution is an effect bound to one target.
type EffectExecution interface {
	Run(ctx context.Context) error
	Destroy()
}

// GraphFunc adds the steps of a graph to b, writing the final pass to out.
type GraphFunc func(b *Builder, out TargetResolver) error

// GraphEffect is an Effect defined by a GraphFunc. It builds one pipeline
// per target and reuses it on later draws to the same target.
type GraphEffect struct {
	env       render.Environment
	build     GraphFunc
	opts      []PipelineOption
	pipelines map[render.Target]*Pipeline
	destroyed bool
}

// NewGraphEffect creates an effect building its pipelines in env.
// Options are passed to every pipeline; buffer size defaults to the target
// size.
func NewGraphEffect(env render.Environment, build GraphFunc, opts ...PipelineOption) *GraphEffect {
	return &GraphEffect{
		env:       env,
		build:     build,
		opts:      opts,
		pipelines: make(map[render.Target]*Pipeline),
	}
}

// Bind builds a new pipeline drawing the graph into target.
func (e *GraphEffect) Bind(target render.Target) (EffectExecution, error) {
	if e.destroyed {
		return nil, ErrDestroyed
	}
	return e.newPipeline(target)
}

func (e *GraphEffect) newPipeline(target render.Target) (*Pipeline, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	opts := append([]PipelineOption{WithBufferSize(target.Width(), target.Height())}, e.opts...)
	p := NewPipeline(e.env, opts...)
	b := NewBuilder(p)
	if err := e.build(b, Fixed(target)); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := b.Err(); err != nil {
		p.Destroy()
		return nil, err
	}
	Logger().Info("ggfx: effect pipeline built", "steps", p.Len(), "width", target.Width(), "height", target.Height())
	return p, nil
}

// DrawTo runs the graph into target, building its pipeline on first use.
func (e *GraphEffect) DrawTo(ctx context.Context, target render.Target) error {
	if e.destroyed {
		return ErrDestroyed
	}
	p, ok := e.pipelines[target]
	if !ok {
		var err error
		if p, err = e.newPipeline(target); err != nil {
			return err
		}
		e.pipelines[target] = p
	}
	return p.Run(ctx)
}

// Destroy destroys every cached pipeline.
func (e *GraphEffect) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for t, p := range e.pipelines {
		p.Destroy()
		delete(e.pipelines, t)
	}
}

var (
	_ Effect          = (*GraphEffect)(nil)
	_ EffectExecution = (*Pipeline)(nil)
)
