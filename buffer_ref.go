package ggfx

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/ggfx/render"
)

// TargetResolver resolves a step's draw target through the buffer pool.
type TargetResolver interface {
	Resolve(pool *BufferPool) (render.Target, error)
}

// TextureSource supplies a texture to a sampler slot during step setup.
type TextureSource interface {
	Texture(rc *RunContext) (render.Target, error)
}

var refSeq atomic.Uint64

// BufferReference is a logical handle to an intermediate render target.
// It owns nothing: it resolves to a physical buffer only through the pool
// that currently binds it, and stays valid across pool resizes.
type BufferReference struct {
	id    uint64
	label string
}

// NewBufferReference creates a reference with a debug label.
func NewBufferReference(label string) *BufferReference {
	return &BufferReference{id: refSeq.Add(1), label: label}
}

// Label returns the debug label.
func (r *BufferReference) Label() string { return r.label }

func (r *BufferReference) String() string {
	return fmt.Sprintf("buffer#%d(%s)", r.id, r.label)
}

// Resolve returns the physical buffer bound to r, binding one if needed.
func (r *BufferReference) Resolve(pool *BufferPool) (render.Target, error) {
	return pool.Get(r)
}

// Texture resolves r through the run's pool.
func (r *BufferReference) Texture(rc *RunContext) (render.Target, error) {
	return rc.Pool.Get(r)
}

// FixedTarget resolves to a target that is not managed by the pool, such as
// the caller's output or an externally loaded asset.
type FixedTarget struct {
	target render.Target
}

// Fixed wraps t as a resolver and texture source.
func Fixed(t render.Target) FixedTarget {
	return FixedTarget{target: t}
}

// Target returns the wrapped target.
func (f FixedTarget) Target() render.Target { return f.target }

// Resolve returns the wrapped target.
func (f FixedTarget) Resolve(*BufferPool) (render.Target, error) {
	if f.target == nil {
		return nil, ErrNilTarget
	}
	return f.target, nil
}

// Texture returns the wrapped target.
func (f FixedTarget) Texture(*RunContext) (render.Target, error) {
	return f.Resolve(nil)
}

// SurfaceTarget resolves to the environment's window surface.
type SurfaceTarget struct{}

// Resolve returns the pool environment's surface.
func (SurfaceTarget) Resolve(pool *BufferPool) (render.Target, error) {
	s := pool.Environment().Surface()
	if s == nil {
		return nil, fmt.Errorf("%w: environment has no surface", ErrNilTarget)
	}
	return s, nil
}

var (
	_ TargetResolver = (*BufferReference)(nil)
	_ TextureSource  = (*BufferReference)(nil)
	_ TargetResolver = FixedTarget{}
	_ TextureSource  = FixedTarget{}
	_ TargetResolver = SurfaceTarget{}
)
