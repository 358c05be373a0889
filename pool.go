package ggfx

import (
	"fmt"

	"github.com/gogpu/ggfx/render"
)

// BufferPool is a reuse arena of physical render targets.
//
// Buffers are either bound to a BufferReference or free. Get binds a free
// buffer (or allocates one) to a reference; Recycle returns it to the free
// list so that a later Get for another reference reuses the same target.
// The pool never frees buffers on its own: callers decide when a reference
// is dead and recycle it.
//
// BufferPool is not safe for concurrent use. It is only touched from the
// goroutine that runs its pipeline.
type BufferPool struct {
	env    render.Environment
	width  int
	height int

	bound map[*BufferReference]render.Target
	owner map[render.Target]*BufferReference
	free  []render.Target

	allocated int
}

// NewBufferPool creates an empty pool allocating width x height buffers
// from env.
func NewBufferPool(env render.Environment, width, height int) *BufferPool {
	return &BufferPool{
		env:    env,
		width:  width,
		height: height,
		bound:  make(map[*BufferReference]render.Target),
		owner:  make(map[render.Target]*BufferReference),
	}
}

// Environment returns the environment buffers are allocated from.
func (p *BufferPool) Environment() render.Environment { return p.env }

// Resolution returns the size of pool buffers.
func (p *BufferPool) Resolution() (width, height int) { return p.width, p.height }

// Get returns the buffer bound to ref, binding a free or newly allocated
// buffer when ref is unbound.
func (p *BufferPool) Get(ref *BufferReference) (render.Target, error) {
	if ref == nil {
		return nil, ErrNilTarget
	}
	if t, ok := p.bound[ref]; ok {
		return t, nil
	}

	var t render.Target
	if n := len(p.free); n > 0 {
		t = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		Logger().Debug("ggfx: pool reuse", "ref", ref.String())
	} else {
		nt, err := p.env.NewBuffer(p.width, p.height, ref.Label())
		if err != nil {
			return nil, fmt.Errorf("ggfx: allocate %s: %w", ref, err)
		}
		t = nt
		p.allocated++
		Logger().Debug("ggfx: pool allocate", "ref", ref.String(),
			"width", p.width, "height", p.height, "size", p.Size())
	}
	p.bound[ref] = t
	p.owner[t] = ref
	return t, nil
}

// Recycle unbinds each ref and returns its buffer to the free list.
// Recycling a reference that is not bound is logged and ignored.
func (p *BufferPool) Recycle(refs ...*BufferReference) {
	for _, ref := range refs {
		t, ok := p.bound[ref]
		if !ok {
			Logger().Warn("ggfx: recycle of unbound buffer reference", "ref", fmt.Sprint(ref))
			continue
		}
		delete(p.bound, ref)
		delete(p.owner, t)
		p.free = append(p.free, t)
	}
}

// Delete destroys every free buffer. Bound buffers are kept; recycle them
// first to release them.
func (p *BufferPool) Delete() {
	for i, t := range p.free {
		t.Destroy()
		p.free[i] = nil
	}
	p.free = p.free[:0]
}

// Resize changes the buffer resolution. All physical buffers are destroyed;
// existing references resolve to freshly sized buffers on their next Get.
func (p *BufferPool) Resize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.Clear()
	p.width = width
	p.height = height
	Logger().Debug("ggfx: pool resized", "width", width, "height", height)
}

// Clear destroys all buffers, bound and free, and drops every binding.
func (p *BufferPool) Clear() {
	for ref, t := range p.bound {
		t.Destroy()
		delete(p.bound, ref)
	}
	clear(p.owner)
	p.Delete()
}

// Size returns the number of physical buffers held (bound + free).
func (p *BufferPool) Size() int { return len(p.bound) + len(p.free) }

// BoundCount returns the number of bound buffers.
func (p *BufferPool) BoundCount() int { return len(p.bound) }

// FreeCount returns the number of free buffers.
func (p *BufferPool) FreeCount() int { return len(p.free) }

// Allocated returns how many buffers the pool has ever allocated.
func (p *BufferPool) Allocated() int { return p.allocated }

// IsBound reports whether ref currently has a buffer.
func (p *BufferPool) IsBound(ref *BufferReference) bool {
	_, ok := p.bound[ref]
	return ok
}

// RefFor returns the reference a buffer is bound to.
func (p *BufferPool) RefFor(t render.Target) (*BufferReference, bool) {
	ref, ok := p.owner[t]
	return ref, ok
}
