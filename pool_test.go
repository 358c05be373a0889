package ggfx

import (
	"strings"
	"testing"

	"github.com/gogpu/ggfx/render"
)

func TestBufferPoolReuse(t *testing.T) {
	env := render.NewSoftwareEnvironment(nil)
	pool := NewBufferPool(env, 4, 4)
	a, b := NewBufferReference("a"), NewBufferReference("b")

	ta, err := pool.Get(a)
	if err != nil {
		t.Fatalf("Get(a): %v", err)
	}
	again, _ := pool.Get(a)
	if again != ta {
		t.Error("Get on a bound ref must return its buffer")
	}
	pool.Recycle(a)
	if pool.IsBound(a) {
		t.Error("a still bound after Recycle")
	}
	tb, err := pool.Get(b)
	if err != nil {
		t.Fatalf("Get(b): %v", err)
	}
	if tb != ta {
		t.Error("Get(b) after Recycle(a) must reuse a's buffer")
	}
	if env.Allocated() != 1 || pool.Size() != 1 {
		t.Errorf("allocated=%d size=%d, want 1 and 1", env.Allocated(), pool.Size())
	}
	if ref, ok := pool.RefFor(tb); !ok || ref != b {
		t.Errorf("RefFor = %v, %v; want b", ref, ok)
	}
}

func TestBufferPoolRecycleUnknown(t *testing.T) {
	logs := captureLogs(t)
	pool := NewBufferPool(render.NewSoftwareEnvironment(nil), 4, 4)
	bound := NewBufferReference("bound")
	if _, err := pool.Get(bound); err != nil {
		t.Fatal(err)
	}

	pool.Recycle(NewBufferReference("never"))
	pool.Recycle(nil)
	if pool.Size() != 1 || pool.BoundCount() != 1 || pool.FreeCount() != 0 {
		t.Errorf("size=%d bound=%d free=%d, want 1/1/0", pool.Size(), pool.BoundCount(), pool.FreeCount())
	}

	pool.Recycle(bound)
	pool.Recycle(bound)
	if pool.FreeCount() != 1 {
		t.Errorf("double Recycle: free=%d, want 1", pool.FreeCount())
	}
	if n := strings.Count(logs.String(), "recycle of unbound"); n != 3 {
		t.Errorf("warnings = %d, want 3\n%s", n, logs.String())
	}
}

func TestBufferPoolDeleteFreesOnlyFree(t *testing.T) {
	pool := NewBufferPool(render.NewSoftwareEnvironment(nil), 4, 4)
	a, b := NewBufferReference("a"), NewBufferReference("b")
	ta, _ := pool.Get(a)
	tb, _ := pool.Get(b)
	pool.Recycle(a)

	pool.Delete()
	if !ta.(*render.PixmapTarget).Destroyed() {
		t.Error("free buffer should be destroyed")
	}
	if tb.(*render.PixmapTarget).Destroyed() {
		t.Error("bound buffer must survive Delete")
	}
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestBufferPoolResize(t *testing.T) {
	pool := NewBufferPool(render.NewSoftwareEnvironment(nil), 4, 4)
	a, b := NewBufferReference("a"), NewBufferReference("b")
	ta, _ := pool.Get(a)
	pool.Get(b)
	pool.Recycle(b)

	pool.Resize(4, 4)
	if pool.Size() != 2 {
		t.Fatal("Resize to the same size must keep buffers")
	}

	pool.Resize(8, 2)
	if pool.Size() != 0 {
		t.Errorf("Size() = %d after Resize, want 0", pool.Size())
	}
	if !ta.(*render.PixmapTarget).Destroyed() {
		t.Error("bound buffer should be destroyed on Resize")
	}
	fresh, err := pool.Get(a)
	if err != nil {
		t.Fatalf("Get after Resize: %v", err)
	}
	if fresh == ta || fresh.Width() != 8 || fresh.Height() != 2 {
		t.Errorf("Get after Resize = %dx%d (same=%v), want new 8x2 buffer", fresh.Width(), fresh.Height(), fresh == ta)
	}
}

func TestBufferPoolAllocationError(t *testing.T) {
	pool := NewBufferPool(render.NewSoftwareEnvironment(nil), 0, 0)
	if _, err := pool.Get(NewBufferReference("a")); err == nil {
		t.Error("Get with zero resolution should fail")
	}
	if _, err := pool.Get(nil); err == nil {
		t.Error("Get(nil) should fail")
	}
}
