package ggfx

import (
	"testing"
	"time"
)

func TestConstInput(t *testing.T) {
	c := Const(3.5)
	if c.Get() != 3.5 {
		t.Errorf("Get() = %v, want 3.5", c.Get())
	}
	if _, ok := any(c).(Dirtier); ok {
		t.Error("Const must not be a Dirtier")
	}
}

func TestSampledInputCaches(t *testing.T) {
	src := 1.0
	in := Sampled(func() float64 { return src })
	if !in.Dirty() {
		t.Fatal("new SampledInput should start dirty")
	}
	if got := in.Get(); got != 1 {
		t.Fatalf("Get() = %v, want 1", got)
	}
	src = 2
	if got := in.Get(); got != 1 {
		t.Errorf("Get() after source change = %v, want cached 1", got)
	}
	if in.Samples() != 1 {
		t.Errorf("Samples() = %d, want 1", in.Samples())
	}
	in.MarkDirty()
	if got := in.Get(); got != 2 {
		t.Errorf("Get() after MarkDirty = %v, want 2", got)
	}
	if in.Samples() != 2 {
		t.Errorf("Samples() = %d, want 2", in.Samples())
	}
}

func TestDerivedInputPropagatesDirty(t *testing.T) {
	src := 1.0
	base := Sampled(func() float64 { return src })
	doubled := Map[float64, float64](base, func(v float64) float64 { return v * 2 })
	clamped := Clamp[float64](doubled, 0, 5)

	if got := clamped.Get(); got != 2 {
		t.Fatalf("Get() = %v, want 2", got)
	}
	src = 10
	if got := clamped.Get(); got != 2 {
		t.Errorf("Get() = %v, want cached 2", got)
	}

	clamped.MarkDirty()
	if !base.Dirty() || !doubled.Dirty() {
		t.Error("MarkDirty should reach every upstream input")
	}
	if got := clamped.Get(); got != 5 {
		t.Errorf("Get() = %v, want 5 (clamped 20)", got)
	}
}

func TestMap2(t *testing.T) {
	a := NewVar(3)
	b := Sampled(func() int { return 4 })
	sum := Map2[int, int, int](a, b, func(x, y int) int { return x + y })
	if got := sum.Get(); got != 7 {
		t.Errorf("Get() = %d, want 7", got)
	}
	if len(sum.upstream) != 1 {
		t.Errorf("upstream = %d, want 1 (Var is not a Dirtier)", len(sum.upstream))
	}
}

func TestBounceBetween(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 0.5},
		{2.0, 0},
		{2.5, 0.5},
		{3.0, 1.0},
	}
	v := 0.0
	src := Sampled(func() float64 { return v })
	b := BounceBetween[float64](src, 0, 1)
	for _, tt := range tests {
		v = tt.in
		b.MarkDirty()
		if got := b.Get(); got != tt.want {
			t.Errorf("BounceBetween(0,1)(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBounceNegativeAndOffset(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-0.5, 0, 1, 0.5},
		{-1.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{1, 2, 4, 3},
		{3, 2, 4, 3},
		{5, 5, 5, 5},
	}
	for _, tt := range tests {
		if got := Bounce(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Bounce(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tv := NewVar[float32](0.25)
	l := Lerp[float32](10, 20, tv)
	if got := l.Get(); got != 12.5 {
		t.Errorf("Lerp = %v, want 12.5", got)
	}
}

func TestVarObserve(t *testing.T) {
	v := NewVar(1)
	var seen []int
	cancel := v.Observe(func(x int) { seen = append(seen, x) })
	var other []int
	v.Observe(func(x int) { other = append(other, x) })

	v.Set(2)
	cancel()
	cancel()
	v.Set(3)

	if len(seen) != 1 || seen[0] != 2 {
		t.Errorf("cancelled observer saw %v, want [2]", seen)
	}
	if len(other) != 2 {
		t.Errorf("remaining observer saw %v, want [2 3]", other)
	}
	if v.Observers() != 1 {
		t.Errorf("Observers() = %d, want 1", v.Observers())
	}
	if v.Get() != 3 {
		t.Errorf("Get() = %d, want 3", v.Get())
	}
}

func TestElapsedManualClock(t *testing.T) {
	clock := NewManualClock(time.Unix(100, 0))
	e := Elapsed(clock)
	if got := e.Get(); got != 0 {
		t.Errorf("Elapsed at start = %v, want 0", got)
	}
	clock.Advance(1500 * time.Millisecond)
	if got := e.Get(); got != 0 {
		t.Errorf("Elapsed before MarkDirty = %v, want cached 0", got)
	}
	e.MarkDirty()
	if got := e.Get(); got != 1.5 {
		t.Errorf("Elapsed = %v, want 1.5", got)
	}
}

func TestFrameCounter(t *testing.T) {
	f := FrameCounter()
	for want := 0; want < 3; want++ {
		f.MarkDirty()
		if got := f.Get(); got != want {
			t.Errorf("frame = %d, want %d", got, want)
		}
		if got := f.Get(); got != want {
			t.Errorf("second read = %d, want %d", got, want)
		}
	}
}
