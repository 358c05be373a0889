package ggfx

import (
	"cmp"
	"math"
)

// Input is a value source read by step setup closures.
type Input[T any] interface {
	Get() T
}

// Dirtier is implemented by inputs that cache their value for one run.
// Any Dirtier passed in a step's input list is tracked by the pipeline and
// marked dirty at the start of every Run.
type Dirtier interface {
	MarkDirty()
}

// ConstInput is fixed at creation and never refreshed.
type ConstInput[T any] struct {
	value T
}

// Const returns an input that always yields v.
func Const[T any](v T) ConstInput[T] {
	return ConstInput[T]{value: v}
}

// Get returns the constant value.
func (c ConstInput[T]) Get() T { return c.value }

// SampledInput caches the result of a sample function until it is marked
// dirty. Within one run every read after the first returns the identical
// cached value, so all steps of a frame observe one consistent snapshot.
//
// A new SampledInput starts dirty. Derived inputs built with Map, Map2,
// BounceBetween, Clamp or Lerp forward MarkDirty to their upstream inputs.
type SampledInput[T any] struct {
	sample   func() T
	last     T
	dirty    bool
	samples  int
	upstream []Dirtier
}

// Sampled returns an input that calls sample at most once per dirty period.
func Sampled[T any](sample func() T) *SampledInput[T] {
	return &SampledInput[T]{sample: sample, dirty: true}
}

// derive creates a SampledInput whose dirtiness propagates to ins.
func derive[T any](sample func() T, ins ...any) *SampledInput[T] {
	s := Sampled(sample)
	for _, in := range ins {
		if d, ok := in.(Dirtier); ok {
			s.upstream = append(s.upstream, d)
		}
	}
	return s
}

// Get returns the cached value, re-sampling first if the input is dirty.
func (s *SampledInput[T]) Get() T {
	if s.dirty {
		s.last = s.sample()
		s.dirty = false
		s.samples++
	}
	return s.last
}

// MarkDirty invalidates the cached value and every upstream input.
func (s *SampledInput[T]) MarkDirty() {
	s.dirty = true
	for _, u := range s.upstream {
		u.MarkDirty()
	}
}

// Dirty reports whether the next Get will re-sample.
func (s *SampledInput[T]) Dirty() bool { return s.dirty }

// Samples returns how many times the sample function has run.
func (s *SampledInput[T]) Samples() int { return s.samples }

// Map derives an input by applying fn to in's value.
func Map[T, U any](in Input[T], fn func(T) U) *SampledInput[U] {
	return derive(func() U { return fn(in.Get()) }, in)
}

// Map2 derives an input from two inputs.
func Map2[A, B, R any](a Input[A], b Input[B], fn func(A, B) R) *SampledInput[R] {
	return derive(func() R { return fn(a.Get(), b.Get()) }, a, b)
}

// Float is the constraint for inputs used in arithmetic derivations.
type Float interface {
	~float32 | ~float64
}

// Bounce maps v onto a triangle wave between lo and hi with period
// 2*(hi-lo). The phase is taken from v itself, so Bounce(0, lo, hi) == lo.
func Bounce[T Float](v, lo, hi T) T {
	interval := float64(hi - lo)
	if interval <= 0 {
		return lo
	}
	m := math.Mod(float64(v), 2*interval)
	if m < 0 {
		m += 2 * interval
	}
	if m < interval {
		return lo + T(m)
	}
	return hi - T(m-interval)
}

// BounceBetween derives an input that reflects in's value back and forth
// between lo and hi.
func BounceBetween[T Float](in Input[T], lo, hi T) *SampledInput[T] {
	return derive(func() T { return Bounce(in.Get(), lo, hi) }, in)
}

// Clamp derives an input limited to [lo, hi].
func Clamp[T cmp.Ordered](in Input[T], lo, hi T) *SampledInput[T] {
	return derive(func() T { return min(max(in.Get(), lo), hi) }, in)
}

// Lerp derives an input interpolating from a to b by t.
func Lerp[T Float](a, b T, t Input[T]) *SampledInput[T] {
	return derive(func() T { return a + (b-a)*t.Get() }, t)
}
