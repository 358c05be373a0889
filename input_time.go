package ggfx

import "time"

// Clock is the time source for animation inputs.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a clock advanced explicitly, for tests and offline
// rendering at a fixed frame rate.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// Elapsed returns a sampled input yielding the seconds elapsed on clock since
// the input was created. A nil clock means SystemClock.
func Elapsed(clock Clock) *SampledInput[float64] {
	if clock == nil {
		clock = SystemClock{}
	}
	start := clock.Now()
	return Sampled(func() float64 {
		return clock.Now().Sub(start).Seconds()
	})
}

// FrameCounter returns a sampled input that counts samples: 0 on the first
// run it is tracked in, then 1, 2 and so on. Reads within one run share the
// same count.
func FrameCounter() *SampledInput[int] {
	next := 0
	return Sampled(func() int {
		n := next
		next++
		return n
	})
}
