// Package parallel runs per-pixel shader work on a fixed set of goroutines.
//
// CPU shaders split their target into horizontal bands and hand one closure
// per band to a Pool. The package keeps a lazily started default pool sized
// to GOMAXPROCS.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines pulling closures from one queue.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. If workers is
// zero or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queue:   make(chan func(), max(8, workers*4)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case fn := <-p.queue:
			fn()
		}
	}
}

// Run executes every closure and returns when all of them have finished.
// On a closed pool the closures run on the calling goroutine.
func (p *Pool) Run(work []func()) {
	switch {
	case len(work) == 0:
		return
	case len(work) == 1 || !p.running.Load():
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queue <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// Close stops the workers. Work already queued by a running Run call is
// finished first. Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
	// Drain closures a racing Run managed to queue.
	for {
		select {
		case fn := <-p.queue:
			fn()
		default:
			return
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// IsRunning reports whether the pool still dispatches to its workers.
func (p *Pool) IsRunning() bool { return p.running.Load() }

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the shared pool, starting it on first use.
func Default() *Pool {
	defaultOnce.Do(func() { defaultPool = NewPool(0) })
	return defaultPool
}
