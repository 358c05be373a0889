package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_Create(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestPool_Run(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.Run(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	pool.Run(nil)
}

func TestPool_RunAfterClose(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
	var counter atomic.Int64
	pool.Run([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if counter.Load() != 2 {
		t.Errorf("closed pool ran %d closures, want 2 inline", counter.Load())
	}
}

func TestPool_ConcurrentRun(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 50)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.Run(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 400 {
		t.Errorf("counter = %d, want 400", counter.Load())
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name   string
		y0, y1 int
		n      int
		want   [][2]int
	}{
		{"empty", 5, 5, 4, nil},
		{"inverted", 8, 2, 4, nil},
		{"short range is one band", 0, 10, 8, [][2]int{{0, 10}}},
		{"even split", 0, 64, 4, [][2]int{{0, 16}, {16, 32}, {32, 48}, {48, 64}}},
		{"uneven split", 10, 60, 2, [][2]int{{10, 35}, {35, 60}}},
		{"capped by row count", 0, 40, 16, [][2]int{{0, 14}, {14, 28}, {28, 40}}},
		{"zero workers", 0, 20, 0, [][2]int{{0, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bands(tt.y0, tt.y1, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Bands(%d, %d, %d) = %v, want %v", tt.y0, tt.y1, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRowsCoversEveryRowOnce(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	const y0, y1 = 3, 203
	var mu sync.Mutex
	seen := make(map[int]int)
	pool.Rows(y0, y1, func(a, b int) {
		mu.Lock()
		defer mu.Unlock()
		for y := a; y < b; y++ {
			seen[y]++
		}
	})

	if len(seen) != y1-y0 {
		t.Fatalf("visited %d rows, want %d", len(seen), y1-y0)
	}
	for y := y0; y < y1; y++ {
		if seen[y] != 1 {
			t.Errorf("row %d visited %d times", y, seen[y])
		}
	}
}

func TestDefaultPool(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same pool")
	}
	var rows atomic.Int64
	Rows(0, 50, func(a, b int) { rows.Add(int64(b - a)) })
	if rows.Load() != 50 {
		t.Errorf("rows = %d, want 50", rows.Load())
	}
}
