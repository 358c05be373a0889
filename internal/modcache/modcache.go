package modcache

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// ErrBadSPIRV is returned when the compiler output is not a whole number of
// 32-bit words.
var ErrBadSPIRV = errors.New("modcache: SPIR-V length is not a multiple of 4")

// DefaultCapacity is the number of modules kept by the package cache.
const DefaultCapacity = 64

// CompileFunc compiles WGSL source to SPIR-V bytes.
type CompileFunc func(source string) ([]byte, error)

type key [sha256.Size]byte

type entry struct {
	spirv []uint32
	node  *node[key]
}

// Cache maps WGSL sources to compiled SPIR-V words.
//
// Cache is safe for concurrent use. Compilation happens under the lock so
// that one source is never compiled twice.
type Cache struct {
	mu       sync.Mutex
	entries  map[key]*entry
	order    recency[key]
	capacity int
	compile  CompileFunc

	hits   int
	misses int
}

// New creates a cache holding up to capacity modules. A capacity of 0
// means unlimited. A nil compile uses naga.Compile.
func New(capacity int, compile CompileFunc) *Cache {
	if compile == nil {
		compile = naga.Compile
	}
	return &Cache{
		entries:  make(map[key]*entry),
		capacity: capacity,
		compile:  compile,
	}
}

// Get returns the SPIR-V for source, compiling it on a miss. Failed
// compilations are not cached.
func (c *Cache) Get(source string) ([]uint32, error) {
	k := key(sha256.Sum256([]byte(source)))

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[k]; ok {
		c.hits++
		c.order.touch(e.node)
		return e.spirv, nil
	}
	c.misses++

	raw, err := c.compile(source)
	if err != nil {
		return nil, fmt.Errorf("modcache: compile: %w", err)
	}
	words, err := toWords(raw)
	if err != nil {
		return nil, err
	}
	c.entries[k] = &entry{spirv: words, node: c.order.pushFront(k)}
	for c.capacity > 0 && len(c.entries) > c.capacity {
		old, ok := c.order.popBack()
		if !ok {
			break
		}
		delete(c.entries, old)
	}
	return words, nil
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every cached module.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.order = recency[key]{}
}

// toWords converts little-endian SPIR-V bytes to 32-bit words.
func toWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, ErrBadSPIRV
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

var shared = New(DefaultCapacity, nil)

// Compile returns the SPIR-V for source from the package cache.
func Compile(source string) ([]uint32, error) {
	return shared.Get(source)
}
