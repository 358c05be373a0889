package ggfx

import (
	"fmt"
	"sort"
	"sync"
)

// ShaderFactory creates a shader with default uniforms.
// Factories are registered via RegisterShader and called by NewShader,
// which is how serialized graphs reconstruct their shaders.
type ShaderFactory func() ShaderProgram

var (
	registryMu sync.RWMutex
	factories  = make(map[string]ShaderFactory)
)

// RegisterShader registers a shader factory under name. It is typically
// called from init() in shader packages, following the database/sql driver
// pattern:
//
//	func init() {
//	    ggfx.RegisterShader("invert", func() ggfx.ShaderProgram {
//	        return NewInvert()
//	    })
//	}
//
// RegisterShader panics if factory is nil or name is already registered.
func RegisterShader(name string, factory ShaderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("ggfx: RegisterShader factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("ggfx: RegisterShader called twice for " + name)
	}
	factories[name] = factory
}

// UnregisterShader removes a factory. Intended for tests; unknown names are
// ignored.
func UnregisterShader(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewShader creates a shader by registry name.
func NewShader(name string) (ShaderProgram, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownShader, name)
	}
	return factory(), nil
}

// MustShader is like NewShader but panics on error.
func MustShader(name string) ShaderProgram {
	s, err := NewShader(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Shaders returns the registered shader names, sorted.
func Shaders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
