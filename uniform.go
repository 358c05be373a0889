package ggfx

import (
	"fmt"
	"slices"
)

// UniformKind is the value shape of a uniform slot.
type UniformKind uint8

const (
	// UniformFloat is a scalar float32.
	UniformFloat UniformKind = iota

	// UniformVec is a float32 array of any length (vectors, matrices).
	UniformVec

	// UniformInt is a scalar int.
	UniformInt

	// UniformBool is a boolean flag.
	UniformBool

	// UniformString is a string option such as a blend mode name.
	UniformString
)

// String returns the kind name used in error messages.
func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "float"
	case UniformVec:
		return "vec"
	case UniformInt:
		return "int"
	case UniformBool:
		return "bool"
	case UniformString:
		return "string"
	default:
		return fmt.Sprintf("UniformKind(%d)", k)
	}
}

// Uniform is one named, typed slot of a UniformSet.
type Uniform struct {
	name     string
	kind     UniformKind
	required bool
	set      bool
	dirty    bool

	f float32
	v []float32
	i int
	b bool
	s string
}

// Name returns the slot name.
func (u *Uniform) Name() string { return u.name }

// Kind returns the slot kind.
func (u *Uniform) Kind() UniformKind { return u.kind }

// Required reports whether the slot must be set before a draw.
func (u *Uniform) Required() bool { return u.required }

// IsSet reports whether the slot was ever assigned.
func (u *Uniform) IsSet() bool { return u.set }

// Dirty reports whether the slot changed since the last Flush.
func (u *Uniform) Dirty() bool { return u.dirty }

// Float returns the value of a float slot.
func (u *Uniform) Float() float32 { return u.f }

// Vec returns the value of a vec slot. The slice is owned by the slot.
func (u *Uniform) Vec() []float32 { return u.v }

// Int returns the value of an int slot.
func (u *Uniform) Int() int { return u.i }

// Bool returns the value of a bool slot.
func (u *Uniform) Bool() bool { return u.b }

// Text returns the value of a string slot.
func (u *Uniform) Text() string { return u.s }

// Value returns the slot value as float32, []float32, int, bool or string.
func (u *Uniform) Value() any {
	switch u.kind {
	case UniformFloat:
		return u.f
	case UniformVec:
		return slices.Clone(u.v)
	case UniformInt:
		return u.i
	case UniformBool:
		return u.b
	default:
		return u.s
	}
}

func (u *Uniform) touch() {
	u.set = true
	u.dirty = true
}

// UniformSet is a shader's table of named uniform slots.
//
// Setting a slot marks it dirty; the pipeline flushes dirty slots to the
// shader right before its next draw. The set is also the reflection surface
// used by serialization: Snapshot lists every assigned slot and Apply writes
// a decoded value back with kind-directed coercion.
//
// UniformSet is not safe for concurrent use.
type UniformSet struct {
	slots   map[string]*Uniform
	order   []string
	cancels []func()
}

// NewUniformSet returns an empty set.
func NewUniformSet() *UniformSet {
	return &UniformSet{slots: make(map[string]*Uniform)}
}

// Declare adds an optional slot. Declaring an existing name returns the
// existing slot unchanged.
func (s *UniformSet) Declare(name string, kind UniformKind) *Uniform {
	if u, ok := s.slots[name]; ok {
		return u
	}
	u := &Uniform{name: name, kind: kind}
	s.slots[name] = u
	s.order = append(s.order, name)
	return u
}

// Require adds a slot that must be set before the shader can draw.
func (s *UniformSet) Require(name string, kind UniformKind) *Uniform {
	u := s.Declare(name, kind)
	u.required = true
	return u
}

// Lookup returns the slot registered under name.
func (s *UniformSet) Lookup(name string) (*Uniform, bool) {
	u, ok := s.slots[name]
	return u, ok
}

// Names returns slot names in declaration order.
func (s *UniformSet) Names() []string {
	return slices.Clone(s.order)
}

// Len returns the number of declared slots.
func (s *UniformSet) Len() int { return len(s.order) }

func (s *UniformSet) slot(name string, kind UniformKind) (*Uniform, error) {
	u, ok := s.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	if u.kind != kind {
		return nil, fmt.Errorf("%w: %q is %s, not %s", ErrUniformKind, name, u.kind, kind)
	}
	return u, nil
}

// SetFloat assigns a float slot.
func (s *UniformSet) SetFloat(name string, v float32) error {
	u, err := s.slot(name, UniformFloat)
	if err != nil {
		return err
	}
	u.f = v
	u.touch()
	return nil
}

// SetVec assigns a vec slot. The values are copied.
func (s *UniformSet) SetVec(name string, v []float32) error {
	u, err := s.slot(name, UniformVec)
	if err != nil {
		return err
	}
	u.v = slices.Clone(v)
	u.touch()
	return nil
}

// SetInt assigns an int slot.
func (s *UniformSet) SetInt(name string, v int) error {
	u, err := s.slot(name, UniformInt)
	if err != nil {
		return err
	}
	u.i = v
	u.touch()
	return nil
}

// SetBool assigns a bool slot.
func (s *UniformSet) SetBool(name string, v bool) error {
	u, err := s.slot(name, UniformBool)
	if err != nil {
		return err
	}
	u.b = v
	u.touch()
	return nil
}

// SetString assigns a string slot.
func (s *UniformSet) SetString(name string, v string) error {
	u, err := s.slot(name, UniformString)
	if err != nil {
		return err
	}
	u.s = v
	u.touch()
	return nil
}

// Float returns a float slot value, or 0 if the slot does not exist.
func (s *UniformSet) Float(name string) float32 {
	if u, ok := s.slots[name]; ok {
		return u.f
	}
	return 0
}

// Vec returns a vec slot value, or nil.
func (s *UniformSet) Vec(name string) []float32 {
	if u, ok := s.slots[name]; ok {
		return u.v
	}
	return nil
}

// Int returns an int slot value, or 0.
func (s *UniformSet) Int(name string) int {
	if u, ok := s.slots[name]; ok {
		return u.i
	}
	return 0
}

// Bool returns a bool slot value, or false.
func (s *UniformSet) Bool(name string) bool {
	if u, ok := s.slots[name]; ok {
		return u.b
	}
	return false
}

// Text returns a string slot value, or "".
func (s *UniformSet) Text(name string) string {
	if u, ok := s.slots[name]; ok {
		return u.s
	}
	return ""
}

// Snapshot returns every assigned slot as name to value, where values are
// float32, []float32, int, bool or string. Unset slots are omitted.
func (s *UniformSet) Snapshot() map[string]any {
	out := make(map[string]any, len(s.order))
	for _, name := range s.order {
		u := s.slots[name]
		if u.set {
			out[name] = u.Value()
		}
	}
	return out
}

// Apply assigns value to the named slot, converting Go numeric types to the
// slot's declared kind. Integral values assigned to a float slot stay
// floats; fractional values assigned to an int slot are rejected.
func (s *UniformSet) Apply(name string, value any) error {
	u, ok := s.slots[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	mismatch := func() error {
		return fmt.Errorf("%w: cannot assign %T to %s uniform %q", ErrUniformKind, value, u.kind, name)
	}
	switch u.kind {
	case UniformFloat:
		f, ok := toFloat64(value)
		if !ok {
			return mismatch()
		}
		return s.SetFloat(name, float32(f))
	case UniformVec:
		v, ok := toFloat32s(value)
		if !ok {
			return mismatch()
		}
		return s.SetVec(name, v)
	case UniformInt:
		f, ok := toFloat64(value)
		if !ok || f != float64(int(f)) {
			return mismatch()
		}
		return s.SetInt(name, int(f))
	case UniformBool:
		b, ok := value.(bool)
		if !ok {
			return mismatch()
		}
		return s.SetBool(name, b)
	default:
		str, ok := value.(string)
		if !ok {
			return mismatch()
		}
		return s.SetString(name, str)
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}

func toFloat32s(v any) ([]float32, bool) {
	switch a := v.(type) {
	case []float32:
		return a, true
	case []float64:
		out := make([]float32, len(a))
		for i, f := range a {
			out[i] = float32(f)
		}
		return out, true
	case []any:
		out := make([]float32, len(a))
		for i, e := range a {
			f, ok := toFloat64(e)
			if !ok {
				return nil, false
			}
			out[i] = float32(f)
		}
		return out, true
	default:
		return nil, false
	}
}

// Validate returns an error wrapping ErrMissingUniform for the first
// required slot that was never set.
func (s *UniformSet) Validate() error {
	for _, name := range s.order {
		u := s.slots[name]
		if u.required && !u.set {
			return fmt.Errorf("%w: %q", ErrMissingUniform, name)
		}
	}
	return nil
}

// Flush calls fn for each dirty slot in declaration order, clears the dirty
// flags and returns how many slots were flushed. fn may be nil.
func (s *UniformSet) Flush(fn func(u *Uniform)) int {
	n := 0
	for _, name := range s.order {
		u := s.slots[name]
		if !u.dirty {
			continue
		}
		if fn != nil {
			fn(u)
		}
		u.dirty = false
		n++
	}
	return n
}

// HasDirty reports whether any slot awaits a flush.
func (s *UniformSet) HasDirty() bool {
	for _, u := range s.slots {
		if u.dirty {
			return true
		}
	}
	return false
}

// BindFloat assigns v's current value to the named float slot and keeps the
// slot in sync on every v.Set until Close.
func (s *UniformSet) BindFloat(name string, v *Var[float64]) error {
	if err := s.SetFloat(name, float32(v.Get())); err != nil {
		return err
	}
	s.cancels = append(s.cancels, v.Observe(func(f float64) {
		_ = s.SetFloat(name, float32(f))
	}))
	return nil
}

// BindBool is the bool counterpart of BindFloat.
func (s *UniformSet) BindBool(name string, v *Var[bool]) error {
	if err := s.SetBool(name, v.Get()); err != nil {
		return err
	}
	s.cancels = append(s.cancels, v.Observe(func(b bool) {
		_ = s.SetBool(name, b)
	}))
	return nil
}

// Close cancels every Var observer registered through Bind methods.
func (s *UniformSet) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}
