package ggfx

import (
	"errors"
	"slices"
	"testing"
)

func newTestUniforms() *UniformSet {
	s := NewUniformSet()
	s.Require("radius", UniformFloat)
	s.Declare("matrix", UniformVec)
	s.Declare("passes", UniformInt)
	s.Declare("enabled", UniformBool)
	s.Declare("mode", UniformString)
	return s
}

func TestUniformSetters(t *testing.T) {
	s := newTestUniforms()
	if err := s.SetFloat("radius", 2.5); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	if err := s.SetVec("matrix", []float32{1, 2, 3}); err != nil {
		t.Fatalf("SetVec: %v", err)
	}
	if err := s.SetInt("passes", 3); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := s.SetBool("enabled", true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if err := s.SetString("mode", "screen"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	if s.Float("radius") != 2.5 || s.Int("passes") != 3 || !s.Bool("enabled") || s.Text("mode") != "screen" {
		t.Error("getter returned unexpected value")
	}
	if !slices.Equal(s.Vec("matrix"), []float32{1, 2, 3}) {
		t.Errorf("Vec = %v", s.Vec("matrix"))
	}
	if got := s.Names(); !slices.Equal(got, []string{"radius", "matrix", "passes", "enabled", "mode"}) {
		t.Errorf("Names() = %v, want declaration order", got)
	}
}

func TestUniformSetVecCopies(t *testing.T) {
	s := newTestUniforms()
	v := []float32{1, 2}
	_ = s.SetVec("matrix", v)
	v[0] = 9
	if s.Vec("matrix")[0] != 1 {
		t.Error("SetVec must copy its argument")
	}
}

func TestUniformErrors(t *testing.T) {
	s := newTestUniforms()
	if err := s.SetFloat("nope", 1); !errors.Is(err, ErrUnknownUniform) {
		t.Errorf("unknown: err = %v, want ErrUnknownUniform", err)
	}
	if err := s.SetInt("radius", 1); !errors.Is(err, ErrUniformKind) {
		t.Errorf("kind: err = %v, want ErrUniformKind", err)
	}
}

func TestUniformSnapshot(t *testing.T) {
	s := newTestUniforms()
	_ = s.SetFloat("radius", 4)
	_ = s.SetVec("matrix", []float32{0.5, 1})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot has %d entries, want 2 (unset slots omitted): %v", len(snap), snap)
	}
	if f, ok := snap["radius"].(float32); !ok || f != 4 {
		t.Errorf("radius = %#v, want float32(4)", snap["radius"])
	}
	vec, ok := snap["matrix"].([]float32)
	if !ok || !slices.Equal(vec, []float32{0.5, 1}) {
		t.Errorf("matrix = %#v", snap["matrix"])
	}
	vec[0] = 7
	if s.Vec("matrix")[0] != 0.5 {
		t.Error("Snapshot must not alias slot storage")
	}
}

func TestUniformApply(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		value   any
		wantErr bool
		check   func(*UniformSet) bool
	}{
		{"int into float stays float", "radius", 3, false, func(s *UniformSet) bool { return s.Float("radius") == 3 }},
		{"float64 into float", "radius", 1.25, false, func(s *UniformSet) bool { return s.Float("radius") == 1.25 }},
		{"any slice into vec", "matrix", []any{1.0, 2, float32(3)}, false, func(s *UniformSet) bool {
			return slices.Equal(s.Vec("matrix"), []float32{1, 2, 3})
		}},
		{"float64 slice into vec", "matrix", []float64{0.5}, false, func(s *UniformSet) bool {
			return slices.Equal(s.Vec("matrix"), []float32{0.5})
		}},
		{"integral float into int", "passes", 2.0, false, func(s *UniformSet) bool { return s.Int("passes") == 2 }},
		{"fractional float into int", "passes", 2.5, true, nil},
		{"bool", "enabled", true, false, func(s *UniformSet) bool { return s.Bool("enabled") }},
		{"string", "mode", "add", false, func(s *UniformSet) bool { return s.Text("mode") == "add" }},
		{"string into float", "radius", "x", true, nil},
		{"map into vec", "matrix", map[string]any{}, true, nil},
		{"unknown", "nope", 1, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestUniforms()
			err := s.Apply(tt.slot, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(s) {
				t.Errorf("unexpected slot value after Apply(%v)", tt.value)
			}
		})
	}
}

func TestUniformValidate(t *testing.T) {
	s := newTestUniforms()
	if err := s.Validate(); !errors.Is(err, ErrMissingUniform) {
		t.Errorf("Validate() = %v, want ErrMissingUniform", err)
	}
	_ = s.SetFloat("radius", 1)
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestUniformFlush(t *testing.T) {
	s := newTestUniforms()
	_ = s.SetInt("passes", 1)
	_ = s.SetFloat("radius", 1)

	var flushed []string
	n := s.Flush(func(u *Uniform) { flushed = append(flushed, u.Name()) })
	if n != 2 || !slices.Equal(flushed, []string{"radius", "passes"}) {
		t.Errorf("Flush = %d %v, want 2 [radius passes]", n, flushed)
	}
	if s.HasDirty() {
		t.Error("HasDirty() = true after Flush")
	}
	if n := s.Flush(nil); n != 0 {
		t.Errorf("second Flush = %d, want 0", n)
	}
}

func TestUniformBindFloat(t *testing.T) {
	s := newTestUniforms()
	v := NewVar(1.5)
	if err := s.BindFloat("radius", v); err != nil {
		t.Fatalf("BindFloat: %v", err)
	}
	if s.Float("radius") != 1.5 {
		t.Errorf("radius = %v, want 1.5", s.Float("radius"))
	}
	s.Flush(nil)
	v.Set(3)
	if s.Float("radius") != 3 {
		t.Errorf("radius = %v after Set, want 3", s.Float("radius"))
	}
	if u, _ := s.Lookup("radius"); !u.Dirty() {
		t.Error("observer update should mark the slot dirty")
	}

	s.Close()
	if v.Observers() != 0 {
		t.Errorf("Observers() = %d after Close, want 0", v.Observers())
	}
	v.Set(5)
	if s.Float("radius") != 3 {
		t.Error("closed set must not follow the Var")
	}

	if err := s.BindFloat("mode", v); !errors.Is(err, ErrUniformKind) {
		t.Errorf("BindFloat on string slot = %v, want ErrUniformKind", err)
	}
	b := NewVar(true)
	if err := s.BindBool("enabled", b); err != nil || !s.Bool("enabled") {
		t.Errorf("BindBool: err=%v value=%v", err, s.Bool("enabled"))
	}
}
