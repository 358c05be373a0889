package serial

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gogpu/ggfx"
)

// normalize turns decoded JSON numbers into float64 so UniformSet.Apply can
// convert them by slot kind. Values that are not JSON numbers pass through.
func normalize(v any) (any, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case []any:
		out := make([]float64, len(n))
		for i, e := range n {
			f, ok := element(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	case nil, map[string]any:
		return nil, false
	default:
		return v, true
	}
}

func element(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// applyProperties assigns recorded values to the shader's uniforms, using
// each slot's declared kind to pick the Go type.
func applyProperties(shader ggfx.ShaderProgram, props map[string]any) error {
	u := shader.Uniforms()
	for name, raw := range props {
		slot, ok := u.Lookup(name)
		if !ok {
			return fmt.Errorf("serial: %s: %w: %q", shader.Name(), ggfx.ErrUnknownUniform, name)
		}
		terr := &TypeError{Shader: shader.Name(), Uniform: name, Kind: slot.Kind(), Value: raw}
		v, ok := normalize(raw)
		if !ok {
			return terr
		}
		if err := u.Apply(name, v); err != nil {
			if errors.Is(err, ggfx.ErrUniformKind) {
				return terr
			}
			return err
		}
	}
	return nil
}
