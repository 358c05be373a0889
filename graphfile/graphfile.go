// Package graphfile loads ggfx graphs from HCL documents.
//
// A graph file declares intermediate buffers and an ordered list of passes:
//
//	buffer "blurred" {}
//
//	pass "gaussian_blur" {
//	  inputs   = ["photo"]
//	  output   = "blurred"
//	  uniforms = { radius = 4 }
//	}
//
//	pass "blend" {
//	  inputs   = ["photo", "blurred"]
//	  output   = "output"
//	  uniforms = { mode = "screen", opacity = 0.8 }
//	  recycle  = ["blurred"]
//	}
//
// Pass labels are shader registry names. Names in inputs and output refer to
// declared buffers, to assets registered on the builder, or to "output", the
// graph's final target.
package graphfile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/gogpu/ggfx"
)

// OutputName is the reserved name of the graph's final target.
const OutputName = "output"

var (
	// ErrDuplicateBuffer is returned when a buffer is declared twice.
	ErrDuplicateBuffer = errors.New("graphfile: duplicate buffer")

	// ErrReservedName is returned when a buffer is named OutputName.
	ErrReservedName = errors.New("graphfile: reserved name")

	// ErrUnknownName is returned by Build when a pass refers to a name that
	// is neither a buffer nor an asset.
	ErrUnknownName = errors.New("graphfile: unknown name")

	// ErrUniformValue is returned for uniform values that are not numbers,
	// bools, strings or lists of numbers.
	ErrUniformValue = errors.New("graphfile: unsupported uniform value")
)

type fileSchema struct {
	Buffers []*bufferBlock `hcl:"buffer,block"`
	Passes  []*passBlock   `hcl:"pass,block"`
}

type bufferBlock struct {
	Name string `hcl:"name,label"`
}

type passBlock struct {
	Shader   string         `hcl:"shader,label"`
	Inputs   []string       `hcl:"inputs,optional"`
	Output   string         `hcl:"output"`
	Uniforms hcl.Expression `hcl:"uniforms,optional"`
	Recycle  []string       `hcl:"recycle,optional"`
}

// Pass is one decoded pass block.
type Pass struct {
	Shader   string
	Inputs   []string
	Output   string
	Uniforms map[string]any
	Recycle  []string
}

// Graph is a decoded graph file.
type Graph struct {
	Filename string
	Buffers  []string
	Passes   []Pass

	shaders []ggfx.ShaderProgram
}

// Load parses the graph file at path.
func Load(path string) (*Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: parse %s: %w", path, diags)
	}
	return decode(file, path)
}

// Parse parses a graph document held in memory. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: parse %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*Graph, error) {
	var doc fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: decode %s: %w", filename, diags)
	}

	g := &Graph{Filename: filename}
	for _, b := range doc.Buffers {
		switch {
		case b.Name == OutputName:
			return nil, fmt.Errorf("%w: buffer %q", ErrReservedName, b.Name)
		case slices.Contains(g.Buffers, b.Name):
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBuffer, b.Name)
		}
		g.Buffers = append(g.Buffers, b.Name)
	}
	for i, p := range doc.Passes {
		uniforms, err := decodeUniforms(p.Uniforms)
		if err != nil {
			return nil, fmt.Errorf("graphfile: %s: pass %d (%s): %w", filename, i, p.Shader, err)
		}
		g.Passes = append(g.Passes, Pass{
			Shader:   p.Shader,
			Inputs:   p.Inputs,
			Output:   p.Output,
			Uniforms: uniforms,
			Recycle:  p.Recycle,
		})
	}
	ggfx.Logger().Debug("graphfile: loaded", "file", filename, "buffers", len(g.Buffers), "passes", len(g.Passes))
	return g, nil
}

func decodeUniforms(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%w: uniforms must be an object, got %s", ErrUniformValue, ty.FriendlyName())
	}
	out := make(map[string]any)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		native, err := toNative(v)
		if err != nil {
			return nil, fmt.Errorf("uniform %q: %w", name, err)
		}
		out[name] = native
	}
	return out, nil
}

// toNative converts a cty value into the shapes UniformSet.Apply accepts.
func toNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("%w: null", ErrUniformValue)
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty.IsListType() || ty.IsTupleType():
		var out []float64
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			if e.IsNull() || e.Type() != cty.Number {
				return nil, fmt.Errorf("%w: list element %s", ErrUniformValue, e.Type().FriendlyName())
			}
			var f float64
			if err := gocty.FromCtyValue(e, &f); err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUniformValue, ty.FriendlyName())
	}
}
