package shaders

import (
	"fmt"
	"sort"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

var interpolators = map[string]draw.Interpolator{
	"nearest":        draw.NearestNeighbor,
	"approxbilinear": draw.ApproxBiLinear,
	"bilinear":       draw.BiLinear,
	"catmullrom":     draw.CatmullRom,
}

// Filters returns the supported resample filter names, sorted.
func Filters() []string {
	names := make([]string, 0, len(interpolators))
	for name := range interpolators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resample scales input 0 to fill the whole target.
//
// Uniforms:
//   - filter (string): one of Filters, default "bilinear"
type Resample struct {
	ggfx.ShaderBase
}

// NewResample creates a resample shader.
func NewResample() *Resample {
	s := &Resample{ShaderBase: ggfx.NewShaderBase(NameResample)}
	mustDeclare(s.Uniforms(), "filter", ggfx.UniformString, "bilinear")
	return s
}

// Draw scales the input into target.
func (s *Resample) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	name := s.Uniforms().Text("filter")
	interp, ok := interpolators[name]
	if !ok {
		return fmt.Errorf("%w: resample filter %q", ErrBadUniform, name)
	}
	if src.Bounds().Size() == dst.Bounds().Size() {
		store(dst, src)
		return nil
	}
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return nil
}
