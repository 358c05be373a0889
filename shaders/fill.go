package shaders

import (
	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Fill paints the target with a solid color.
//
// Uniforms:
//   - color (vec4): straight RGBA in [0, 1], default opaque black
type Fill struct {
	ggfx.ShaderBase
}

// NewFill creates a fill shader.
func NewFill() *Fill {
	s := &Fill{ShaderBase: ggfx.NewShaderBase(NameFill)}
	mustDeclare(s.Uniforms(), "color", ggfx.UniformVec, []float32{0, 0, 0, 1})
	return s
}

// Draw fills target.
func (s *Fill) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	fillRGBA(dst, rgba(s.Uniforms().Vec("color")))
	return nil
}
