package shaders

import (
	"image"

	"github.com/anthonynsimon/bild/blur"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Blur blurs input 0.
//
// Uniforms:
//   - radius (float): blur radius in pixels, default 2; 0 copies the input
type Blur struct {
	ggfx.ShaderBase
	fn func(src image.Image, radius float64) *image.RGBA
}

// NewGaussianBlur creates a gaussian blur shader.
func NewGaussianBlur() *Blur {
	return newBlur(NameGaussianBlur, blur.Gaussian)
}

// NewBoxBlur creates a box blur shader.
func NewBoxBlur() *Blur {
	return newBlur(NameBoxBlur, blur.Box)
}

func newBlur(name string, fn func(image.Image, float64) *image.RGBA) *Blur {
	s := &Blur{ShaderBase: ggfx.NewShaderBase(name), fn: fn}
	mustDeclare(s.Uniforms(), "radius", ggfx.UniformFloat, 2)
	return s
}

// Draw blurs the input into target.
func (s *Blur) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	r := float64(s.Uniforms().Float("radius"))
	if r <= 0 {
		store(dst, src)
		return nil
	}
	store(dst, s.fn(src, r))
	return nil
}
