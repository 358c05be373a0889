package shaders

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Filter applies a parameterless per-image effect to input 0.
type Filter struct {
	ggfx.ShaderBase
	fn func(image.Image) *image.RGBA
}

// NewGrayscale creates a grayscale shader.
func NewGrayscale() *Filter { return newFilter(NameGrayscale, effect.Grayscale) }

// NewInvert creates a color inversion shader.
func NewInvert() *Filter { return newFilter(NameInvert, effect.Invert) }

// NewSepia creates a sepia tone shader.
func NewSepia() *Filter { return newFilter(NameSepia, effect.Sepia) }

func newFilter(name string, fn func(image.Image) *image.RGBA) *Filter {
	return &Filter{ShaderBase: ggfx.NewShaderBase(name), fn: fn}
}

// Draw applies the effect.
func (s *Filter) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	store(dst, s.fn(src))
	return nil
}
