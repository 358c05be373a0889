package shaders

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Adjust applies color adjustments to input 0. Neutral values are skipped.
//
// Uniforms:
//   - brightness, contrast, saturation (float): change in [-1, 1], default 0
//   - gamma (float): gamma exponent, default 1
//   - hue (int): hue rotation in degrees, default 0
type Adjust struct {
	ggfx.ShaderBase
}

// NewAdjust creates an adjust shader with neutral settings.
func NewAdjust() *Adjust {
	s := &Adjust{ShaderBase: ggfx.NewShaderBase(NameAdjust)}
	u := s.Uniforms()
	mustDeclare(u, "brightness", ggfx.UniformFloat, 0)
	mustDeclare(u, "contrast", ggfx.UniformFloat, 0)
	mustDeclare(u, "saturation", ggfx.UniformFloat, 0)
	mustDeclare(u, "gamma", ggfx.UniformFloat, 1)
	mustDeclare(u, "hue", ggfx.UniformInt, 0)
	return s
}

// Draw applies the adjustments.
func (s *Adjust) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	u := s.Uniforms()
	var img image.Image = src
	if v := u.Float("brightness"); v != 0 {
		img = adjust.Brightness(img, float64(v))
	}
	if v := u.Float("contrast"); v != 0 {
		img = adjust.Contrast(img, float64(v))
	}
	if v := u.Float("saturation"); v != 0 {
		img = adjust.Saturation(img, float64(v))
	}
	if v := u.Float("gamma"); v != 1 && v > 0 {
		img = adjust.Gamma(img, float64(v))
	}
	if v := u.Int("hue"); v != 0 {
		img = adjust.Hue(img, v)
	}
	store(dst, img)
	return nil
}
