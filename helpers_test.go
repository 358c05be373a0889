package ggfx

import (
	"errors"
	"image/color"

	"github.com/gogpu/ggfx/render"
)

var errNoPixels = errors.New("target has no pixels")

// levelShader writes input(0).R + value into every pixel's red channel.
type levelShader struct {
	ShaderBase
	inits int
	draws int
	fail  error
}

func newLevelShader(name string) *levelShader {
	s := &levelShader{ShaderBase: NewShaderBase(name)}
	s.Uniforms().Declare("value", UniformFloat)
	return s
}

func (s *levelShader) Init(render.Environment) error {
	s.inits++
	return nil
}

func (s *levelShader) Draw(target render.Target, _ Convention) error {
	if s.fail != nil {
		return s.fail
	}
	img := target.Image()
	if img == nil {
		return errNoPixels
	}
	base := 0
	if in := s.Input(0); in != nil && in.Image() != nil {
		base = int(in.Image().Pix[0])
	}
	v := uint8(base + int(s.Uniforms().Float("value")))
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+3] = 255
	}
	s.draws++
	return nil
}

func redAt(t render.Target) uint8 {
	img := t.Image()
	if img == nil {
		return 0
	}
	return img.RGBAAt(0, 0).R
}

func fill(t *render.PixmapTarget, r uint8) {
	t.Clear(color.RGBA{R: r, A: 255})
}
