package shaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Shader errors.
var (
	// ErrNoPixels is returned when a CPU shader draws into a target without
	// CPU storage, such as a GPU texture or a placeholder.
	ErrNoPixels = errors.New("shaders: target has no CPU pixels")

	// ErrMissingInput is returned when a required input slot is unbound.
	ErrMissingInput = errors.New("shaders: input texture not bound")

	// ErrBadUniform is returned when a uniform holds an unusable value.
	ErrBadUniform = errors.New("shaders: invalid uniform value")

	// ErrForcedFailure is returned by the fail shader.
	ErrForcedFailure = errors.New("shaders: forced failure")
)

func pixels(t render.Target) (*image.RGBA, error) {
	if t == nil {
		return nil, ggfx.ErrNilTarget
	}
	img := t.Image()
	if img == nil {
		return nil, ErrNoPixels
	}
	return img, nil
}

func input(b *ggfx.ShaderBase, slot int) (*image.RGBA, error) {
	t := b.Input(slot)
	if t == nil {
		return nil, fmt.Errorf("%w: %s slot %d", ErrMissingInput, b.Name(), slot)
	}
	img := t.Image()
	if img == nil {
		return nil, fmt.Errorf("%w: %s slot %d", ErrNoPixels, b.Name(), slot)
	}
	return img, nil
}

// store copies src into dst at the origin. src may alias dst's input.
func store(dst *image.RGBA, src image.Image) {
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
}

// rgba converts a straight-alpha vec4 in [0, 1] to a premultiplied color.
// Missing components default to 0, and alpha to 1.
func rgba(v []float32) color.RGBA {
	var c [4]float32
	c[3] = 1
	copy(c[:], v)
	n := color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

// unit8 maps [0, 1] to [0, 255] with rounding and clamping.
func unit8(f float32) uint8 {
	return clampUint8(f*255 + 0.5)
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func fillRGBA(img *image.RGBA, c color.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// mustDeclare declares a slot and assigns its default.
func mustDeclare(u *ggfx.UniformSet, name string, kind ggfx.UniformKind, def any) {
	u.Declare(name, kind)
	if def == nil {
		return
	}
	if err := u.Apply(name, def); err != nil {
		panic(err)
	}
}
