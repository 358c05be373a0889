package shaders

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/internal/parallel"
	"github.com/gogpu/ggfx/render"
)

// Vignette darkens input 0 towards the corners.
//
// Uniforms:
//   - strength (float): darkening at the corners in [0, 1], default 0.5
//   - radius (float): normalized distance where darkening starts, default 0.75
type Vignette struct {
	ggfx.ShaderBase
}

// NewVignette creates a vignette shader.
func NewVignette() *Vignette {
	s := &Vignette{ShaderBase: ggfx.NewShaderBase(NameVignette)}
	u := s.Uniforms()
	mustDeclare(u, "strength", ggfx.UniformFloat, 0.5)
	mustDeclare(u, "radius", ggfx.UniformFloat, 0.75)
	return s
}

// Draw applies the vignette. The effect is symmetric, so the coordinate
// convention does not matter.
func (s *Vignette) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	u := s.Uniforms()
	strength := math32.Max(0, math32.Min(1, u.Float("strength")))
	radius := u.Float("radius")

	b := dst.Bounds().Intersect(src.Bounds())
	w, h := float32(dst.Bounds().Dx()), float32(dst.Bounds().Dy())
	parallel.Rows(b.Min.Y, b.Max.Y, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dx := (float32(x)+0.5)/w - 0.5
				dy := (float32(y)+0.5)/h - 0.5
				d := math32.Hypot(dx, dy) / math32.Sqrt2 * 2
				f := 1 - strength*smoothstep(radius, 1, d)

				si, di := src.PixOffset(x, y), dst.PixOffset(x, y)
				dst.Pix[di+0] = clampUint8(float32(src.Pix[si+0])*f + 0.5)
				dst.Pix[di+1] = clampUint8(float32(src.Pix[si+1])*f + 0.5)
				dst.Pix[di+2] = clampUint8(float32(src.Pix[si+2])*f + 0.5)
				dst.Pix[di+3] = src.Pix[si+3]
			}
		}
	})
	return nil
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := math32.Max(0, math32.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
