package shaders

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/internal/parallel"
	"github.com/gogpu/ggfx/render"
)

// Gradient paints a linear gradient across the target.
//
// Uniforms:
//   - from, to (vec4): end colors, straight RGBA in [0, 1]
//   - angle (float): direction in degrees; 0 runs left to right, 90 runs
//     from the visual top to the visual bottom regardless of convention
type Gradient struct {
	ggfx.ShaderBase
}

// NewGradient creates a black-to-white horizontal gradient.
func NewGradient() *Gradient {
	s := &Gradient{ShaderBase: ggfx.NewShaderBase(NameGradient)}
	u := s.Uniforms()
	mustDeclare(u, "from", ggfx.UniformVec, []float32{0, 0, 0, 1})
	mustDeclare(u, "to", ggfx.UniformVec, []float32{1, 1, 1, 1})
	mustDeclare(u, "angle", ggfx.UniformFloat, 0)
	return s
}

// Draw renders the gradient. Under BottomLeft, row 0 is the visual bottom,
// so the vertical component is mirrored.
func (s *Gradient) Draw(target render.Target, conv ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	u := s.Uniforms()
	from := vec4(u.Vec("from"))
	to := vec4(u.Vec("to"))

	rad := u.Float("angle") * math32.Pi / 180
	dx, dy := math32.Cos(rad), math32.Sin(rad)
	extent := (math32.Abs(dx) + math32.Abs(dy)) / 2
	if extent == 0 {
		extent = 1
	}

	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	parallel.Rows(b.Min.Y, b.Max.Y, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y-b.Min.Y) + 0.5) / h
			if conv == ggfx.BottomLeft {
				v = 1 - v
			}
			for x := b.Min.X; x < b.Max.X; x++ {
				uu := (float32(x-b.Min.X) + 0.5) / w
				t := ((uu-0.5)*dx+(v-0.5)*dy)/extent*0.5 + 0.5
				t = math32.Max(0, math32.Min(1, t))
				var c [4]float32
				for i := range c {
					c[i] = from[i] + (to[i]-from[i])*t
				}
				n := color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
				dst.SetRGBA(x, y, color.RGBAModel.Convert(n).(color.RGBA))
			}
		}
	})
	return nil
}

func vec4(v []float32) [4]float32 {
	out := [4]float32{0, 0, 0, 1}
	copy(out[:], v)
	return out
}
