package shaders

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/internal/parallel"
	"github.com/gogpu/ggfx/render"
)

// Matrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Channels are straight-alpha values in [0, 255]; the fifth column is an
// offset in the same range.
type Matrix [20]float32

// IdentityMatrix passes colors through unchanged.
func IdentityMatrix() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix scales RGB by factor: 0 is black, 1 unchanged.
func BrightnessMatrix(factor float32) Matrix {
	return Matrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales RGB around mid-gray: 0 is flat gray, 1 unchanged.
func ContrastMatrix(factor float32) Matrix {
	offset := 128 * (1 - factor)
	return Matrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// SaturationMatrix blends between Rec. 709 luminance (0) and identity (1).
func SaturationMatrix(factor float32) Matrix {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return Matrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotateMatrix rotates hue by degrees.
func HueRotateMatrix(degrees float32) Matrix {
	rad := degrees * math32.Pi / 180
	cos, sin := math32.Cos(rad), math32.Sin(rad)
	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)
	return Matrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Then returns the matrix applying m first and next second.
func (m Matrix) Then(next Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = next[row*5+0]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return r
}

// Slice returns the matrix as a vec uniform value.
func (m Matrix) Slice() []float32 { return m[:] }

// ColorMatrix transforms the colors of input 0 with a 4x5 matrix.
//
// Uniforms:
//   - matrix (vec, required): 20 floats, see Matrix
type ColorMatrix struct {
	ggfx.ShaderBase
}

// NewColorMatrix creates a color matrix shader. The matrix uniform has no
// default and must be set before drawing.
func NewColorMatrix() *ColorMatrix {
	s := &ColorMatrix{ShaderBase: ggfx.NewShaderBase(NameColorMatrix)}
	s.Uniforms().Require("matrix", ggfx.UniformVec)
	return s
}

// Draw applies the matrix. Pixels are un-premultiplied before the transform
// and premultiplied again for storage.
func (s *ColorMatrix) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	v := s.Uniforms().Vec("matrix")
	if len(v) != 20 {
		return fmt.Errorf("%w: matrix has %d elements, want 20", ErrBadUniform, len(v))
	}
	var m Matrix
	copy(m[:], v)

	b := dst.Bounds().Intersect(src.Bounds())
	parallel.Rows(b.Min.Y, b.Max.Y, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				si := src.PixOffset(x, y)
				di := dst.PixOffset(x, y)

				a := float32(src.Pix[si+3])
				var r, g, bl float32
				if a > 0 {
					r = float32(src.Pix[si+0]) * 255 / a
					g = float32(src.Pix[si+1]) * 255 / a
					bl = float32(src.Pix[si+2]) * 255 / a
				}

				nr := m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4]
				ng := m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9]
				nb := m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14]
				na := m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19]

				na = math32.Max(0, math32.Min(255, na))
				f := na / 255
				dst.Pix[di+0] = clampUint8(math32.Round(math32.Min(255, nr) * f))
				dst.Pix[di+1] = clampUint8(math32.Round(math32.Min(255, ng) * f))
				dst.Pix[di+2] = clampUint8(math32.Round(math32.Min(255, nb) * f))
				dst.Pix[di+3] = clampUint8(math32.Round(na))
			}
		}
	})
	return nil
}
