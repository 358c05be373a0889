package shaders

import "github.com/gogpu/ggfx"

// Registry names of the shaders in this package.
const (
	NameFill         = "fill"
	NameGradient     = "gradient"
	NameCopy         = "copy"
	NameBlend        = "blend"
	NameGaussianBlur = "gaussian_blur"
	NameBoxBlur      = "box_blur"
	NameAdjust       = "adjust"
	NameGrayscale    = "grayscale"
	NameInvert       = "invert"
	NameSepia        = "sepia"
	NameColorMatrix  = "color_matrix"
	NameResample     = "resample"
	NameVignette     = "vignette"
	NameFail         = "fail"
)

func init() {
	register := func(name string, fn func() ggfx.ShaderProgram) {
		ggfx.RegisterShader(name, ggfx.ShaderFactory(fn))
	}
	register(NameFill, func() ggfx.ShaderProgram { return NewFill() })
	register(NameGradient, func() ggfx.ShaderProgram { return NewGradient() })
	register(NameCopy, func() ggfx.ShaderProgram { return NewCopy() })
	register(NameBlend, func() ggfx.ShaderProgram { return NewBlend() })
	register(NameGaussianBlur, func() ggfx.ShaderProgram { return NewGaussianBlur() })
	register(NameBoxBlur, func() ggfx.ShaderProgram { return NewBoxBlur() })
	register(NameAdjust, func() ggfx.ShaderProgram { return NewAdjust() })
	register(NameGrayscale, func() ggfx.ShaderProgram { return NewGrayscale() })
	register(NameInvert, func() ggfx.ShaderProgram { return NewInvert() })
	register(NameSepia, func() ggfx.ShaderProgram { return NewSepia() })
	register(NameColorMatrix, func() ggfx.ShaderProgram { return NewColorMatrix() })
	register(NameResample, func() ggfx.ShaderProgram { return NewResample() })
	register(NameVignette, func() ggfx.ShaderProgram { return NewVignette() })
	register(NameFail, func() ggfx.ShaderProgram { return NewFail() })
}
