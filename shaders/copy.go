package shaders

import (
	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Copy copies input 0 into the target at the origin without scaling.
type Copy struct {
	ggfx.ShaderBase
}

// NewCopy creates a copy shader.
func NewCopy() *Copy {
	return &Copy{ShaderBase: ggfx.NewShaderBase(NameCopy)}
}

// Draw copies the input.
func (s *Copy) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	src, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	store(dst, src)
	return nil
}
