package shaders

import (
	"fmt"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

// Fail is a diagnostic shader whose Draw always returns ErrForcedFailure.
// It is used to exercise pipeline error handling.
//
// Uniforms:
//   - message (string): appended to the error
type Fail struct {
	ggfx.ShaderBase
}

// NewFail creates a fail shader.
func NewFail() *Fail {
	s := &Fail{ShaderBase: ggfx.NewShaderBase(NameFail)}
	mustDeclare(s.Uniforms(), "message", ggfx.UniformString, "")
	return s
}

// Draw fails.
func (s *Fail) Draw(render.Target, ggfx.Convention) error {
	if msg := s.Uniforms().Text("message"); msg != "" {
		return fmt.Errorf("%w: %s", ErrForcedFailure, msg)
	}
	return ErrForcedFailure
}
