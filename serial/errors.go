package serial

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggfx"
)

var (
	// ErrUnsupportedUniform is wrapped by TypeError.
	ErrUnsupportedUniform = errors.New("serial: unsupported uniform value")

	// ErrUnnamedTexture is returned by Serialize when a step samples a
	// texture that is neither a registered asset nor a pool buffer.
	ErrUnnamedTexture = errors.New("serial: texture has no name")

	// ErrUnnamedTarget is returned by Serialize when a step draws into a
	// target that cannot be named.
	ErrUnnamedTarget = errors.New("serial: target has no name")

	// ErrMissingTarget is returned during replay when a record draws into
	// an asset the resolver cannot supply.
	ErrMissingTarget = errors.New("serial: output target not found")
)

// TypeError reports a recorded property whose shape does not fit the
// uniform slot it is applied to.
type TypeError struct {
	Shader  string
	Uniform string
	Kind    ggfx.UniformKind
	Value   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("serial: %s.%s: cannot use %T as %s", e.Shader, e.Uniform, e.Value, e.Kind)
}

func (e *TypeError) Unwrap() error { return ErrUnsupportedUniform }
