package ggfx

import (
	"errors"
	"fmt"
)

// Pipeline errors.
var (
	// ErrRunInProgress is returned by Run when another Run on the same
	// pipeline has not finished yet.
	ErrRunInProgress = errors.New("ggfx: run already in progress")

	// ErrDestroyed is returned when a destroyed pipeline or effect is used.
	ErrDestroyed = errors.New("ggfx: pipeline destroyed")

	// ErrNilShader is returned by AddStep for a nil shader.
	ErrNilShader = errors.New("ggfx: shader is nil")

	// ErrNilTarget is returned when a step has no target resolver.
	ErrNilTarget = errors.New("ggfx: target resolver is nil")

	// ErrMissingUniform is wrapped by SetupError when a required uniform was
	// never set before a draw.
	ErrMissingUniform = errors.New("ggfx: required uniform not set")

	// ErrUnknownUniform is returned when a uniform name was never declared.
	ErrUnknownUniform = errors.New("ggfx: unknown uniform")

	// ErrUniformKind is returned when a uniform is set with a value of the
	// wrong shape.
	ErrUniformKind = errors.New("ggfx: uniform kind mismatch")

	// ErrUnknownShader is returned by NewShader for unregistered names.
	ErrUnknownShader = errors.New("ggfx: unknown shader")
)

// SetupError reports a malformed shader configuration: the shader failed to
// initialize, or a required uniform was missing when the step was about to
// draw. Setup errors are fatal for the graph; fix the graph, not the frame.
type SetupError struct {
	Step   int    // step index, -1 when raised before the step was added
	Shader string // shader type name
	Err    error
}

func (e *SetupError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("ggfx: setup %s: %v", e.Shader, e.Err)
	}
	return fmt.Sprintf("ggfx: setup step %d (%s): %v", e.Step, e.Shader, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// DrawError wraps a failure raised by a shader's Draw. It aborts the current
// run only; the pipeline stays usable for the next Run.
type DrawError struct {
	Step   int
	Shader string
	Err    error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("ggfx: draw step %d (%s): %v", e.Step, e.Shader, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }

// StepError wraps an error returned by a setup closure or a task step.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("ggfx: step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
