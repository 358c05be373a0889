package ggfx

import (
	"context"

	"github.com/gogpu/ggfx/render"
)

// SetupFunc configures a shader before it draws: it sets uniforms and binds
// input textures. Setup closures also run in metadata-only collection passes
// (rc.Rendering == false), so they must not touch anything but the shader.
type SetupFunc func(ctx context.Context, rc *RunContext, shader ShaderProgram) error

// TaskFunc is an arbitrary side-effecting step, such as refreshing an
// externally owned texture before a later step samples it.
type TaskFunc func(ctx context.Context, rc *RunContext) error

// UniformSink is implemented by shaders that mirror uniforms into device
// memory. Dirty slots are written to the sink right before each draw.
type UniformSink interface {
	WriteUniform(u *Uniform)
}

// RunContext is the state shared by the steps of one run.
type RunContext struct {
	// Pool resolves buffer references.
	Pool *BufferPool

	// Rendering is false during collection passes, where steps configure
	// their shaders but do not draw.
	Rendering bool

	// Convention is the coordinate convention passed to Draw.
	Convention Convention

	// StepIndex is the index of the step being executed.
	StepIndex int

	// PreviousTarget and PreviousShader describe the last completed draw.
	PreviousTarget render.Target
	PreviousShader ShaderProgram

	lastWriter map[render.Target]int
}

func newRunContext(pool *BufferPool, rendering bool, conv Convention) *RunContext {
	return &RunContext{
		Pool:       pool,
		Rendering:  rendering,
		Convention: conv,
		StepIndex:  -1,
		lastWriter: make(map[render.Target]int),
	}
}

// LastWriter returns the index of the last step in this run that drew into t.
func (rc *RunContext) LastWriter(t render.Target) (int, bool) {
	i, ok := rc.lastWriter[t]
	return i, ok
}

// Step is one unit of pipeline execution: a *ShaderStep or a *TaskStep.
type Step interface {
	// Index returns the insertion index within the pipeline.
	Index() int

	// Run executes the step against rc.
	Run(ctx context.Context, rc *RunContext) error
}

// ShaderStep configures a shader and draws it into a resolved target.
type ShaderStep struct {
	index  int
	shader ShaderProgram
	target TargetResolver
	setup  SetupFunc
}

// Index returns the insertion index.
func (s *ShaderStep) Index() int { return s.index }

// Shader returns the step's shader.
func (s *ShaderStep) Shader() ShaderProgram { return s.shader }

// Target returns the step's target resolver.
func (s *ShaderStep) Target() TargetResolver { return s.target }

// Run applies the setup closure and, when rendering, validates uniforms,
// resolves the target, flushes dirty uniforms and draws.
func (s *ShaderStep) Run(ctx context.Context, rc *RunContext) error {
	rc.StepIndex = s.index
	if s.setup != nil {
		if err := s.setup(ctx, rc, s.shader); err != nil {
			return &StepError{Step: s.index, Err: err}
		}
	}
	if !rc.Rendering {
		return nil
	}

	u := s.shader.Uniforms()
	if err := u.Validate(); err != nil {
		return &SetupError{Step: s.index, Shader: s.shader.Name(), Err: err}
	}
	target, err := s.target.Resolve(rc.Pool)
	if err != nil {
		return &StepError{Step: s.index, Err: err}
	}

	var sink func(*Uniform)
	if us, ok := s.shader.(UniformSink); ok {
		sink = us.WriteUniform
	}
	u.Flush(sink)

	if err := s.shader.Draw(target, rc.Convention); err != nil {
		return &DrawError{Step: s.index, Shader: s.shader.Name(), Err: err}
	}
	rc.PreviousTarget = target
	rc.PreviousShader = s.shader
	rc.lastWriter[target] = s.index
	return nil
}

// TaskStep runs a closure without drawing.
type TaskStep struct {
	index int
	fn    TaskFunc
}

// Index returns the insertion index.
func (s *TaskStep) Index() int { return s.index }

// Run invokes the task closure.
func (s *TaskStep) Run(ctx context.Context, rc *RunContext) error {
	rc.StepIndex = s.index
	if err := s.fn(ctx, rc); err != nil {
		return &StepError{Step: s.index, Err: err}
	}
	return nil
}

var (
	_ Step = (*ShaderStep)(nil)
	_ Step = (*TaskStep)(nil)
)
