package ggfx

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/gogpu/ggfx/render"
)

// Pipeline is an ordered list of shader and task steps that renders one
// frame per Run.
//
// A pipeline is built once (AddStep, AddTask, Postpone) and run many times.
// Steps execute strictly in insertion order; the pipeline does no dependency
// analysis, so steps must be added in data-dependency order. Every Dirtier
// passed as a step input is tracked and marked dirty at the start of each
// Run, which gives every step of one frame the same snapshot of sampled
// values.
//
// Setup and Run must happen on one goroutine. Run is guarded against
// reentrancy and returns ErrRunInProgress instead of overlapping.
type Pipeline struct {
	env   render.Environment
	pool  *BufferPool
	conv  Convention
	label string

	steps       []Step
	tracked     []Dirtier
	trackedSet  map[Dirtier]struct{}
	postponed   []func(ctx context.Context) error
	initialized map[ShaderProgram]struct{}

	running   atomic.Bool
	destroyed bool
	runs      int
}

// NewPipeline creates an empty pipeline drawing with env.
// A nil env is replaced by render.NullEnvironment.
func NewPipeline(env render.Environment, opts ...PipelineOption) *Pipeline {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if env == nil {
		env = render.NullEnvironment{}
	}
	if o.width == 0 && o.height == 0 {
		if s := env.Surface(); s != nil {
			o.width, o.height = s.Width(), s.Height()
		}
	}
	return &Pipeline{
		env:         env,
		pool:        NewBufferPool(env, o.width, o.height),
		conv:        o.convention,
		label:       o.label,
		trackedSet:  make(map[Dirtier]struct{}),
		initialized: make(map[ShaderProgram]struct{}),
	}
}

// Environment returns the pipeline environment.
func (p *Pipeline) Environment() render.Environment { return p.env }

// Pool returns the pipeline's buffer pool.
func (p *Pipeline) Pool() *BufferPool { return p.pool }

// Convention returns the coordinate convention used for draws.
func (p *Pipeline) Convention() Convention { return p.conv }

// Label returns the pipeline label.
func (p *Pipeline) Label() string { return p.label }

// Steps returns a copy of the step list.
func (p *Pipeline) Steps() []Step { return slices.Clone(p.steps) }

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// Tracked returns the number of tracked sampled inputs.
func (p *Pipeline) Tracked() int { return len(p.tracked) }

// Runs returns the number of Run calls that completed without error.
func (p *Pipeline) Runs() int { return p.runs }

// AddStep appends a shader step. The shader is initialized on its first
// AddStep; every Dirtier in inputs becomes tracked. setup may be nil.
func (p *Pipeline) AddStep(shader ShaderProgram, inputs []any, target TargetResolver, setup SetupFunc) (*ShaderStep, error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}
	if shader == nil {
		return nil, ErrNilShader
	}
	if target == nil {
		return nil, ErrNilTarget
	}
	if _, ok := p.initialized[shader]; !ok {
		if err := shader.Init(p.env); err != nil {
			return nil, &SetupError{Step: -1, Shader: shader.Name(), Err: err}
		}
		p.initialized[shader] = struct{}{}
	}
	p.track(inputs)
	s := &ShaderStep{index: len(p.steps), shader: shader, target: target, setup: setup}
	p.steps = append(p.steps, s)
	return s, nil
}

// AddTask appends a task step. Every Dirtier in inputs becomes tracked.
func (p *Pipeline) AddTask(inputs []any, fn TaskFunc) (*TaskStep, error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}
	if fn == nil {
		return nil, fmt.Errorf("ggfx: task func is nil")
	}
	p.track(inputs)
	s := &TaskStep{index: len(p.steps), fn: fn}
	p.steps = append(p.steps, s)
	return s, nil
}

// Postpone queues fn to run once at the start of the next Run, before any
// input is marked dirty. Every queued task runs even if an earlier one
// fails; the failures are joined and abort that Run before any step.
func (p *Pipeline) Postpone(fn func(ctx context.Context) error) {
	if p.destroyed || fn == nil {
		return
	}
	p.postponed = append(p.postponed, fn)
}

// Track registers extra inputs outside of any step.
func (p *Pipeline) Track(inputs ...any) {
	p.track(inputs)
}

func (p *Pipeline) track(inputs []any) {
	for _, in := range inputs {
		d, ok := in.(Dirtier)
		if !ok {
			continue
		}
		if !reflect.TypeOf(d).Comparable() {
			p.tracked = append(p.tracked, d)
			continue
		}
		if _, dup := p.trackedSet[d]; dup {
			continue
		}
		p.trackedSet[d] = struct{}{}
		p.tracked = append(p.tracked, d)
	}
}

// Run renders one frame: it drains postponed tasks, marks every tracked input
// dirty, then runs each step in insertion order. It stops at the first
// failing step; buffers written by earlier steps keep their contents.
// ctx is checked before every step.
func (p *Pipeline) Run(ctx context.Context) error {
	return p.execute(ctx, true, nil)
}

// Collect runs the pipeline without drawing: postponed tasks are drained,
// inputs marked dirty and every shader step's setup closure applied, after
// which visit is called with the configured step. Task steps are skipped.
// Serialization uses Collect to capture shader configuration.
func (p *Pipeline) Collect(ctx context.Context, visit func(*ShaderStep) error) error {
	return p.execute(ctx, false, visit)
}

func (p *Pipeline) execute(ctx context.Context, rendering bool, visit func(*ShaderStep) error) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if !p.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	defer p.running.Store(false)

	tasks := p.postponed
	p.postponed = nil
	var errs []error
	for _, fn := range tasks {
		if err := fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ggfx: postponed task: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for _, d := range p.tracked {
		d.MarkDirty()
	}

	rc := newRunContext(p.pool, rendering, p.conv)
	log := Logger()
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !rendering {
			ss, ok := step.(*ShaderStep)
			if !ok {
				continue
			}
			if err := ss.Run(ctx, rc); err != nil {
				return err
			}
			if visit != nil {
				if err := visit(ss); err != nil {
					return err
				}
			}
			continue
		}
		if err := step.Run(ctx, rc); err != nil {
			log.Debug("ggfx: run aborted", "pipeline", p.label, "step", step.Index(), "err", err)
			return err
		}
	}
	if rendering {
		p.runs++
		log.Debug("ggfx: run complete", "pipeline", p.label, "steps", len(p.steps), "runs", p.runs)
	}
	return nil
}

// Running reports whether a Run is in progress.
func (p *Pipeline) Running() bool { return p.running.Load() }

// OnBufferSizeChanged forwards a resolution change to the buffer pool.
func (p *Pipeline) OnBufferSizeChanged(width, height int) {
	p.pool.Resize(width, height)
}

// Destroy drops the step list, tracked inputs and postponed tasks, and
// destroys the pooled buffers. Shaders are owned by the caller and are not
// destroyed. Calling Destroy more than once is a no-op.
func (p *Pipeline) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.postponed = nil
	p.steps = nil
	p.tracked = nil
	clear(p.trackedSet)
	clear(p.initialized)
	p.pool.Clear()
	Logger().Debug("ggfx: pipeline destroyed", "pipeline", p.label)
}
