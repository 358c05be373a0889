package ggfx

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	// Pool buffers sized to the environment surface
//	p := ggfx.NewPipeline(env)
//
//	// Explicit offscreen resolution, GL-style coordinates
//	p := ggfx.NewPipeline(env, ggfx.WithBufferSize(512, 512), ggfx.WithConvention(ggfx.BottomLeft))
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	width      int
	height     int
	convention Convention
	label      string
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		width:      0, // Taken from the environment surface if zero
		height:     0,
		convention: TopLeft,
	}
}

// WithBufferSize sets the resolution of pooled intermediate buffers.
// Without it, the pool uses the environment surface size.
func WithBufferSize(width, height int) PipelineOption {
	return func(o *pipelineOptions) {
		o.width = width
		o.height = height
	}
}

// WithConvention sets the coordinate convention passed to every draw.
func WithConvention(c Convention) PipelineOption {
	return func(o *pipelineOptions) {
		o.convention = c
	}
}

// WithLabel names the pipeline in log output.
func WithLabel(label string) PipelineOption {
	return func(o *pipelineOptions) {
		o.label = label
	}
}
