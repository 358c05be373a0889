// Package ggfx composes shader passes into multi-step image-processing
// pipelines.
//
// # Overview
//
// A Pipeline is an ordered list of steps. Each ShaderStep configures a
// ShaderProgram (uniforms and input textures) and draws it into a target;
// each TaskStep runs an arbitrary closure. Intermediate results live in
// pooled buffers addressed through BufferReference handles, so a graph of
// many passes reuses a small number of physical render targets.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggfx"
//	    "github.com/gogpu/ggfx/render"
//	    "github.com/gogpu/ggfx/shaders"
//	)
//
//	env := render.NewSoftwareEnvironment(nil)
//	out := render.NewPixmapTarget(512, 512)
//	p := ggfx.NewPipeline(env, ggfx.WithBufferSize(512, 512))
//
//	b := ggfx.NewBuilder(p)
//	tmp := b.Buffer("tmp")
//	t := ggfx.Elapsed(nil)
//	b.Pass(shaders.NewGradient()).Floats("from", 1, 0, 0, 1).Floats("to", 0, 0, 1, 1).To(tmp)
//	b.Pass(shaders.NewGaussianBlur()).Sample(tmp).FloatInput("radius", ggfx.BounceBetween[float64](t, 0, 8)).To(ggfx.Fixed(out))
//	b.Recycle(tmp)
//
//	for range frames {
//	    if err := p.Run(ctx); err != nil {
//	        // handle
//	    }
//	}
//
// # Sampled Inputs
//
// Time-varying parameters are Inputs. A SampledInput caches its value until
// it is marked dirty, and the pipeline marks every tracked input dirty at the
// start of each Run. All steps of one frame therefore observe the same value
// even when a frame takes a long time to render.
//
// # Buffer Pool
//
// BufferPool binds physical targets to references on demand and returns
// them to a free list on Recycle. There is no automatic liveness analysis:
// a reference stays bound until the graph recycles it.
//
// # Serialization
//
// The serial subpackage captures a graph as portable JSON records and
// replays them into a fresh pipeline. Shaders are reconstructed through the
// string-keyed registry populated by RegisterShader.
//
// # Logging
//
// ggfx is silent by default. See SetLogger.
package ggfx
