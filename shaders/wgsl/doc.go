// Package wgsl provides GPU generator shaders written in WGSL.
//
// A generator draws a fullscreen triangle whose fragment stage calls a
// user-supplied shade function:
//
//	wgsl.Register("stripes", `fn shade(uv: vec2<f32>) -> vec4<f32> {
//	    let s = step(0.5, fract(uv.x * p_count()));
//	    return vec4<f32>(s, s, s, 1.0);
//	}`, map[string]float32{"count": 8}, "count")
//
// Programs are compiled to SPIR-V with naga and cached by source. Drawing
// requires a render.HALEnvironment; in other environments generators can
// still be configured, collected and serialized.
package wgsl
