// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"fmt"
	"strings"
)

// header holds (width, height, flip, 0) ahead of the parameter block.
const headerFloats = 4

// prelude is the fixed part of every generator program: a fullscreen
// triangle vertex stage and the uniform block.
const prelude = `struct Params {
    size: vec4<f32>,
    values: array<vec4<f32>, %d>,
}

@group(0) @binding(0) var<uniform> params: Params;

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> @builtin(position) vec4<f32> {
    let u = f32((vertex_index << 1u) & 2u);
    let v = f32(vertex_index & 2u);
    return vec4<f32>(u * 2.0 - 1.0, v * 2.0 - 1.0, 0.0, 1.0);
}

`

const fragment = `
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let uv0 = pos.xy / params.size.xy;
    let uv = vec2<f32>(uv0.x, mix(uv0.y, 1.0 - uv0.y, params.size.z));
    return shade(uv);
}
`

var lanes = [4]string{"x", "y", "z", "w"}

// vec4Count returns how many vec4 rows hold n parameters (at least one,
// since WGSL arrays cannot be empty).
func vec4Count(n int) int {
	return max(1, (n+3)/4)
}

// Source assembles the complete WGSL program for a generator body.
//
// body must define `fn shade(uv: vec2<f32>) -> vec4<f32>`, where uv is in
// [0, 1] with (0, 0) at the visual top-left. Each parameter is readable in
// body through an accessor function named p_<param>.
func Source(body string, params []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, prelude, vec4Count(len(params)))
	for i, name := range params {
		fmt.Fprintf(&sb, "fn p_%s() -> f32 {\n    return params.values[%d].%s;\n}\n\n", name, i/4, lanes[i%4])
	}
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(fragment)
	return sb.String()
}

// uniformSize returns the byte size of the uniform block.
func uniformSize(params int) uint64 {
	return uint64(headerFloats+4*vec4Count(params)) * 4
}
