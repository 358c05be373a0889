// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

// Registry names of the preset generators.
const (
	NameSolid  = "wgsl_solid"
	NamePlasma = "wgsl_plasma"
	NameRadial = "wgsl_radial"
)

const solidBody = `fn shade(uv: vec2<f32>) -> vec4<f32> {
    return vec4<f32>(p_r() * p_a(), p_g() * p_a(), p_b() * p_a(), p_a());
}`

const plasmaBody = `fn shade(uv: vec2<f32>) -> vec4<f32> {
    let t = p_time() * p_speed();
    let s = p_scale();
    let v = sin(uv.x * s + t) + sin(uv.y * s - t) + sin((uv.x + uv.y) * s * 0.5 + t);
    let mid = vec3<f32>(0.5, 0.5, 0.5);
    let c = mid + mid * cos(vec3<f32>(0.0, 2.094, 4.188) + vec3<f32>(v, v, v));
    return vec4<f32>(c, 1.0);
}`

const radialBody = `fn shade(uv: vec2<f32>) -> vec4<f32> {
    let d = clamp(distance(uv, vec2<f32>(0.5, 0.5)) / p_radius(), 0.0, 1.0);
    let c0 = vec3<f32>(p_inner(), p_inner(), p_inner());
    let c1 = vec3<f32>(p_outer(), p_outer(), p_outer());
    let c = mix(c0, c1, vec3<f32>(d, d, d));
    return vec4<f32>(c, 1.0);
}`

func init() {
	Register(NameSolid, solidBody, map[string]float32{"r": 0, "g": 0, "b": 0, "a": 1}, "r", "g", "b", "a")
	Register(NamePlasma, plasmaBody, map[string]float32{"time": 0, "speed": 1, "scale": 10}, "time", "speed", "scale")
	Register(NameRadial, radialBody, map[string]float32{"radius": 0.5, "inner": 1, "outer": 0}, "radius", "inner", "outer")
}
