// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"maps"

	"github.com/gogpu/ggfx"
)

// Register adds a generator factory to the ggfx shader registry. defaults
// seeds parameter values of every new instance. Register panics on a
// duplicate name, like ggfx.RegisterShader.
func Register(name, body string, defaults map[string]float32, params ...string) {
	defaults = maps.Clone(defaults)
	ggfx.RegisterShader(name, func() ggfx.ShaderProgram {
		g := NewGenerator(name, body, params...)
		for k, v := range defaults {
			_ = g.Uniforms().SetFloat(k, v)
		}
		return g
	})
}
