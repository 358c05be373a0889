// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the execution environments and render targets that
// ggfx pipelines draw into.
//
// # Key Principle
//
// ggfx RECEIVES a GPU device from the host application, it does NOT create its
// own. An [Environment] wraps whatever the host hands over and exposes the two
// allocation primitives the pipeline engine needs: offscreen N×M buffers and
// the window-surface-backed target.
//
// # Environments
//
//   - SoftwareEnvironment: CPU buffers backed by *image.RGBA
//   - HALEnvironment: GPU textures created through a wgpu HAL device
//   - NullEnvironment: pixel-less placeholders for metadata-only passes
//
// # Targets
//
//   - PixmapTarget: CPU-backed *image.RGBA target
//   - TextureTarget: GPU texture with a render-attachment view
//   - SurfaceTarget: window surface view owned by the host
//   - NullTarget: size-only placeholder
//
// All environments and targets must be used from a single goroutine, the one
// that owns the GPU context.
package render
