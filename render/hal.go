// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// bufferUsage is the usage of every pool buffer: drawn into by one pass,
// sampled by a later one, copied out for readback.
const bufferUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// HALEnvironment allocates GPU textures through a wgpu HAL device.
//
// The device and queue are borrowed from the host and never destroyed by
// the environment.
type HALEnvironment struct {
	device  hal.Device
	queue   hal.Queue
	format  gputypes.TextureFormat
	surface *SurfaceTarget
	live    int
}

// NewHALEnvironment wraps a HAL device and queue. If format is
// TextureFormatUndefined, RGBA8Unorm is used for offscreen buffers.
func NewHALEnvironment(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*HALEnvironment, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &HALEnvironment{
		device: device,
		queue:  queue,
		format: format,
	}, nil
}

// Device returns the HAL device.
func (e *HALEnvironment) Device() hal.Device { return e.device }

// Queue returns the HAL queue.
func (e *HALEnvironment) Queue() hal.Queue { return e.queue }

// Format returns the texture format of offscreen buffers.
func (e *HALEnvironment) Format() gputypes.TextureFormat { return e.format }

// Live returns the number of textures created and not yet destroyed.
func (e *HALEnvironment) Live() int { return e.live }

// NewBuffer creates a render-attachment texture and its view.
func (e *HALEnvironment) NewBuffer(width, height int, label string) (Target, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	//nolint:gosec // G115: dimensions validated positive above
	w, h := uint32(width), uint32(height)

	tex, err := e.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        e.format,
		Usage:         bufferUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create texture %q: %w", label, err)
	}

	view, err := e.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		e.device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create texture view %q: %w", label, err)
	}

	e.live++
	return &TextureTarget{
		env:     e,
		texture: tex,
		view:    view,
		width:   width,
		height:  height,
		format:  e.format,
		label:   label,
	}, nil
}

// SetSurface installs the host's current swapchain view as the surface
// target. It must be called every frame before the pipeline runs.
func (e *HALEnvironment) SetSurface(view hal.TextureView, width, height int, format gputypes.TextureFormat) {
	if e.surface == nil {
		e.surface = NewSurfaceTarget(width, height, format, view)
		return
	}
	e.surface.format = format
	e.surface.SetView(view, width, height)
}

// Surface returns the window-surface target, or nil before SetSurface.
func (e *HALEnvironment) Surface() Target {
	if e.surface == nil {
		return nil
	}
	return e.surface
}

var _ Environment = (*HALEnvironment)(nil)

// TextureTarget is a GPU texture-backed render target created by a
// HALEnvironment.
type TextureTarget struct {
	env     *HALEnvironment
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  gputypes.TextureFormat
	label   string
}

// Width returns the texture width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns the texture format.
func (t *TextureTarget) Format() gputypes.TextureFormat { return t.format }

// Image returns nil as this is a GPU-only target.
func (t *TextureTarget) Image() *image.RGBA { return nil }

// TextureView returns the texture's view, or nil after Destroy.
func (t *TextureTarget) TextureView() hal.TextureView { return t.view }

// Texture returns the underlying HAL texture, or nil after Destroy.
func (t *TextureTarget) Texture() hal.Texture { return t.texture }

// Label returns the debug label.
func (t *TextureTarget) Label() string { return t.label }

// Destroy releases the view and then the texture.
func (t *TextureTarget) Destroy() {
	if t.texture == nil {
		return
	}
	device := t.env.device
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	device.DestroyTexture(t.texture)
	t.texture = nil
	t.env.live--
}

var _ Target = (*TextureTarget)(nil)
