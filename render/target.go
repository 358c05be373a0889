// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is a physical render target: something a shader can draw into and
// a later shader can sample from.
//
// Targets may support CPU access (Image), GPU access (TextureView), or
// neither (placeholders used while collecting graph metadata).
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Image returns the CPU pixel storage, or nil for GPU-only targets.
	Image() *image.RGBA

	// TextureView returns the GPU view, or nil for CPU-only targets.
	TextureView() hal.TextureView

	// Destroy releases the resources held by the target.
	// Calling Destroy more than once is a no-op.
	Destroy()
}

// Size returns the dimensions of t as an image.Point.
func Size(t Target) image.Point {
	return image.Pt(t.Width(), t.Height())
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	err := pipeline.Run(ctx)
//	img := target.Image()
type PixmapTarget struct {
	img   *image.RGBA
	label string
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() hal.TextureView {
	return nil
}

// Label returns the debug label given at allocation time.
func (t *PixmapTarget) Label() string {
	return t.label
}

// Destroy drops the pixel storage.
func (t *PixmapTarget) Destroy() {
	t.img = nil
}

// Destroyed reports whether Destroy has been called.
func (t *PixmapTarget) Destroyed() bool {
	return t.img == nil
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	if t.img == nil {
		return
	}
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: shifted 16-bit channels fit in uint8
	rgba := color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = rgba.R
		pix[i+1] = rgba.G
		pix[i+2] = rgba.B
		pix[i+3] = rgba.A
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	if t.img == nil {
		return
	}
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	if t.img == nil {
		return color.RGBA{}
	}
	return t.img.RGBAAt(x, y)
}

// Ensure PixmapTarget implements Target.
var _ Target = (*PixmapTarget)(nil)

// NullTarget is a size-only placeholder target. It has no pixels and no GPU
// view; shaders must never draw into it. The pipeline uses null targets while
// collecting graph metadata for serialization.
type NullTarget struct {
	width     int
	height    int
	label     string
	destroyed bool
}

// NewNullTarget creates a placeholder target of the given size.
func NewNullTarget(width, height int, label string) *NullTarget {
	return &NullTarget{width: width, height: height, label: label}
}

// Width returns the placeholder width.
func (t *NullTarget) Width() int { return t.width }

// Height returns the placeholder height.
func (t *NullTarget) Height() int { return t.height }

// Format returns RGBA8, the format a real buffer would have.
func (t *NullTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// Image returns nil.
func (t *NullTarget) Image() *image.RGBA { return nil }

// TextureView returns nil.
func (t *NullTarget) TextureView() hal.TextureView { return nil }

// Label returns the debug label.
func (t *NullTarget) Label() string { return t.label }

// Destroy marks the placeholder destroyed.
func (t *NullTarget) Destroy() { t.destroyed = true }

// Destroyed reports whether Destroy has been called.
func (t *NullTarget) Destroyed() bool { return t.destroyed }

var _ Target = (*NullTarget)(nil)

// SurfaceTarget wraps a window surface view from the host application.
//
// The view belongs to the host; Destroy only forgets it. The host must call
// SetView every frame before the pipeline runs, since swapchain views change
// from frame to frame.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   hal.TextureView
}

// NewSurfaceTarget creates a render target from a window surface view.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view hal.TextureView) *SurfaceTarget {
	return &SurfaceTarget{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// SetView replaces the current frame's view and size.
func (t *SurfaceTarget) SetView(view hal.TextureView, width, height int) {
	t.view = view
	t.width = width
	t.height = height
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int { return t.width }

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int { return t.height }

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.format }

// Image returns nil as surfaces do not support CPU access.
func (t *SurfaceTarget) Image() *image.RGBA { return nil }

// TextureView returns the current frame's texture view.
func (t *SurfaceTarget) TextureView() hal.TextureView { return t.view }

// Destroy forgets the host-owned view.
func (t *SurfaceTarget) Destroy() { t.view = nil }

var _ Target = (*SurfaceTarget)(nil)
