// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixmapTarget(t *testing.T) {
	target := NewPixmapTarget(100, 50)

	if target.Width() != 100 {
		t.Errorf("Width() = %d, want 100", target.Width())
	}
	if target.Height() != 50 {
		t.Errorf("Height() = %d, want 50", target.Height())
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
	}
	if target.TextureView() != nil {
		t.Error("TextureView() should be nil for CPU target")
	}
	if got := len(target.Image().Pix); got != 100*50*4 {
		t.Errorf("len(Pix) = %d, want %d", got, 100*50*4)
	}
	if got := Size(target); got != image.Pt(100, 50) {
		t.Errorf("Size() = %v, want (100,50)", got)
	}
}

func TestPixmapTargetClearAndPixels(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Clear(color.RGBA{R: 255, G: 0, B: 0, A: 255})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := target.GetPixel(x, y); got != (color.RGBA{R: 255, A: 255}) {
				t.Fatalf("GetPixel(%d,%d) = %v, want opaque red", x, y, got)
			}
		}
	}

	target.SetPixel(1, 2, color.RGBA{G: 255, A: 255})
	if got := target.GetPixel(1, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("GetPixel(1,2) = %v, want opaque green", got)
	}
}

func TestPixmapTargetDestroy(t *testing.T) {
	target := NewPixmapTarget(8, 8)
	target.Destroy()

	if !target.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}
	if target.Image() != nil {
		t.Error("Image() should be nil after Destroy")
	}
	if target.Width() != 0 || target.Height() != 0 {
		t.Error("destroyed target should report zero size")
	}

	// Operations on a destroyed target must not panic.
	target.Clear(color.White)
	target.SetPixel(0, 0, color.White)
	target.Destroy()
}

func TestNullTarget(t *testing.T) {
	target := NewNullTarget(32, 16, "scratch")
	if target.Width() != 32 || target.Height() != 16 {
		t.Errorf("size = %dx%d, want 32x16", target.Width(), target.Height())
	}
	if target.Image() != nil || target.TextureView() != nil {
		t.Error("null target must expose neither pixels nor view")
	}
	if target.Label() != "scratch" {
		t.Errorf("Label() = %q, want scratch", target.Label())
	}
	target.Destroy()
	if !target.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}
}

func TestSurfaceTargetSetView(t *testing.T) {
	target := NewSurfaceTarget(640, 480, gputypes.TextureFormatBGRA8Unorm, nil)
	target.SetView(nil, 800, 600)

	if target.Width() != 800 || target.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", target.Format())
	}
	if target.Image() != nil {
		t.Error("surface target must not expose pixels")
	}
}

func TestSoftwareEnvironment(t *testing.T) {
	surface := NewPixmapTarget(10, 10)
	env := NewSoftwareEnvironment(surface)

	if env.Surface() != Target(surface) {
		t.Error("Surface() did not return the installed surface")
	}

	buf, err := env.NewBuffer(20, 30, "buf")
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if buf.Width() != 20 || buf.Height() != 30 {
		t.Errorf("buffer size = %dx%d, want 20x30", buf.Width(), buf.Height())
	}
	if buf.Image() == nil {
		t.Error("software buffer must expose pixels")
	}
	if env.Allocated() != 1 {
		t.Errorf("Allocated() = %d, want 1", env.Allocated())
	}

	if NewSoftwareEnvironment(nil).Surface() != nil {
		t.Error("Surface() should be nil without a surface")
	}
}

func TestEnvironmentInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
		w, h int
	}{
		{"software zero width", NewSoftwareEnvironment(nil), 0, 10},
		{"software negative height", NewSoftwareEnvironment(nil), 10, -1},
		{"null zero", NullEnvironment{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.env.NewBuffer(tt.w, tt.h, "bad")
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("NewBuffer(%d,%d) error = %v, want ErrInvalidSize", tt.w, tt.h, err)
			}
		})
	}
}
