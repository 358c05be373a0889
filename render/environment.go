// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
)

// Environment errors.
var (
	// ErrInvalidSize is returned when a buffer is requested with a
	// non-positive dimension.
	ErrInvalidSize = errors.New("render: invalid buffer size")

	// ErrNoDevice is returned when a GPU environment has no device.
	ErrNoDevice = errors.New("render: no GPU device")
)

// Environment owns the drawing context and hands out render targets.
//
// The environment is the boundary between the pipeline engine and the host:
// it allocates offscreen buffers for the buffer pool and exposes the
// window-surface-backed target, if any. Environments are not safe for
// concurrent use; all calls happen on the goroutine that owns the context.
type Environment interface {
	// NewBuffer allocates an offscreen render target of the given size.
	NewBuffer(width, height int, label string) (Target, error)

	// Surface returns the window-surface-backed target, or nil when the
	// environment renders offscreen only.
	Surface() Target
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// SoftwareEnvironment allocates CPU pixmap targets.
type SoftwareEnvironment struct {
	surface   *PixmapTarget
	allocated int
}

// NewSoftwareEnvironment creates a CPU environment. If surface is non-nil it
// is returned from Surface and plays the role of the window.
func NewSoftwareEnvironment(surface *PixmapTarget) *SoftwareEnvironment {
	return &SoftwareEnvironment{surface: surface}
}

// NewBuffer allocates a zeroed *image.RGBA target.
func (e *SoftwareEnvironment) NewBuffer(width, height int, label string) (Target, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	e.allocated++
	return &PixmapTarget{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		label: label,
	}, nil
}

// Surface returns the software surface, or nil.
func (e *SoftwareEnvironment) Surface() Target {
	if e.surface == nil {
		return nil
	}
	return e.surface
}

// Allocated returns how many buffers this environment has created.
func (e *SoftwareEnvironment) Allocated() int {
	return e.allocated
}

var _ Environment = (*SoftwareEnvironment)(nil)

// NullEnvironment allocates size-only placeholders. It is used for
// metadata-only passes where nothing is drawn.
type NullEnvironment struct{}

// NewBuffer returns a NullTarget.
func (NullEnvironment) NewBuffer(width, height int, label string) (Target, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return NewNullTarget(width, height, label), nil
}

// Surface returns nil.
func (NullEnvironment) Surface() Target { return nil }

var _ Environment = NullEnvironment{}
