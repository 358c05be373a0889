// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// interface a ggfx-specific name while staying compatible with the
// gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by hosts that expose their HAL device and
// queue directly (gogpu.App does).
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewHALEnvironmentFromProvider builds a HALEnvironment on top of the host's
// device. The provider must expose HAL handles through HalDevice/HalQueue.
// Offscreen buffers use the provider's surface format so that the final pass
// can target the window directly.
func NewHALEnvironmentFromProvider(provider DeviceHandle) (*HALEnvironment, error) {
	if provider == nil {
		return nil, ErrNoDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider %T does not expose HAL types", provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}
	return NewHALEnvironment(device, queue, provider.SurfaceFormat())
}

// NullDeviceHandle is a DeviceHandle without a device, used for CPU-only
// rendering.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
