// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoDevice is returned when a device handle is nil or provides no
	// device.
	ErrNoDevice = errors.New("render: no GPU device")

	// ErrNotHAL is returned when a device handle or surface view does not
	// expose wgpu HAL types.
	ErrNotHAL = errors.New("render: handle does not expose HAL types")

	// ErrNilFrame is returned when Render is called without a frame.
	ErrNilFrame = errors.New("render: nil frame")
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (for example gogpu.App) owns the device; renderers receive it
// and never create or destroy it. DeviceHandle is an alias for
// gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// halDevice is implemented by devices that expose their wgpu HAL device
// and queue, such as *wgpu.Device.
type halDevice interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// halTextureView is implemented by texture views wrapping a HAL view,
// such as *wgpu.TextureView.
type halTextureView interface {
	HalTextureView() hal.TextureView
}

// resolveHAL extracts the HAL device and queue from a device handle.
func resolveHAL(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	if handle == nil {
		return nil, nil, ErrNoDevice
	}
	dev := handle.Device()
	if dev == nil {
		return nil, nil, fmt.Errorf("%w: handle %T has no device", ErrNoDevice, handle)
	}
	hd, ok := dev.(halDevice)
	if !ok {
		return nil, nil, fmt.Errorf("%w: device %T", ErrNotHAL, dev)
	}
	device, queue := hd.HalDevice(), hd.HalQueue()
	if device == nil || queue == nil {
		return nil, nil, fmt.Errorf("%w: device %T was released", ErrNoDevice, dev)
	}
	return device, queue, nil
}

// resolveView extracts the HAL texture view from a surface view.
func resolveView(view any) (hal.TextureView, error) {
	switch v := view.(type) {
	case halTextureView:
		tv := v.HalTextureView()
		if tv == nil {
			return nil, fmt.Errorf("%w: surface view %T was released", ErrNotHAL, view)
		}
		return tv, nil
	case hal.TextureView:
		return v, nil
	}
	return nil, fmt.Errorf("%w: surface view %T", ErrNotHAL, view)
}

// NullDeviceHandle is a DeviceHandle without a device. GPURenderer rejects
// it with ErrNoDevice; it is useful as a placeholder in tests.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns TextureFormatUndefined.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
