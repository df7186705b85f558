// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render presents papercut frames.
//
// Two renderers implement papercut.FrameRenderer:
//
//   - SoftwareRenderer rasterizes a frame into a CPU PixmapTarget. It needs
//     no GPU and is used for headless snapshots and tests.
//   - GPURenderer uploads a frame into device buffers and draws it with a
//     single indexed draw call into a surface view supplied by the host.
//
// Both apply the frame's view and projection matrices the same way and
// layer shapes by depth: a higher ZIndex covers a lower one, and among
// shapes with equal ZIndex later shapes cover earlier ones. GPURenderer
// multisamples with 4 samples by default.
//
// # GPU integration
//
// GPURenderer receives its device from the host application through
// DeviceHandle; it never creates one. The host must expose the underlying
// wgpu HAL device and queue (gogpu's GPU context provider does):
//
//	r, err := render.NewGPURenderer(app.GPUContextProvider(), render.DefaultGPURendererConfig())
//	...
//	app.OnDraw(func(dc *gogpu.Context) {
//	    r.SetSurface(dc.SurfaceView(), dc.Width(), dc.Height())
//	    engine.Frame(time.Now())
//	})
package render
