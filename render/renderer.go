// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/papercut"

// Renderer is a papercut.FrameRenderer that can describe itself.
//
// Renderers are NOT safe for concurrent Render calls. GPURenderer allows
// SetSurface from another goroutine; SoftwareRenderer does not.
type Renderer interface {
	papercut.FrameRenderer

	// Capabilities returns what the renderer supports.
	Capabilities() Capabilities
}

// Capabilities describes a renderer.
type Capabilities struct {
	// IsGPU is true for renderers that draw on a graphics device.
	IsGPU bool

	// Antialiased is true when triangle edges get coverage-based
	// antialiasing.
	Antialiased bool

	// DepthTested is true when overlapping shapes are layered by depth
	// rather than by draw order alone.
	DepthTested bool

	// MaxVertices is the largest vertex count one frame may carry.
	MaxVertices int
}

// Capabilities reports a CPU renderer with antialiased edges.
func (r *SoftwareRenderer) Capabilities() Capabilities {
	return Capabilities{IsGPU: false, Antialiased: true, DepthTested: true, MaxVertices: papercut.MaxVertices}
}

// Capabilities reports a depth-tested GPU renderer, antialiased when it
// multisamples.
func (r *GPURenderer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:       true,
		Antialiased: r.config.SampleCount > 1,
		DepthTested: true,
		MaxVertices: papercut.MaxVertices,
	}
}

var (
	_ Renderer = (*SoftwareRenderer)(nil)
	_ Renderer = (*GPURenderer)(nil)
)
