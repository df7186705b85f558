// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/papercut"
)

var (
	// ErrDestroyed is returned when a destroyed GPURenderer is used.
	ErrDestroyed = errors.New("render: renderer destroyed")

	// ErrSampleCount is returned for sample counts other than 1 and 4.
	ErrSampleCount = errors.New("render: unsupported sample count")

	// ErrSubmitTimeout is returned when the device does not finish a frame
	// within GPURendererConfig.SubmitTimeout.
	ErrSubmitTimeout = errors.New("render: timed out waiting for GPU")
)

// depthFormat is the format of the depth attachment. Depth is cleared to 0
// and fragments pass when their depth is greater than or equal to the
// stored one, so higher z draws on top and equal z keeps draw order.
const depthFormat = gputypes.TextureFormatDepth32Float

// GPURendererConfig configures a GPURenderer.
type GPURendererConfig struct {
	// Format is the surface texture format. Default: BGRA8Unorm.
	Format gputypes.TextureFormat

	// SampleCount is the MSAA sample count, 1 or 4. Default: 4
	SampleCount uint32

	// InitialVertexCapacity and InitialIndexCapacity size the device
	// buffers before the first frame. Default: 4096 and 8192.
	InitialVertexCapacity int
	InitialIndexCapacity  int

	// SubmitTimeout bounds the wait for a submitted frame. Default: 5s.
	SubmitTimeout time.Duration
}

// DefaultGPURendererConfig returns the default configuration.
func DefaultGPURendererConfig() GPURendererConfig {
	return GPURendererConfig{
		Format:                gputypes.TextureFormatBGRA8Unorm,
		SampleCount:           4,
		InitialVertexCapacity: 4096,
		InitialIndexCapacity:  8192,
		SubmitTimeout:         5 * time.Second,
	}
}

func (c GPURendererConfig) withDefaults() GPURendererConfig {
	d := DefaultGPURendererConfig()
	if c.Format == gputypes.TextureFormatUndefined {
		c.Format = d.Format
	}
	if c.SampleCount == 0 {
		c.SampleCount = d.SampleCount
	}
	if c.InitialVertexCapacity <= 0 {
		c.InitialVertexCapacity = d.InitialVertexCapacity
	}
	if c.InitialIndexCapacity <= 0 {
		c.InitialIndexCapacity = d.InitialIndexCapacity
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = d.SubmitTimeout
	}
	return c
}

// GPURenderer draws frames on a shared wgpu HAL device.
//
// Each frame is uploaded into one vertex buffer, one 16-bit index buffer
// and one uniform buffer holding the view and projection matrices, then
// drawn with a single indexed draw call. The buffers grow when a frame
// carries a grow request or does not fit; they never shrink.
//
// Shapes are layered by depth: a higher ZIndex draws on top, and shapes
// with equal ZIndex draw in frame order. With a sample count of 4 the
// frame is rendered into a multisampled texture and resolved into the
// surface view.
//
// The surface view must be set with SetSurface before every frame, since
// hosts hand out a new view per presented image. Render without a surface
// returns papercut.ErrFrameSkipped.
type GPURenderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	config GPURendererConfig

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertexBuf hal.Buffer
	vertexCap int
	indexBuf  hal.Buffer
	indexCap  int

	// Per-size attachments. msaaTex is nil when SampleCount is 1.
	depthTex         hal.Texture
	depthView        hal.TextureView
	msaaTex          hal.Texture
	msaaView         hal.TextureView
	targetW, targetH int

	surface       hal.TextureView
	width, height int
	frames        uint64
	destroyed     bool
}

// NewGPURenderer creates a renderer on the device provided by the host.
// The handle's device must expose the wgpu HAL device and queue, as
// *wgpu.Device does.
func NewGPURenderer(handle DeviceHandle, config GPURendererConfig) (*GPURenderer, error) {
	device, queue, err := resolveHAL(handle)
	if err != nil {
		return nil, err
	}
	if config.Format == gputypes.TextureFormatUndefined {
		config.Format = handle.SurfaceFormat()
	}
	return NewGPURendererHAL(device, queue, config)
}

// NewGPURendererHAL creates a renderer on a HAL device and queue. The
// renderer does not take ownership of them.
func NewGPURendererHAL(device hal.Device, queue hal.Queue, config GPURendererConfig) (*GPURenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	config = config.withDefaults()
	if config.SampleCount != 1 && config.SampleCount != 4 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, config.SampleCount)
	}
	r := &GPURenderer{
		device: device,
		queue:  queue,
		config: config,
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.ensureBuffers(r.config.InitialVertexCapacity, r.config.InitialIndexCapacity); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// createPipeline creates the shader, layouts, pipeline and the uniform
// buffer with its bind group.
func (r *GPURenderer) createPipeline() error {
	shader, err := createGeometryShader(r.device)
	if err != nil {
		return fmt.Errorf("create geometry shader: %w", err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "papercut_globals_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create globals layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "papercut_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	// No blend state: fragments replace the target color.
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "papercut_geometry_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    geometryVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.config.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionGreaterEqual,
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "papercut_globals",
		Size:  papercut.GlobalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create globals buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "papercut_globals_bind",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: papercut.GlobalsSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create globals bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// ensureBuffers grows the vertex and index buffers to hold at least the
// given number of elements.
func (r *GPURenderer) ensureBuffers(vertices, indices int) error {
	if vertices > r.vertexCap {
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "papercut_vertices",
			Size:  uint64(vertices) * papercut.GPUVertexSize, //nolint:gosec // capacity is positive
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		if r.vertexBuf != nil {
			r.device.DestroyBuffer(r.vertexBuf)
		}
		papercut.Logger().Debug("render: vertex buffer grown", "from", r.vertexCap, "to", vertices)
		r.vertexBuf, r.vertexCap = buf, vertices
	}
	if indices > r.indexCap {
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "papercut_indices",
			Size:  uint64(indices*2+3) &^ 3, //nolint:gosec // capacity is positive
			Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create index buffer: %w", err)
		}
		if r.indexBuf != nil {
			r.device.DestroyBuffer(r.indexBuf)
		}
		papercut.Logger().Debug("render: index buffer grown", "from", r.indexCap, "to", indices)
		r.indexBuf, r.indexCap = buf, indices
	}
	return nil
}

// ensureTargets creates or recreates the depth texture and, with MSAA, the
// multisampled color texture when the viewport size changes.
func (r *GPURenderer) ensureTargets(width, height int) error {
	if r.targetW == width && r.targetH == height && r.depthView != nil {
		return nil
	}
	r.destroyTargets()

	size := hal.Extent3D{
		Width:              uint32(width),  //nolint:gosec // size is positive
		Height:             uint32(height), //nolint:gosec // size is positive
		DepthOrArrayLayers: 1,
	}

	depthTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "papercut_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   r.config.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	r.depthTex = depthTex

	depthView, err := r.device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "papercut_depth_view",
	})
	if err != nil {
		r.destroyTargets()
		return fmt.Errorf("create depth texture view: %w", err)
	}
	r.depthView = depthView

	if r.config.SampleCount > 1 {
		msaaTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
			Label:         "papercut_msaa_color",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   r.config.SampleCount,
			Dimension:     gputypes.TextureDimension2D,
			Format:        r.config.Format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			r.destroyTargets()
			return fmt.Errorf("create MSAA color texture: %w", err)
		}
		r.msaaTex = msaaTex

		msaaView, err := r.device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
			Label: "papercut_msaa_color_view",
		})
		if err != nil {
			r.destroyTargets()
			return fmt.Errorf("create MSAA color texture view: %w", err)
		}
		r.msaaView = msaaView
	}

	papercut.Logger().Debug("render: attachments created",
		"width", width, "height", height, "samples", r.config.SampleCount)
	r.targetW, r.targetH = width, height
	return nil
}

func (r *GPURenderer) destroyTargets() {
	if r.msaaView != nil {
		r.device.DestroyTextureView(r.msaaView)
		r.msaaView = nil
	}
	if r.msaaTex != nil {
		r.device.DestroyTexture(r.msaaTex)
		r.msaaTex = nil
	}
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		r.device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	r.targetW, r.targetH = 0, 0
}

// SetSurface sets the texture view the next frame is drawn into. view must
// be a hal.TextureView or wrap one, as *wgpu.TextureView does; nil clears
// the surface so frames are skipped. Positive width and height update the
// viewport size.
func (r *GPURenderer) SetSurface(view any, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if view == nil {
		r.surface = nil
		return nil
	}
	tv, err := resolveView(view)
	if err != nil {
		return err
	}
	r.surface = tv
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
	return nil
}

// Resize records the viewport size.
func (r *GPURenderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: resize to %dx%d: %w", width, height, papercut.ErrInvalidViewport)
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	return nil
}

// Size returns the last viewport size.
func (r *GPURenderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// SampleCount returns the MSAA sample count.
func (r *GPURenderer) SampleCount() uint32 {
	return r.config.SampleCount
}

// BufferCapacity returns the vertex and index capacity of the device
// buffers.
func (r *GPURenderer) BufferCapacity() (vertices, indices int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vertexCap, r.indexCap
}

// Frames returns the number of frames submitted.
func (r *GPURenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Render uploads the frame and draws it into the surface view, clearing
// the view with the frame's clear color first. The surface view is
// consumed: the next frame needs a new SetSurface call.
func (r *GPURenderer) Render(frame *papercut.FrameBuffer) error {
	if frame == nil {
		return ErrNilFrame
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrDestroyed
	}
	if r.surface == nil || r.width <= 0 || r.height <= 0 {
		return papercut.ErrFrameSkipped
	}
	surface := r.surface
	r.surface = nil

	if err := r.ensureTargets(r.width, r.height); err != nil {
		return err
	}

	vertices, indices := len(frame.Vertices), len(frame.Indices)
	if g := frame.Grow; g != nil {
		vertices = max(vertices, g.VertexCapacity)
		indices = max(indices, g.IndexCapacity)
	}
	if err := r.ensureBuffers(vertices, indices); err != nil {
		return err
	}

	if err := r.queue.WriteBuffer(r.uniformBuf, 0, frame.GlobalsBytes()); err != nil {
		return fmt.Errorf("upload globals: %w", err)
	}
	if !frame.Empty() {
		if err := r.queue.WriteBuffer(r.vertexBuf, 0, frame.VertexBytes()); err != nil {
			return fmt.Errorf("upload vertices: %w", err)
		}
		if err := r.queue.WriteBuffer(r.indexBuf, 0, frame.IndexBytes()); err != nil {
			return fmt.Errorf("upload indices: %w", err)
		}
	}

	if err := r.encodeAndSubmit(surface, frame); err != nil {
		return err
	}
	r.frames++
	return nil
}

// passDescriptor describes the frame's render pass. With MSAA the color
// attachment is the multisampled texture resolved into the surface.
func (r *GPURenderer) passDescriptor(surface hal.TextureView, clear papercut.Color) *hal.RenderPassDescriptor {
	color := hal.RenderPassColorAttachment{
		View:       surface,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: gputypes.Color{R: clear.R, G: clear.G, B: clear.B, A: clear.A},
	}
	if r.msaaView != nil {
		color.View = r.msaaView
		color.ResolveTarget = surface
	}
	return &hal.RenderPassDescriptor{
		Label:            "papercut_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{color},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 0,
		},
	}
}

// encodeAndSubmit records the render pass, submits it and waits for the
// device to finish.
func (r *GPURenderer) encodeAndSubmit(surface hal.TextureView, frame *papercut.FrameBuffer) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "papercut_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("papercut_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(r.passDescriptor(surface, frame.ClearColor))
	if !frame.Empty() {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertexBuf, 0)
		rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(len(frame.Indices)), 1, 0, 0, 0) //nolint:gosec // at most 3*MaxVertices
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	index, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return r.waitSubmission(index)
}

// waitSubmission polls the queue until the submission completes or the
// timeout elapses.
func (r *GPURenderer) waitSubmission(index uint64) error {
	deadline := time.Now().Add(r.config.SubmitTimeout)
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrSubmitTimeout, index, r.config.SubmitTimeout)
		}
		time.Sleep(100 * time.Microsecond)
	}
	return nil
}

// Destroy releases all GPU resources held by the renderer. The device and
// queue are left alone. Safe to call multiple times.
func (r *GPURenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyed = true
	r.surface = nil
	if r.device == nil {
		return
	}
	r.destroyTargets()
	if r.indexBuf != nil {
		r.device.DestroyBuffer(r.indexBuf)
		r.indexBuf, r.indexCap = nil, 0
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf, r.vertexCap = nil, 0
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

var _ papercut.FrameRenderer = (*GPURenderer)(nil)
