// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"fmt"
	"image"
	"image/draw"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"

	"github.com/gogpu/papercut"
)

// SoftwareRenderer draws frames into a PixmapTarget on the CPU.
//
// Vertices go through the frame's projection·view matrix like in the
// vertex shader, then NDC is mapped to pixels with y pointing down.
// Triangles whose depth falls outside [0, 1] are clipped. Triangles are
// drawn from the lowest depth to the highest, keeping index order for
// equal depth, which matches the depth test of GPURenderer. Consecutive
// triangles of the same color are rasterized together so shared edges
// leave no seams.
type SoftwareRenderer struct {
	target *PixmapTarget
	rast   vector.Rasterizer
	tris   []triangle
}

// triangle is a projected triangle in pixel coordinates.
type triangle struct {
	a, b, c [2]float32
	depth   float32
	color   [4]float32
}

// NewSoftwareRenderer creates a renderer drawing into target. A nil target
// is allocated on the first Resize.
func NewSoftwareRenderer(target *PixmapTarget) *SoftwareRenderer {
	return &SoftwareRenderer{target: target}
}

// Target returns the render target.
func (r *SoftwareRenderer) Target() *PixmapTarget {
	return r.target
}

// Resize resizes the target to width×height pixels.
func (r *SoftwareRenderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: resize to %dx%d: %w", width, height, papercut.ErrInvalidViewport)
	}
	if r.target == nil {
		r.target = NewPixmapTarget(width, height)
		return nil
	}
	r.target.Resize(width, height)
	return nil
}

// Render clears the target with the frame's clear color and draws the
// frame's triangles back to front.
func (r *SoftwareRenderer) Render(frame *papercut.FrameBuffer) error {
	if frame == nil {
		return ErrNilFrame
	}
	if r.target == nil {
		return papercut.ErrFrameSkipped
	}
	r.target.Clear(frame.ClearColor.Std())
	if frame.Empty() {
		return nil
	}

	dst := r.target.Image()
	w, h := r.target.Width(), r.target.Height()

	tris, err := r.collect(frame, w, h)
	if err != nil {
		return err
	}
	slices.SortStableFunc(tris, func(x, y triangle) int { return cmp.Compare(x.depth, y.depth) })

	var (
		current [4]float32
		open    bool
	)
	flush := func() {
		if !open {
			return
		}
		c := papercut.RGBA(float64(current[0]), float64(current[1]), float64(current[2]), float64(current[3]))
		r.rast.Draw(dst, dst.Bounds(), image.NewUniform(c.Std()), image.Point{})
		open = false
	}

	for _, t := range tris {
		if open && t.color != current {
			flush()
		}
		if !open {
			r.rast.Reset(w, h)
			r.rast.DrawOp = draw.Over
			current = t.color
			open = true
		}

		// Keep one winding per batch so overlapping triangles add up
		// instead of cancelling.
		a, b, c := t.a, t.b, t.c
		if (b[0]-a[0])*(c[1]-a[1])-(b[1]-a[1])*(c[0]-a[0]) < 0 {
			b, c = c, b
		}
		r.rast.MoveTo(a[0], a[1])
		r.rast.LineTo(b[0], b[1])
		r.rast.LineTo(c[0], c[1])
		r.rast.ClosePath()
	}
	flush()
	return nil
}

// collect projects the frame's triangles in index order, dropping those
// outside the depth range.
func (r *SoftwareRenderer) collect(frame *papercut.FrameBuffer, w, h int) ([]triangle, error) {
	mvp := frame.Globals.Projection.Mul4(frame.Globals.View)
	verts, idx := frame.Vertices, frame.Indices
	tris := r.tris[:0]
	for i := 0; i+2 < len(idx); i += 3 {
		ia, ib, ic := int(idx[i]), int(idx[i+1]), int(idx[i+2])
		if ia >= len(verts) || ib >= len(verts) || ic >= len(verts) {
			return nil, fmt.Errorf("render: triangle %d references vertex outside the frame", i/3)
		}
		a, za, okA := project(mvp, verts[ia], w, h)
		b, _, okB := project(mvp, verts[ib], w, h)
		c, _, okC := project(mvp, verts[ic], w, h)
		if !okA || !okB || !okC {
			continue
		}
		tris = append(tris, triangle{a: a, b: b, c: c, depth: za, color: verts[ia].Color})
	}
	r.tris = tris
	return tris, nil
}

// project maps a world-space vertex to pixel coordinates and NDC depth.
// It reports false for vertices outside the depth range.
func project(mvp mgl32.Mat4, v papercut.GPUVertex, width, height int) ([2]float32, float32, bool) {
	clip := mvp.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1})
	cw := clip.W()
	if cw == 0 {
		return [2]float32{}, 0, false
	}
	z := clip.Z() / cw
	if z < 0 || z > 1 {
		return [2]float32{}, 0, false
	}
	x := (clip.X()/cw + 1) / 2 * float32(width)
	y := (1 - clip.Y()/cw) / 2 * float32(height)
	return [2]float32{x, y}, z, true
}

var _ papercut.FrameRenderer = (*SoftwareRenderer)(nil)
