// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/papercut"
)

type placed struct {
	tr *papercut.Transform
	d  papercut.Drawable
}

// assemble tessellates the drawables and builds a frame for a size×size
// viewport.
func assemble(t *testing.T, size int, items ...placed) *papercut.FrameBuffer {
	t.Helper()
	cam, err := papercut.NewCamera(size, size)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	tess := papercut.NewTessellator(0)
	asm := papercut.NewAssembler(tess, papercut.DefaultAssemblerConfig())
	for _, it := range items {
		it.d.Update(tess)
	}
	frame, err := asm.BuildFrame(func(yield func(*papercut.Transform, papercut.Drawable) bool) {
		for _, it := range items {
			if !yield(it.tr, it.d) {
				return
			}
		}
	}, cam)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	return frame
}

func at(x, y float64) *papercut.Transform {
	tr := papercut.FromPosition(x, y)
	return &tr
}

func near(got, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= 2 && d(got.G, want.G) <= 2 && d(got.B, want.B) <= 2 && d(got.A, want.A) <= 2
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestSoftwareRendererRectangle(t *testing.T) {
	rect := papercut.NewRectangle(40, 40)
	rect.FillColor = papercut.Red
	frame := assemble(t, 100, placed{at(10, 10), rect})

	r := NewSoftwareRenderer(nil)
	if err := r.Resize(100, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := r.Render(frame); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// World y grows up, pixel y grows down.
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"inside", 30, 70, red},
		{"near bottom-left corner", 12, 88, red},
		{"near top-right corner", 48, 52, red},
		{"below", 30, 95, white},
		{"above", 30, 30, white},
		{"right", 70, 70, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Target().RGBAAt(tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSoftwareRendererDrawOrder(t *testing.T) {
	under := papercut.NewRectangle(50, 50)
	under.FillColor = papercut.Red
	over := papercut.NewRectangle(50, 50)
	over.FillColor = papercut.Blue
	frame := assemble(t, 100, placed{at(0, 0), under}, placed{at(25, 25), over})

	r := NewSoftwareRenderer(NewPixmapTarget(100, 100))
	if err := r.Render(frame); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.Target().RGBAAt(40, 60); !near(got, blue) {
		t.Errorf("overlap = %v, want blue (later shapes draw on top)", got)
	}
	if got := r.Target().RGBAAt(10, 90); !near(got, red) {
		t.Errorf("uncovered part of first shape = %v, want red", got)
	}
}

func TestSoftwareRendererZIndex(t *testing.T) {
	tests := []struct {
		name          string
		first, second float64
		want          color.RGBA
	}{
		{"equal z keeps frame order", 0, 0, blue},
		{"higher z drawn first stays on top", 2, 1, red},
		{"higher z drawn last stays on top", 1, 2, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := papercut.NewRectangle(50, 50)
			first.FillColor = papercut.Red
			first.ZIndex = tt.first
			second := papercut.NewRectangle(50, 50)
			second.FillColor = papercut.Blue
			second.ZIndex = tt.second
			frame := assemble(t, 100, placed{at(0, 0), first}, placed{at(25, 25), second})

			r := NewSoftwareRenderer(NewPixmapTarget(100, 100))
			if err := r.Render(frame); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got := r.Target().RGBAAt(40, 60); !near(got, tt.want) {
				t.Errorf("overlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoftwareRendererOutline(t *testing.T) {
	c := papercut.NewCircle(30)
	c.FillColor = papercut.Red
	c.OutlineThickness = 6
	c.OutlineColor = papercut.Blue
	frame := assemble(t, 100, placed{at(20, 20), c})

	r := NewSoftwareRenderer(NewPixmapTarget(100, 100))
	if err := r.Render(frame); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Center (50, 50) is filled; the rightmost point (80, 50) is on the outline.
	if got := r.Target().RGBAAt(50, 50); !near(got, red) {
		t.Errorf("center = %v, want red", got)
	}
	if got := r.Target().RGBAAt(80, 50); !near(got, blue) {
		t.Errorf("rim = %v, want blue", got)
	}
}

func TestSoftwareRendererClearColor(t *testing.T) {
	cam, err := papercut.NewCamera(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	frame := &papercut.FrameBuffer{
		Globals:    papercut.Globals{View: cam.View(), Projection: cam.Projection()},
		ClearColor: papercut.Black,
	}
	target := NewPixmapTarget(8, 8)
	target.Clear(white)

	r := NewSoftwareRenderer(target)
	if err := r.Render(frame); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := target.RGBAAt(x, y); got != black {
				t.Fatalf("pixel (%d, %d) = %v, want black", x, y, got)
			}
		}
	}
}

func TestSoftwareRendererDepthClip(t *testing.T) {
	cam, err := papercut.NewCamera(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	tri := func(z float32) []papercut.GPUVertex {
		col := [4]float32{1, 0, 0, 1}
		return []papercut.GPUVertex{
			{Position: [3]float32{0, 0, z}, Color: col},
			{Position: [3]float32{200, 0, z}, Color: col},
			{Position: [3]float32{0, 200, z}, Color: col},
		}
	}
	tests := []struct {
		name string
		z    float32
		want color.RGBA
	}{
		{"inside depth range", 5, red},
		{"beyond far plane", papercut.FarPlane + 1, white},
		{"before near plane", papercut.NearPlane - 1, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := &papercut.FrameBuffer{
				Vertices:   tri(tt.z),
				Indices:    []uint16{0, 1, 2},
				Globals:    papercut.Globals{View: cam.View(), Projection: cam.Projection()},
				ClearColor: papercut.White,
			}
			r := NewSoftwareRenderer(NewPixmapTarget(100, 100))
			if err := r.Render(frame); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got := r.Target().RGBAAt(20, 80); !near(got, tt.want) {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoftwareRendererErrors(t *testing.T) {
	r := NewSoftwareRenderer(nil)
	if err := r.Render(&papercut.FrameBuffer{}); !errors.Is(err, papercut.ErrFrameSkipped) {
		t.Errorf("Render without target = %v, want ErrFrameSkipped", err)
	}
	if err := r.Render(nil); !errors.Is(err, ErrNilFrame) {
		t.Errorf("Render(nil) = %v, want ErrNilFrame", err)
	}
	if err := r.Resize(0, 10); !errors.Is(err, papercut.ErrInvalidViewport) {
		t.Errorf("Resize(0, 10) = %v, want ErrInvalidViewport", err)
	}

	r = NewSoftwareRenderer(NewPixmapTarget(4, 4))
	bad := &papercut.FrameBuffer{
		Vertices: make([]papercut.GPUVertex, 2),
		Indices:  []uint16{0, 1, 2},
	}
	if err := r.Render(bad); err == nil {
		t.Error("Render with out-of-range index should fail")
	}
}

func TestSoftwareRendererResize(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	r := NewSoftwareRenderer(target)
	if err := r.Resize(30, 20); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Target() != target {
		t.Error("Resize should keep the target")
	}
	if target.Width() != 30 || target.Height() != 20 {
		t.Errorf("size = %dx%d, want 30x20", target.Width(), target.Height())
	}
}

func TestSoftwareRendererCapabilities(t *testing.T) {
	caps := NewSoftwareRenderer(nil).Capabilities()
	if caps.IsGPU {
		t.Error("SoftwareRenderer should not be GPU")
	}
	if !caps.Antialiased || !caps.DepthTested {
		t.Errorf("Capabilities() = %+v, want antialiased and depth tested", caps)
	}
	if caps.MaxVertices != papercut.MaxVertices {
		t.Errorf("MaxVertices = %d, want %d", caps.MaxVertices, papercut.MaxVertices)
	}
}
