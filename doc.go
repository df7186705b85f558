// Package papercut is a small real-time 2D rendering engine core.
//
// # Overview
//
// papercut turns declarative shapes (circles, rectangles, regular polygons
// and line segments) attached to transforms into one triangle mesh per
// frame, drawn with a single indexed draw call. Game state advances on a
// fixed timestep decoupled from the display refresh rate.
//
// # Quick Start
//
//	tess := papercut.NewTessellator(papercut.DefaultTolerance)
//
//	box := papercut.NewRectangle(200, 200)
//	box.OutlineThickness = 4
//	box.Update(tess)
//
//	tr := papercut.FromPosition(200, 200)
//	tr.Pivot = papercut.V2(100, 100)
//	tr.Rotation = 30
//
//	cam, _ := papercut.NewCamera(800, 600)
//	asm := papercut.NewAssembler(tess, papercut.DefaultAssemblerConfig())
//	frame, err := asm.BuildFrame(func(yield func(*papercut.Transform, papercut.Drawable) bool) {
//	    yield(&tr, box)
//	}, cam)
//
// # Architecture
//
// The package is organized into:
//   - Shapes: Circle, Rectangle, Polygon, Line, each with a geometry cache
//   - Tessellator: fill (non-zero rule) and centered outline triangulation
//   - Transform and Camera: world matrices and orthographic projection
//   - Assembler: builds the per-frame FrameBuffer with 16-bit indices
//   - Clock and Engine: fixed-step updates and the platform frame pipeline
//   - render: software and GPU FrameRenderer implementations
//   - world: a minimal entity store producing (Transform, Drawable) pairs
//
// # Coordinate System
//
// World space has its origin at the bottom-left of the viewport:
//   - X increases right
//   - Y increases up
//   - Rotation is in degrees; positive values turn clockwise on screen
//
// Screen positions passed to Camera.ScreenToWorld use y down, as reported
// by windowing systems.
//
// # Geometry Cache
//
// Shapes do not re-tessellate on their own. After changing a shape's
// fields call Update, or enable WithAutoUpdate to let the engine refresh
// stale shapes while assembling the frame.
//
// # Concurrency
//
// Nothing in papercut is safe for concurrent use except SetLogger and
// Logger. Updates and frame assembly run on one thread.
package papercut
