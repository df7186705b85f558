// Package fill triangulates the interior of closed contours using the
// non-zero fill rule.
//
// Convex contours, which is every shape the engine builds, are split into a
// triangle fan around their first vertex. Simple concave contours fall back
// to a constrained Delaunay sweep. Output triangles are always wound
// counter-clockwise regardless of the input winding.
package fill

import (
	"errors"
	"fmt"

	poly2tri "github.com/ByteArena/poly2tri-go"

	"github.com/gogpu/papercut/internal/path"
)

// ErrTriangulation reports a contour the sweep could not triangulate,
// typically because it self-intersects.
var ErrTriangulation = errors.New("fill: triangulation failed")

// Fill triangulates the closed contour pts into sink and returns the number
// of triangles emitted. Degenerate contours (fewer than three distinct
// points or zero area) emit nothing and return 0 with a nil error.
func Fill(pts []path.Point, sink path.Sink) (int, error) {
	pts = path.Dedup(pts, true)
	info := AnalyzeConvexity(pts)
	if info.Winding == 0 {
		return 0, nil
	}
	if info.Convex {
		return fan(pts, info.Winding, sink), nil
	}
	return sweep(pts, sink)
}

// fan emits triangles (0, i, i+1). Triangles whose corner at vertex 0 is
// flat are skipped; they come from collinear runs and cover nothing.
func fan(pts []path.Point, winding int, sink path.Sink) int {
	n := len(pts)
	idx := make([]int, n)
	for i := range pts {
		// Reverse clockwise input so emitted triangles are counter-clockwise.
		src := i
		if winding < 0 {
			src = (n - i) % n
		}
		idx[i] = sink.AddVertex(pts[src])
	}

	count := 0
	at := func(i int) path.Point {
		if winding < 0 {
			return pts[(n-i)%n]
		}
		return pts[i]
	}
	for i := 1; i+1 < n; i++ {
		p0, p1, p2 := at(0), at(i), at(i+1)
		if orientation(p1.Sub(p0), p2.Sub(p0)) <= 0 {
			continue
		}
		sink.AddTriangle(idx[0], idx[i], idx[i+1])
		count++
	}
	return count
}

// sweep triangulates a simple concave contour. The sweep library panics on
// self-intersecting or otherwise invalid input, which is converted to
// ErrTriangulation.
func sweep(pts []path.Point, sink path.Sink) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = fmt.Errorf("%w: %v", ErrTriangulation, r)
		}
	}()

	contour := make([]*poly2tri.Point, len(pts))
	index := make(map[path.Point]int, len(pts))
	for i, p := range pts {
		contour[i] = poly2tri.NewPoint(p.X, p.Y)
	}

	ctx := poly2tri.NewSweepContext(contour, false)
	ctx.Triangulate()
	triangles := ctx.GetTriangles()

	// Emit vertices only after the sweep succeeded so a panic leaves the
	// sink untouched.
	for _, p := range pts {
		if _, ok := index[p]; !ok {
			index[p] = sink.AddVertex(p)
		}
	}
	for _, tr := range triangles {
		a, okA := index[path.Pt(tr.Points[0].X, tr.Points[0].Y)]
		b, okB := index[path.Pt(tr.Points[1].X, tr.Points[1].Y)]
		c, okC := index[path.Pt(tr.Points[2].X, tr.Points[2].Y)]
		if !okA || !okB || !okC {
			return count, fmt.Errorf("%w: triangle references unknown point", ErrTriangulation)
		}
		p0 := path.Pt(tr.Points[0].X, tr.Points[0].Y)
		p1 := path.Pt(tr.Points[1].X, tr.Points[1].Y)
		p2 := path.Pt(tr.Points[2].X, tr.Points[2].Y)
		switch orientation(p1.Sub(p0), p2.Sub(p0)) {
		case 1:
			sink.AddTriangle(a, b, c)
		case -1:
			sink.AddTriangle(a, c, b)
		default:
			continue
		}
		count++
	}
	return count, nil
}
