package path

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerate reports a shape whose parameters describe no area and no
// visible boundary.
var ErrDegenerate = errors.New("path: degenerate contour")

// Contour is a flattened boundary in local space. Closed contours have an
// implicit edge from the last point back to the first.
type Contour struct {
	Points []Point
	Closed bool
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Circle returns a counter-clockwise circle of the given radius whose
// bounding box starts at the local origin, so its center is (r, r).
func Circle(radius, tolerance float64) (Contour, error) {
	if !finite(radius) || radius <= 0 {
		return Contour{}, fmt.Errorf("%w: circle radius %g", ErrDegenerate, radius)
	}
	n := CircleSegments(radius, tolerance)
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: radius + radius*math.Cos(a), Y: radius + radius*math.Sin(a)}
	}
	return Contour{Points: pts, Closed: true}, nil
}

// Rectangle returns the box [0,0]×[w,h] wound counter-clockwise.
func Rectangle(w, h float64) (Contour, error) {
	if !finite(w, h) || w <= 0 || h <= 0 {
		return Contour{}, fmt.Errorf("%w: rectangle size %gx%g", ErrDegenerate, w, h)
	}
	return Contour{
		Points: []Point{{0, 0}, {w, 0}, {w, h}, {0, h}},
		Closed: true,
	}, nil
}

// Polygon returns a regular polygon with n vertices on a circle of the given
// radius centered at (r, r). The first vertex points up (90°) and the rest
// follow counter-clockwise at 360°/n increments.
func Polygon(radius float64, n int) (Contour, error) {
	if n < 3 {
		return Contour{}, fmt.Errorf("%w: polygon with %d points", ErrDegenerate, n)
	}
	if !finite(radius) || radius <= 0 {
		return Contour{}, fmt.Errorf("%w: polygon radius %g", ErrDegenerate, radius)
	}
	pts := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		a := math.Pi/2 + step*float64(i)
		pts[i] = Point{X: radius + radius*math.Cos(a), Y: radius + radius*math.Sin(a)}
	}
	return Contour{Points: pts, Closed: true}, nil
}

// Line returns an open segment from the origin to
// length·(cos a, sin a), where a = (90° − angle) in radians.
func Line(length, angleDeg float64) (Contour, error) {
	if !finite(length, angleDeg) || length == 0 {
		return Contour{}, fmt.Errorf("%w: line length %g", ErrDegenerate, length)
	}
	a := (-angleDeg + 90) * math.Pi / 180
	return Contour{
		Points: []Point{{0, 0}, {length * math.Cos(a), length * math.Sin(a)}},
	}, nil
}
