// Package path builds the local-space contours that the tessellator fills
// and strokes.
//
// Every shape is reduced to a polyline: curved boundaries are flattened into
// straight segments so that no point on a segment deviates from the true
// curve by more than the requested tolerance.
package path

import (
	"math"
)

// DefaultTolerance is the maximum distance between a flattened segment and
// the curve it approximates, in local units.
const DefaultTolerance = 0.02

// maxSegments bounds the flattening of a single curve so that a tiny
// tolerance on a huge radius cannot allocate without limit.
const maxSegments = 1 << 14

// ArcSegments returns the number of straight segments needed to approximate
// an arc of the given radius and sweep (radians) within tolerance.
//
// The sagitta of a chord spanning angle θ on a circle of radius r is
// r·(1 − cos(θ/2)). Solving sagitta ≤ tolerance for θ gives the largest
// allowed step angle.
func ArcSegments(radius, sweep, tolerance float64) int {
	sweep = math.Abs(sweep)
	if radius <= 0 || sweep == 0 || math.IsNaN(radius) || math.IsNaN(sweep) {
		return 0
	}
	if tolerance <= 0 || math.IsNaN(tolerance) {
		tolerance = DefaultTolerance
	}

	ratio := 1 - tolerance/radius
	if ratio < -1 {
		ratio = -1
	}
	step := 2 * math.Acos(ratio)
	if step <= 0 {
		return maxSegments
	}

	n := int(math.Ceil(sweep / step))
	if n < 1 {
		n = 1
	}
	if n > maxSegments {
		n = maxSegments
	}
	return n
}

// CircleSegments returns the number of segments used for a full circle.
// A closed circle is never flattened to fewer than three segments.
func CircleSegments(radius, tolerance float64) int {
	n := ArcSegments(radius, 2*math.Pi, tolerance)
	if n > 0 && n < 3 {
		n = 3
	}
	return n
}

// Arc appends points along an arc centered at c, starting at angle a0 and
// sweeping by sweep radians. The start point is not appended; the end point
// is. Points are appended to dst and the extended slice is returned.
func Arc(dst []Point, c Point, radius, a0, sweep, tolerance float64) []Point {
	n := ArcSegments(radius, sweep, tolerance)
	for i := 1; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		dst = append(dst, Point{X: c.X + radius*math.Cos(a), Y: c.Y + radius*math.Sin(a)})
	}
	return dst
}
