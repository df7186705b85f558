package fill

import "github.com/gogpu/papercut/internal/path"

// convexityEpsilon is the tolerance for the sine of the angle between two
// edges. Turns below it are treated as collinear. It is relative to the
// edge lengths, so finely flattened small contours keep their turns.
const convexityEpsilon = 1e-10

// orientation returns +1 when v turns counter-clockwise from u, -1 when it
// turns clockwise and 0 when they are collinear.
func orientation(u, v path.Point) int {
	cross := u.Cross(v)
	tol := convexityEpsilon * u.Length() * v.Length()
	switch {
	case cross > tol:
		return 1
	case cross < -tol:
		return -1
	}
	return 0
}

// Convexity describes the shape of a closed contour.
type Convexity struct {
	// Convex is true if all turns go in the same direction.
	Convex bool

	// Winding is +1 for counter-clockwise, -1 for clockwise and 0 for
	// contours with fewer than 3 non-collinear points.
	Winding int

	// NumPoints is the number of points analyzed.
	NumPoints int
}

// AnalyzeConvexity walks every pair of consecutive edges of the closed
// contour and checks that their cross products share a sign. Collinear
// edges are permitted.
func AnalyzeConvexity(points []path.Point) Convexity {
	n := len(points)
	result := Convexity{NumPoints: n}
	if n < 3 {
		return result
	}

	var positive, negative int
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		p2 := points[(i+2)%n]

		switch orientation(p1.Sub(p0), p2.Sub(p1)) {
		case 1:
			positive++
		case -1:
			negative++
		}
	}

	if positive == 0 && negative == 0 {
		return result
	}

	// Mixed signs: concave or self-intersecting.
	if positive > 0 && negative > 0 {
		result.Winding = signedAreaSign(points)
		return result
	}

	result.Convex = true
	if positive > 0 {
		result.Winding = 1
	} else {
		result.Winding = -1
	}
	return result
}

// SignedArea returns the shoelace area of the closed contour. Positive
// values mean counter-clockwise winding.
func SignedArea(points []path.Point) float64 {
	var sum float64
	n := len(points)
	for i := range points {
		sum += points[i].Cross(points[(i+1)%n])
	}
	return sum / 2
}

// signedAreaSign returns the sign of the contour's area, treating areas
// below epsilon times the squared perimeter as zero.
func signedAreaSign(points []path.Point) int {
	var perimeter float64
	n := len(points)
	for i := range points {
		perimeter += points[(i+1)%n].Sub(points[i]).Length()
	}
	a := SignedArea(points)
	tol := convexityEpsilon * perimeter * perimeter
	switch {
	case a > tol:
		return 1
	case a < -tol:
		return -1
	}
	return 0
}
