// Package stroke triangulates outlines of flattened polylines.
//
// The outline is a ribbon of constant width centered on the polyline. Each
// segment contributes one quad spanning its left and right offset edges,
// and each point contributes either a join (interior points, and every
// point of a closed polyline) or a cap (the ends of an open polyline).
//
// # Line Caps
//
//   - LineCapButt: the ribbon ends exactly at the endpoint
//   - LineCapRound: a semicircular fan with radius = width/2
//   - LineCapSquare: the ribbon extends width/2 beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: both offset edges meet at a point; if the miter ratio
//     exceeds MiterLimit the join becomes a bevel
//   - LineJoinRound: the outer corner is filled with an arc fan
//   - LineJoinBevel: the outer corner is cut by a single triangle
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Stroke{
//	    Width:      2.0,
//	    Cap:        stroke.LineCapButt,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 4.0,
//	})
//	e.SetTolerance(0.02)
//	e.Expand(points, true, sink)
//
// All emitted triangles are wound counter-clockwise. Overlapping triangles
// at sharp inner corners are expected and harmless for opaque output.
package stroke
