package stroke

import (
	"math"

	"github.com/gogpu/papercut/internal/path"
)

// LineCap specifies the shape of open polyline endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle of radius Width/2.
	LineCapRound
	// LineCapSquare extends the stroke Width/2 beyond the endpoint.
	LineCapSquare
)

// LineJoin specifies the shape of corners between segments.
type LineJoin int

const (
	// LineJoinMiter extends both edges until they meet, falling back to a
	// bevel when the miter ratio exceeds MiterLimit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound fills the outer corner with a circular arc.
	LineJoinRound
	// LineJoinBevel cuts the outer corner with a straight edge.
	LineJoinBevel
)

// Stroke defines the outline style. The outline is centered on the path:
// half of Width lies on each side.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a 1 unit wide stroke with butt caps and miter
// joins limited to 4.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// maxInnerMiter bounds the inner corner offset, in half widths, for very
// sharp turns.
const maxInnerMiter = 16.0

const straightEpsilon = 1e-9

// vtx is an emitted vertex: its sink index and its position.
type vtx struct {
	idx int
	p   path.Point
}

// corner holds the offset vertices at one path point. The In vertices end
// the incoming segment's ribbon and the Out vertices start the outgoing one.
type corner struct {
	leftIn, leftOut   vtx
	rightIn, rightOut vtx
}

// Expander converts polylines into triangle ribbons.
type Expander struct {
	style     Stroke
	tolerance float64

	sink path.Sink
	hw   float64
	tris int
}

// NewExpander creates an expander with the given style.
func NewExpander(style Stroke) *Expander {
	if style.MiterLimit < 1 {
		style.MiterLimit = 1
	}
	return &Expander{
		style:     style,
		tolerance: path.DefaultTolerance,
	}
}

// SetTolerance sets the arc flattening tolerance for round joins and caps.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Style returns the stroke style.
func (e *Expander) Style() Stroke {
	return e.style
}

// Expand triangulates the outline of pts into sink and returns the number
// of triangles emitted. Closed polylines get a join at every point; open
// ones get caps at both ends. A non-positive width or fewer than two
// distinct points emit nothing.
func (e *Expander) Expand(pts []path.Point, closed bool, sink path.Sink) int {
	hw := e.style.Width / 2
	if !(hw > 0) || math.IsInf(hw, 0) {
		return 0
	}
	pts = path.Dedup(pts, closed)
	if closed && len(pts) < 3 {
		closed = false
	}
	n := len(pts)
	if n < 2 {
		return 0
	}

	e.sink = sink
	e.hw = hw
	e.tris = 0

	segs := n - 1
	if closed {
		segs = n
	}
	dirs := make([]path.Point, segs)
	for i := range dirs {
		dirs[i] = pts[(i+1)%n].Sub(pts[i]).Normalize()
	}

	corners := make([]corner, n)
	for i := 0; i < n; i++ {
		switch {
		case !closed && i == 0:
			corners[i] = e.startCap(pts[0], dirs[0])
		case !closed && i == n-1:
			corners[i] = e.endCap(pts[i], dirs[segs-1])
		default:
			corners[i] = e.join(pts[i], dirs[(i-1+segs)%segs], dirs[i%segs])
		}
	}

	for i := 0; i < segs; i++ {
		a, b := corners[i], corners[(i+1)%n]
		e.tri(a.leftOut, a.rightOut, b.rightIn)
		e.tri(a.leftOut, b.rightIn, b.leftIn)
	}
	return e.tris
}

func (e *Expander) add(p path.Point) vtx {
	return vtx{idx: e.sink.AddVertex(p), p: p}
}

// tri emits a counter-clockwise triangle, flipping the order if needed.
// Flat triangles are dropped; flatness is measured relative to the edge
// lengths so fine strokes keep their triangles.
func (e *Expander) tri(a, b, c vtx) {
	u, v := b.p.Sub(a.p), c.p.Sub(a.p)
	cross := u.Cross(v)
	tol := straightEpsilon * u.Length() * v.Length()
	switch {
	case cross > tol:
		e.sink.AddTriangle(a.idx, b.idx, c.idx)
	case cross < -tol:
		e.sink.AddTriangle(a.idx, c.idx, b.idx)
	default:
		return
	}
	e.tris++
}

// fan emits an arc around center from the direction of first to the
// direction of last, sweeping by sweep radians, as a triangle fan.
func (e *Expander) fan(center, first, last vtx, sweep float64) {
	start := first.p.Sub(center.p)
	arc := path.Arc(nil, center.p, e.hw, math.Atan2(start.Y, start.X), sweep, e.tolerance)
	prev := first
	for i, q := range arc {
		var cur vtx
		if i == len(arc)-1 {
			cur = last
		} else {
			cur = e.add(q)
		}
		e.tri(center, prev, cur)
		prev = cur
	}
}

func (e *Expander) startCap(p, d path.Point) corner {
	nrm := d.Perp().Mul(e.hw)
	base := p
	if e.style.Cap == LineCapSquare {
		base = p.Sub(d.Mul(e.hw))
	}
	l, r := e.add(base.Add(nrm)), e.add(base.Sub(nrm))
	if e.style.Cap == LineCapRound {
		// Left normal rotated by +π passes through -d to the right normal.
		e.fan(e.add(p), l, r, math.Pi)
	}
	return corner{leftIn: l, leftOut: l, rightIn: r, rightOut: r}
}

func (e *Expander) endCap(p, d path.Point) corner {
	nrm := d.Perp().Mul(e.hw)
	base := p
	if e.style.Cap == LineCapSquare {
		base = p.Add(d.Mul(e.hw))
	}
	l, r := e.add(base.Add(nrm)), e.add(base.Sub(nrm))
	if e.style.Cap == LineCapRound {
		e.fan(e.add(p), r, l, math.Pi)
	}
	return corner{leftIn: l, leftOut: l, rightIn: r, rightOut: r}
}

// join builds the corner at p between incoming direction d0 and outgoing
// direction d1.
func (e *Expander) join(p, d0, d1 path.Point) corner {
	n0, n1 := d0.Perp(), d1.Perp()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)

	if math.Abs(cross) < straightEpsilon {
		if dot > 0 {
			l, r := e.add(p.Add(n1.Mul(e.hw))), e.add(p.Sub(n1.Mul(e.hw)))
			return corner{leftIn: l, leftOut: l, rightIn: r, rightOut: r}
		}
		// Full reversal: the two ribbons meet edge to edge.
		return corner{
			leftIn:   e.add(p.Add(n0.Mul(e.hw))),
			rightIn:  e.add(p.Sub(n0.Mul(e.hw))),
			leftOut:  e.add(p.Add(n1.Mul(e.hw))),
			rightOut: e.add(p.Sub(n1.Mul(e.hw))),
		}
	}

	// The outer side of a left turn is the right side.
	s := 1.0
	if cross > 0 {
		s = -1
	}

	m := n0.Add(n1).Normalize()
	cosHalf := m.Dot(n1)
	ratio := 1 / cosHalf
	inner := e.add(p.Sub(m.Mul(s * e.hw * math.Min(ratio, maxInnerMiter))))

	var outIn, outOut vtx
	if e.style.Join == LineJoinMiter && ratio <= e.style.MiterLimit {
		outIn = e.add(p.Add(m.Mul(s * e.hw * ratio)))
		outOut = outIn
	} else {
		outIn = e.add(p.Add(n0.Mul(s * e.hw)))
		outOut = e.add(p.Add(n1.Mul(s * e.hw)))
		e.tri(outIn, outOut, inner)
		if e.style.Join == LineJoinRound {
			sweep := math.Atan2(n0.Cross(n1), n0.Dot(n1))
			e.fan(e.add(p), outIn, outOut, sweep)
		}
	}

	if s > 0 {
		return corner{leftIn: outIn, leftOut: outOut, rightIn: inner, rightOut: inner}
	}
	return corner{leftIn: inner, leftOut: inner, rightIn: outIn, rightOut: outOut}
}
