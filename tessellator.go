package papercut

import (
	"fmt"

	"github.com/gogpu/papercut/internal/cache"
	"github.com/gogpu/papercut/internal/fill"
	"github.com/gogpu/papercut/internal/path"
	"github.com/gogpu/papercut/internal/stroke"
)

// DefaultTolerance is the default maximum deviation between a tessellated
// edge and the true curve, in local units.
const DefaultTolerance = path.DefaultTolerance

// ErrDegenerateShape is returned by Tessellate for paths with no area and
// no visible boundary, such as a zero-radius circle.
var ErrDegenerateShape = path.ErrDegenerate

// Path is a local-space polyline. Closed paths are filled and outlined;
// open paths are only outlined.
type Path struct {
	Points []Vec2
	Closed bool
}

// DefaultMeshCacheSize is the number of distinct shape meshes a
// Tessellator keeps by default.
const DefaultMeshCacheSize = 256

// Tessellator turns shapes into triangle lists. It is not safe for
// concurrent use.
//
// Shape results are kept in an LRU cache keyed by the shape's parameters,
// so identical shapes share one Geometry.
type Tessellator struct {
	tolerance float64
	style     StrokeStyle
	meshes    *cache.Cache[meshKey, Geometry]
}

// meshKey identifies a shape mesh. Tolerance and stroke style are fixed
// for the cache's lifetime.
type meshKey struct {
	kind    string
	a, b    float64
	n       int
	fill    Color
	outline Color
	width   float64
}

// CacheStats reports mesh cache usage.
type CacheStats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// NewTessellator returns a tessellator with the given curve tolerance.
// Non-positive tolerances select DefaultTolerance.
func NewTessellator(tolerance float64) *Tessellator {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	return &Tessellator{
		tolerance: tolerance,
		style:     DefaultStrokeStyle(),
		meshes:    cache.New[meshKey, Geometry](DefaultMeshCacheSize),
	}
}

// SetCacheSize replaces the mesh cache with one holding n meshes.
// n <= 0 disables caching.
func (t *Tessellator) SetCacheSize(n int) {
	if n <= 0 {
		t.meshes = nil
		return
	}
	t.meshes = cache.New[meshKey, Geometry](n)
}

// CacheStats returns mesh cache counters. All fields are zero when
// caching is disabled.
func (t *Tessellator) CacheStats() CacheStats {
	if t.meshes == nil {
		return CacheStats{}
	}
	s := t.meshes.Stats()
	return CacheStats{Len: s.Len, Capacity: s.Capacity, Hits: s.Hits, Misses: s.Misses}
}

// Tolerance returns the curve tolerance.
func (t *Tessellator) Tolerance() float64 {
	return t.tolerance
}

// StrokeStyle returns the caps and joins used for outlines.
func (t *Tessellator) StrokeStyle() StrokeStyle {
	return t.style
}

// SetStrokeStyle changes the caps and joins used for outlines. Shapes keep
// their cached geometry until updated and report Stale meanwhile.
func (t *Tessellator) SetStrokeStyle(s StrokeStyle) {
	if s == t.style {
		return
	}
	t.style = s
	if t.meshes != nil {
		t.meshes.Clear()
	}
}

// Shape tessellates a drawable with its current parameters. Degenerate
// shapes yield empty geometry; the reason is logged at debug level.
// The returned slices may be shared with other shapes.
func (t *Tessellator) Shape(d Drawable) Geometry {
	var key meshKey
	switch s := d.(type) {
	case *Circle:
		key = meshKey{kind: "circle", a: s.Radius}
		key.fill, key.outline, key.width = s.FillColor, s.OutlineColor, s.OutlineThickness
	case *Rectangle:
		key = meshKey{kind: "rectangle", a: s.Size.X, b: s.Size.Y}
		key.fill, key.outline, key.width = s.FillColor, s.OutlineColor, s.OutlineThickness
	case *Polygon:
		key = meshKey{kind: "polygon", a: s.Radius, n: s.PointCount}
		key.fill, key.outline, key.width = s.FillColor, s.OutlineColor, s.OutlineThickness
	case *Line:
		key = meshKey{kind: "line", a: s.Length, b: s.Angle}
		key.outline, key.width = s.OutlineColor, s.OutlineThickness
	default:
		panic(fmt.Sprintf("papercut: unknown drawable %T", d))
	}

	if t.meshes == nil {
		return t.mesh(key)
	}
	return t.meshes.GetOrCreate(key, func() Geometry { return t.mesh(key) })
}

func (t *Tessellator) mesh(key meshKey) Geometry {
	var (
		contour path.Contour
		err     error
	)
	switch key.kind {
	case "circle":
		contour, err = path.Circle(key.a, t.tolerance)
	case "rectangle":
		contour, err = path.Rectangle(key.a, key.b)
	case "polygon":
		contour, err = path.Polygon(key.a, key.n)
	case "line":
		contour, err = path.Line(key.a, key.b)
	}

	if err == nil {
		var g Geometry
		g, err = t.tessellate(contour, key.fill, key.outline, key.width)
		if err == nil {
			return g
		}
	}
	Logger().Debug("papercut: empty geometry", "shape", key.kind, "err", err)
	return Geometry{}
}

// Tessellate triangulates a path: the fill first when the path is closed,
// then the outline when thickness is positive. Every vertex carries the
// fill or outline color it belongs to.
func (t *Tessellator) Tessellate(p Path, fillColor, outlineColor Color, thickness float64) (Geometry, error) {
	pts := make([]path.Point, len(p.Points))
	for i, v := range p.Points {
		if !v.IsFinite() {
			return Geometry{}, fmt.Errorf("papercut: point %d is not finite: %w", i, ErrDegenerateShape)
		}
		pts[i] = path.Pt(v.X, v.Y)
	}
	return t.tessellate(path.Contour{Points: pts, Closed: p.Closed}, fillColor, outlineColor, thickness)
}

func (t *Tessellator) tessellate(c path.Contour, fillColor, outlineColor Color, thickness float64) (Geometry, error) {
	var g Geometry
	sink := &geometrySink{geom: &g}

	if c.Closed {
		sink.color = fillColor
		if _, err := fill.Fill(c.Points, sink); err != nil {
			return Geometry{}, err
		}
	}
	g.fillCount = len(g.Indices)

	if thickness > 0 {
		sink.color = outlineColor
		e := stroke.NewExpander(t.style.expander(thickness))
		e.SetTolerance(t.tolerance)
		e.Expand(c.Points, c.Closed, sink)
	}

	if sink.overflow {
		return Geometry{}, fmt.Errorf("papercut: shape needs more than %d vertices: %w", MaxVertices, ErrCapacityExceeded)
	}
	if g.Empty() {
		return Geometry{}, fmt.Errorf("papercut: no triangles: %w", ErrDegenerateShape)
	}
	return g, nil
}

// geometrySink collects fill and stroke output into a Geometry.
type geometrySink struct {
	geom     *Geometry
	color    Color
	overflow bool
}

func (s *geometrySink) AddVertex(p path.Point) int {
	if len(s.geom.Vertices) >= MaxVertices {
		s.overflow = true
		return 0
	}
	s.geom.Vertices = append(s.geom.Vertices, Vertex{Position: V2(p.X, p.Y), Color: s.color})
	return len(s.geom.Vertices) - 1
}

func (s *geometrySink) AddTriangle(a, b, c int) {
	if s.overflow {
		return
	}
	s.geom.Indices = append(s.geom.Indices, uint16(a), uint16(b), uint16(c))
}
