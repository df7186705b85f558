package papercut

import "math"

// MaxVertices is the vertex limit of one frame, and of one shape. Indices
// are 16-bit and 0xFFFF is left unused since some devices reserve it as the
// primitive restart value.
const MaxVertices = math.MaxUint16

// Vertex is a tessellated vertex in the shape's local space. The color is
// baked at tessellation time.
type Vertex struct {
	Position Vec2
	Color    Color
}

// Geometry is a triangle list in local space. Fill triangles come first,
// followed by outline triangles.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16

	// fillCount is the number of indices belonging to the fill.
	fillCount int
}

// VertexCount returns the number of vertices.
func (g Geometry) VertexCount() int {
	return len(g.Vertices)
}

// Empty reports whether there is nothing to draw.
func (g Geometry) Empty() bool {
	return len(g.Indices) == 0
}

// FillIndices returns the index sub-range of the fill triangles.
func (g Geometry) FillIndices() []uint16 {
	return g.Indices[:g.fillCount]
}

// OutlineIndices returns the index sub-range of the outline triangles.
func (g Geometry) OutlineIndices() []uint16 {
	return g.Indices[g.fillCount:]
}

// shapeCache holds a shape's last tessellation together with the
// parameters and tessellator settings it was computed from.
type shapeCache[K comparable] struct {
	geom      Geometry
	params    K
	tess      *Tessellator
	tolerance float64
	stroke    StrokeStyle
	valid     bool
}

func (c *shapeCache[K]) store(g Geometry, params K, t *Tessellator) {
	c.geom = g
	c.params = params
	c.tess = t
	c.tolerance = t.Tolerance()
	c.stroke = t.StrokeStyle()
	c.valid = true
}

// stale reports whether the shape never tessellated, or its parameters or
// the tolerance and stroke style of t changed since. A nil t checks
// against the tessellator used last.
func (c *shapeCache[K]) stale(params K, t *Tessellator) bool {
	if !c.valid || c.params != params {
		return true
	}
	if t == nil {
		t = c.tess
	}
	return t.Tolerance() != c.tolerance || t.StrokeStyle() != c.stroke
}
