package papercut

// Style is the fill and outline appearance shared by closed shapes.
type Style struct {
	FillColor        Color
	OutlineThickness float64
	OutlineColor     Color

	// ZIndex is written to the z coordinate of every vertex. It must lie
	// within [NearPlane, FarPlane].
	ZIndex float64
}

// DefaultStyle returns a white fill with no outline.
func DefaultStyle() Style {
	return Style{FillColor: White, OutlineColor: Black}
}

// Drawable is one of *Circle, *Rectangle, *Polygon or *Line.
//
// Shapes cache their tessellation. The cache changes only when Update is
// called: after editing a shape's fields call Update again, or the old
// geometry keeps being drawn. Stale reports whether that is the case.
type Drawable interface {
	// Geometry returns the cached local-space geometry. The slices must not
	// be modified.
	Geometry() Geometry

	// Update re-tessellates the shape with its current parameters.
	Update(t *Tessellator)

	// Stale reports whether the cache is missing or out of date, including
	// a change to the stroke style of the tessellator that built it.
	Stale() bool

	staleFor(t *Tessellator) bool
	zIndex() float64
}

// Circle is a filled circle whose bounding box starts at the local origin,
// so its center is (Radius, Radius).
type Circle struct {
	Radius float64
	Style

	cache shapeCache[circleParams]
}

type circleParams struct {
	radius float64
	style  Style
}

// NewCircle returns a circle with the default style.
func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius, Style: DefaultStyle()}
}

func (c *Circle) params() circleParams  { return circleParams{c.Radius, c.Style} }
func (c *Circle) Geometry() Geometry    { return c.cache.geom }
func (c *Circle) Stale() bool           { return c.cache.stale(c.params(), nil) }
func (c *Circle) zIndex() float64       { return c.ZIndex }
func (c *Circle) Update(t *Tessellator) { c.cache.store(t.Shape(c), c.params(), t) }

func (c *Circle) staleFor(t *Tessellator) bool { return c.cache.stale(c.params(), t) }

// Rectangle is an axis-aligned box spanning [0, Size.X]×[0, Size.Y] in
// local space.
type Rectangle struct {
	Size Vec2
	Style

	cache shapeCache[rectangleParams]
}

type rectangleParams struct {
	size  Vec2
	style Style
}

// NewRectangle returns a rectangle with the default style.
func NewRectangle(width, height float64) *Rectangle {
	return &Rectangle{Size: V2(width, height), Style: DefaultStyle()}
}

func (r *Rectangle) params() rectangleParams { return rectangleParams{r.Size, r.Style} }
func (r *Rectangle) Geometry() Geometry      { return r.cache.geom }
func (r *Rectangle) Stale() bool             { return r.cache.stale(r.params(), nil) }
func (r *Rectangle) zIndex() float64         { return r.ZIndex }
func (r *Rectangle) Update(t *Tessellator)   { r.cache.store(t.Shape(r), r.params(), t) }

func (r *Rectangle) staleFor(t *Tessellator) bool { return r.cache.stale(r.params(), t) }

// Polygon is a regular polygon inscribed in a circle of Radius centered at
// (Radius, Radius), with its first vertex pointing up. Fewer than three
// points produce no geometry.
type Polygon struct {
	Radius     float64
	PointCount int
	Style

	cache shapeCache[polygonParams]
}

type polygonParams struct {
	radius float64
	points int
	style  Style
}

// NewPolygon returns a polygon with the default style.
func NewPolygon(radius float64, points int) *Polygon {
	return &Polygon{Radius: radius, PointCount: points, Style: DefaultStyle()}
}

func (p *Polygon) params() polygonParams { return polygonParams{p.Radius, p.PointCount, p.Style} }
func (p *Polygon) Geometry() Geometry    { return p.cache.geom }
func (p *Polygon) Stale() bool           { return p.cache.stale(p.params(), nil) }
func (p *Polygon) zIndex() float64       { return p.ZIndex }
func (p *Polygon) Update(t *Tessellator) { p.cache.store(t.Shape(p), p.params(), t) }

func (p *Polygon) staleFor(t *Tessellator) bool { return p.cache.stale(p.params(), t) }

// Line is a segment from the local origin. Angle is in degrees measured
// clockwise from straight up. Lines have no fill; only their outline is
// drawn.
type Line struct {
	Length           float64
	Angle            float64
	OutlineThickness float64
	OutlineColor     Color
	ZIndex           float64

	cache shapeCache[lineParams]
}

type lineParams struct {
	length, angle, thickness float64
	color                    Color
}

// NewLine returns a black line one unit thick.
func NewLine(length, angle float64) *Line {
	return &Line{Length: length, Angle: angle, OutlineThickness: 1, OutlineColor: Black}
}

func (l *Line) params() lineParams {
	return lineParams{l.Length, l.Angle, l.OutlineThickness, l.OutlineColor}
}
func (l *Line) Geometry() Geometry    { return l.cache.geom }
func (l *Line) Stale() bool           { return l.cache.stale(l.params(), nil) }
func (l *Line) zIndex() float64       { return l.ZIndex }
func (l *Line) Update(t *Tessellator) { l.cache.store(t.Shape(l), l.params(), t) }

func (l *Line) staleFor(t *Tessellator) bool { return l.cache.stale(l.params(), t) }
