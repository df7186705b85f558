package papercut

import "github.com/gogpu/papercut/internal/stroke"

// LineCap specifies the shape of open outline endpoints (Line shapes).
type LineCap int

const (
	// LineCapButt ends the outline exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle of radius thickness/2.
	LineCapRound
	// LineCapSquare extends the outline thickness/2 beyond the endpoint.
	LineCapSquare
)

// LineJoin specifies the shape of outline corners.
type LineJoin int

const (
	// LineJoinMiter is a sharp corner, limited by MiterLimit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound is a circular arc.
	LineJoinRound
	// LineJoinBevel is a straight cut across the corner.
	LineJoinBevel
)

// StrokeStyle controls how outlines are built. The outline width comes
// from each shape's outline thickness and is always centered on the
// boundary.
type StrokeStyle struct {
	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of corners. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the miter length to thickness ratio above which a miter
	// join becomes a bevel. Default: 4.0
	MiterLimit float64
}

// DefaultStrokeStyle returns butt caps and miter joins limited to 4.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// WithCap returns a copy of the style with the given cap.
func (s StrokeStyle) WithCap(lineCap LineCap) StrokeStyle {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the style with the given join.
func (s StrokeStyle) WithJoin(join LineJoin) StrokeStyle {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the style with the given miter limit.
// A value of 1.0 effectively disables miter joins.
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// RoundStrokeStyle returns round caps and round joins.
func RoundStrokeStyle() StrokeStyle {
	return DefaultStrokeStyle().WithCap(LineCapRound).WithJoin(LineJoinRound)
}

func (s StrokeStyle) expander(width float64) stroke.Stroke {
	return stroke.Stroke{
		Width:      width,
		Cap:        stroke.LineCap(s.Cap),
		Join:       stroke.LineJoin(s.Join),
		MiterLimit: s.MiterLimit,
	}
}
