package papercut

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Depth range of the orthographic projection. Shape z-indices must lie
// inside it to be visible.
const (
	NearPlane = -1
	FarPlane  = 10
)

// Camera holds the viewport size and the view and projection matrices.
// World space has its origin at the bottom-left corner of the viewport and
// y growing upward; screen space has y growing downward.
type Camera struct {
	width, height int
	view          mgl32.Mat4
	projection    mgl32.Mat4
}

// NewCamera returns a camera for a width×height viewport with an identity
// view.
func NewCamera(width, height int) (*Camera, error) {
	c := &Camera{view: mgl32.Ident4()}
	if err := c.Resize(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

// Resize recomputes the projection for a new viewport size.
func (c *Camera) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("papercut: resize to %dx%d: %w", width, height, ErrInvalidViewport)
	}
	c.width, c.height = width, height
	c.projection = OrthographicLH(0, float32(width), 0, float32(height), NearPlane, FarPlane)
	return nil
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return c.view
}

// SetView replaces the view matrix, for example to pan the camera.
func (c *Camera) SetView(m mgl32.Mat4) {
	c.view = m
}

// Projection returns the orthographic projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// ScreenToWorld converts a viewport-relative position (y down, pixels) to
// world coordinates by unprojecting through view⁻¹ · projection⁻¹.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	ndc := mgl32.Vec4{
		float32(p.X/float64(c.width))*2 - 1,
		-(float32(p.Y/float64(c.height))*2 - 1),
		1,
		1,
	}
	v := c.view.Inv().Mul4(c.projection.Inv()).Mul4x1(ndc)
	return V2(float64(v.X()), float64(v.Y()))
}

// WorldToScreen converts a world position to viewport-relative pixels with
// y growing downward.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	clip := c.projection.Mul4(c.view).Mul4x1(mgl32.Vec4{float32(p.X), float32(p.Y), 0, 1})
	x := (float64(clip.X()) + 1) / 2 * float64(c.width)
	y := (1 - float64(clip.Y())) / 2 * float64(c.height)
	return V2(x, y)
}

// OrthographicLH returns a left-handed orthographic projection mapping
// depth [near, far] to [0, 1].
func OrthographicLH(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	rd := 1 / (far - near)
	return mgl32.Mat4{
		2 * rw, 0, 0, 0,
		0, 2 * rh, 0, 0,
		0, 0, rd, 0,
		-(left + right) * rw, -(top + bottom) * rh, -near * rd, 1,
	}
}
