package papercut

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldMatrix composes the local-to-world matrix. Reading right to left, a
// local point is scaled, moved so the pivot sits at the origin, rotated by
// −Rotation, moved back, and finally translated by (Translation − Pivot):
//
//	T(t − p) · T(p) · Rz(−r) · T(−p) · S(sx, sy, 1)
//
// The z scale is 1 so the matrix stays invertible.
func (t Transform) WorldMatrix() mgl32.Mat4 {
	tx := float32(t.Translation.X - t.Pivot.X)
	ty := float32(t.Translation.Y - t.Pivot.Y)
	px, py := float32(t.Pivot.X), float32(t.Pivot.Y)

	return mgl32.Translate3D(tx, ty, 0).
		Mul4(mgl32.Translate3D(px, py, 0)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(-t.Rotation)))).
		Mul4(mgl32.Translate3D(-px, -py, 0)).
		Mul4(mgl32.Scale3D(float32(t.Scale.X), float32(t.Scale.Y), 1))
}

// InverseWorldMatrix returns the exact inverse of WorldMatrix. It fails with
// ErrSingularTransform when a scale component is zero.
func (t Transform) InverseWorldMatrix() (mgl32.Mat4, error) {
	m := t.WorldMatrix()
	if m.Det() == 0 {
		return mgl32.Mat4{}, fmt.Errorf("papercut: inverse of scale %v: %w", t.Scale, ErrSingularTransform)
	}
	return m.Inv(), nil
}

// transformPoint applies m to the point (p.X, p.Y, 0, 1).
func transformPoint(m mgl32.Mat4, p Vec2) Vec2 {
	v := m.Mul4x1(mgl32.Vec4{float32(p.X), float32(p.Y), 0, 1})
	return V2(float64(v.X()), float64(v.Y()))
}
