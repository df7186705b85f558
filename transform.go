package papercut

// Transform places a shape in the world. Rotation is in degrees; positive
// values turn the shape clockwise on screen. Rotation and scale are applied
// around Pivot, expressed in the shape's local space.
//
// A zero scale component collapses the shape to a line or point. That is
// not an error, but such a transform has no inverse.
type Transform struct {
	Translation Vec2
	Rotation    float64
	Scale       Vec2
	Pivot       Vec2
}

// DefaultTransform returns the identity transform: no translation or
// rotation, unit scale, pivot at the local origin.
func DefaultTransform() Transform {
	return Transform{Scale: V2(1, 1)}
}

// FromPosition returns the default transform moved to (x, y).
func FromPosition(x, y float64) Transform {
	t := DefaultTransform()
	t.Translation = V2(x, y)
	return t
}

// Apply maps a local-space point to world space.
func (t Transform) Apply(p Vec2) Vec2 {
	return transformPoint(t.WorldMatrix(), p)
}

// ToLocal maps a world-space point back into the shape's local space,
// for picking and hit-testing.
func (t Transform) ToLocal(p Vec2) (Vec2, error) {
	inv, err := t.InverseWorldMatrix()
	if err != nil {
		return Vec2{}, err
	}
	return transformPoint(inv, p), nil
}
