package papercut

import "errors"

var (
	// ErrCapacityExceeded is returned when a frame needs more vertices than
	// a 16-bit index can address. The frame is dropped; indices are never
	// wrapped.
	ErrCapacityExceeded = errors.New("papercut: frame vertex capacity exceeded")

	// ErrInvalidViewport is returned for non-positive viewport dimensions.
	ErrInvalidViewport = errors.New("papercut: invalid viewport size")

	// ErrFrameSkipped is returned by a FrameRenderer that could not present
	// this frame, for example because the surface is not available yet.
	// The engine treats it as a normal outcome.
	ErrFrameSkipped = errors.New("papercut: frame skipped")

	// ErrNilRenderer is returned when an engine is created without a renderer.
	ErrNilRenderer = errors.New("papercut: nil frame renderer")

	// ErrNilCamera is returned when a frame is built without a camera.
	ErrNilCamera = errors.New("papercut: nil camera")

	// ErrNilGame is returned when an engine is created without a game.
	ErrNilGame = errors.New("papercut: nil game")

	// ErrSingularTransform is returned when a transform with a zero scale
	// component is inverted.
	ErrSingularTransform = errors.New("papercut: transform is not invertible")
)
