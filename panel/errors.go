package panel

import "errors"

var (
	// ErrOutOfRange reports coordinates outside the current panel bounds.
	// The operation had no effect on the grid.
	ErrOutOfRange = errors.New("panel: coordinates out of range")

	// ErrSizeMismatch reports content and color blocks of different shapes
	// passed to a single blit. The operation had no effect.
	ErrSizeMismatch = errors.New("panel: block dimensions mismatch")

	// ErrUpdateRate reports an update rate outside the accepted
	// 10ms-10s window. The previous rate stays in effect.
	ErrUpdateRate = errors.New("panel: update rate out of bounds")

	// ErrLockTimeout reports a lock acquisition that exceeded its bound.
	// The workers treat this as fatal; callers receive it as an error.
	ErrLockTimeout = errors.New("panel: lock acquisition timed out")
)
