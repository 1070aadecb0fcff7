package raster

import (
	"errors"
	"fmt"

	"raycast-renderer/internal/mathutil"
)

// ErrInvalidViewport is returned for an empty image or a degenerate camera.
var ErrInvalidViewport = errors.New("raster: invalid viewport")

// Camera casts rays from Origin through a viewport spanned by Horizontal and
// Vertical from LowerLeft. The view direction for (u, v) is
// LowerLeft + u*Horizontal + v*Vertical.
type Camera[T mathutil.Float] struct {
	Origin     mathutil.Vec[T]
	LowerLeft  mathutil.Vec[T]
	Horizontal mathutil.Vec[T]
	Vertical   mathutil.Vec[T]
}

// NewCamera builds a camera and validates its viewport.
func NewCamera[T mathutil.Float](origin, lowerLeft, horizontal, vertical mathutil.Vec[T]) (Camera[T], error) {
	c := Camera[T]{
		Origin:     origin,
		LowerLeft:  lowerLeft,
		Horizontal: horizontal,
		Vertical:   vertical,
	}
	if err := c.Validate(); err != nil {
		return Camera[T]{}, err
	}
	return c, nil
}

// Validate checks that the span vectors are non-parallel and that the
// viewport plane does not contain the zero direction, otherwise some pixel
// would get a zero-length ray.
func (c Camera[T]) Validate() error {
	n := c.Horizontal.Cross(c.Vertical)
	if n.LenSq() == 0 {
		return fmt.Errorf("%w: horizontal %v and vertical %v span no area", ErrInvalidViewport, c.Horizontal, c.Vertical)
	}
	if c.LowerLeft.Dot(n) == 0 {
		return fmt.Errorf("%w: viewport plane through lower-left %v contains a zero direction", ErrInvalidViewport, c.LowerLeft)
	}
	return nil
}

// DefaultCamera is a 4×2 viewport one unit in front of the origin.
func DefaultCamera[T mathutil.Float]() Camera[T] {
	return Camera[T]{
		Origin:     mathutil.Vec[T]{},
		LowerLeft:  mathutil.NewVec[T](-2, -1, -1),
		Horizontal: mathutil.NewVec[T](4, 0, 0),
		Vertical:   mathutil.NewVec[T](0, 2, 0),
	}
}

// RayAt returns the view ray through viewport coordinates u, v in [0,1],
// v measured from the bottom edge.
func (c Camera[T]) RayAt(u, v T) mathutil.Ray[T] {
	dir := c.LowerLeft
	dir.AddAssign(c.Horizontal.Scale(u))
	dir.AddAssign(c.Vertical.Scale(v))
	return mathutil.NewRay(c.Origin, dir)
}

// Rotated turns the viewport by pitch around X, then yaw around Y (degrees).
// Zero angles return c unchanged.
func (c Camera[T]) Rotated(yawDeg, pitchDeg float64) Camera[T] {
	if yawDeg == 0 && pitchDeg == 0 {
		return c
	}
	m := mathutil.YawPitch(yawDeg, pitchDeg)
	rot := func(v mathutil.Vec[T]) mathutil.Vec[T] {
		return mathutil.Convert[T](m.MulVec3(mathutil.Convert[float64](v)))
	}
	c.LowerLeft = rot(c.LowerLeft)
	c.Horizontal = rot(c.Horizontal)
	c.Vertical = rot(c.Vertical)
	return c
}
