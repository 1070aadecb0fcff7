package raster

import (
	"errors"
	"fmt"

	"raycast-renderer/internal/mathutil"
)

// ErrInvalidSphere is returned for a sphere whose radius is not positive.
var ErrInvalidSphere = errors.New("raster: invalid sphere")

// Sphere is an intersection-test input: a center and a radius > 0.
type Sphere[T mathutil.Float] struct {
	Center mathutil.Vec[T]
	Radius T
}

// NewSphere validates the radius so a degenerate quadratic never reaches
// the renderer.
func NewSphere[T mathutil.Float](center mathutil.Vec[T], radius T) (Sphere[T], error) {
	s := Sphere[T]{Center: center, Radius: radius}
	if err := s.Validate(); err != nil {
		return Sphere[T]{}, err
	}
	return s, nil
}

// Validate rejects NaN and non-positive radii.
func (s Sphere[T]) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidSphere, s.Radius)
	}
	return nil
}

// Intersection is the outcome of a ray/sphere test. The zero value is a miss.
type Intersection[T mathutil.Float] struct {
	Hit bool
	T   T // nearer root (or the accepted root for IntersectRange)
	Far T // farther root; equals T for a tangent ray
}

// Discriminant returns b²-4ac of |O + tD - C|² = r².
// Its sign alone answers hit (>= 0) or miss (< 0).
func (s Sphere[T]) Discriminant(r mathutil.Ray[T]) T {
	_, _, _, disc := s.coefficients(r)
	return disc
}

func (s Sphere[T]) coefficients(r mathutil.Ray[T]) (a, b, c, disc T) {
	oc := r.Origin.Sub(s.Center)
	a = r.Direction.Dot(r.Direction)
	b = 2 * oc.Dot(r.Direction)
	c = oc.Dot(oc) - s.Radius*s.Radius
	return a, b, c, b*b - 4*a*c
}

// Intersect solves for both roots and reports the nearer one, unclipped:
// a root behind the ray origin is still a hit.
func (s Sphere[T]) Intersect(r mathutil.Ray[T]) Intersection[T] {
	a, b, _, disc := s.coefficients(r)
	if disc < 0 || a == 0 {
		return Intersection[T]{}
	}
	sq := mathutil.Sqrt(disc)
	return Intersection[T]{
		Hit: true,
		T:   (-b - sq) / (2 * a),
		Far: (-b + sq) / (2 * a),
	}
}

// IntersectRange returns the nearest root strictly inside (tMin, tMax),
// trying the far root when the near one is out of range. Renderers call it
// with a small positive tMin to drop self-hits and hits behind the camera.
func (s Sphere[T]) IntersectRange(r mathutil.Ray[T], tMin, tMax T) Intersection[T] {
	hit := s.Intersect(r)
	if !hit.Hit {
		return hit
	}
	if hit.T > tMin && hit.T < tMax {
		return hit
	}
	if hit.Far > tMin && hit.Far < tMax {
		hit.T = hit.Far
		return hit
	}
	return Intersection[T]{}
}

// NormalAt returns the outward unit normal at surface point p.
func (s Sphere[T]) NormalAt(p mathutil.Vec[T]) (mathutil.Vec[T], error) {
	n, err := p.Sub(s.Center).Normalize()
	if err != nil {
		return n, fmt.Errorf("raster: normal at %v: %w", p, err)
	}
	return n, nil
}
