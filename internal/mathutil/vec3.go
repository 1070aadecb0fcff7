package mathutil

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
)

// ErrDivisionByZero is returned when normalizing a zero-length vector.
var ErrDivisionByZero = errors.New("mathutil: division by zero")

// Float is the element type of a vector.
type Float interface {
	~float32 | ~float64
}

// Vec is a 3-component vector (value type, stack-allocated).
// Components are x, y, z, or r, g, b when the vector holds a color.
type Vec[T Float] [3]T

// Vec3 is the double-precision vector used by the renderer by default.
type Vec3 = Vec[float64]

// Vec3f is the single-precision vector.
type Vec3f = Vec[float32]

// NewVec builds a vector from its components.
func NewVec[T Float](x, y, z T) Vec[T] {
	return Vec[T]{x, y, z}
}

// Splat returns a vector with all components set to s.
func Splat[T Float](s T) Vec[T] {
	return Vec[T]{s, s, s}
}

func (v Vec[T]) X() T { return v[0] }
func (v Vec[T]) Y() T { return v[1] }
func (v Vec[T]) Z() T { return v[2] }

func (v Vec[T]) R() T { return v[0] }
func (v Vec[T]) G() T { return v[1] }
func (v Vec[T]) B() T { return v[2] }

func (a Vec[T]) Add(b Vec[T]) Vec[T] {
	return Vec[T]{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec[T]) Sub(b Vec[T]) Vec[T] {
	return Vec[T]{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec[T]) Neg() Vec[T] {
	return Vec[T]{-v[0], -v[1], -v[2]}
}

// Mul multiplies componentwise.
func (a Vec[T]) Mul(b Vec[T]) Vec[T] {
	return Vec[T]{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Div divides componentwise. Zero components of b follow IEEE rules.
func (a Vec[T]) Div(b Vec[T]) Vec[T] {
	return Vec[T]{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

func (v Vec[T]) Scale(s T) Vec[T] {
	return Vec[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Quo divides every component by s.
func (v Vec[T]) Quo(s T) Vec[T] {
	return Vec[T]{v[0] / s, v[1] / s, v[2] / s}
}

// ScalarMul is s*v, the scalar-on-left form of Scale.
func ScalarMul[T Float](s T, v Vec[T]) Vec[T] {
	return Vec[T]{s * v[0], s * v[1], s * v[2]}
}

// ScalarDiv is s/v applied to each component.
func ScalarDiv[T Float](s T, v Vec[T]) Vec[T] {
	return Vec[T]{s / v[0], s / v[1], s / v[2]}
}

func (a Vec[T]) Dot(b Vec[T]) T {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec[T]) Cross(b Vec[T]) Vec[T] {
	return Vec[T]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// LenSq is the squared length; use it for comparisons to skip the sqrt.
func (v Vec[T]) LenSq() T {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v Vec[T]) Len() T {
	return Sqrt(v.LenSq())
}

// Normalize returns v scaled to unit length.
// A zero vector yields ErrDivisionByZero instead of NaN components.
func (v Vec[T]) Normalize() (Vec[T], error) {
	l := v.Len()
	if l == 0 {
		return Vec[T]{}, ErrDivisionByZero
	}
	return Vec[T]{v[0] / l, v[1] / l, v[2] / l}, nil
}

// In-place variants. Each leaves *a equal to the matching pure operation.

func (a *Vec[T]) AddAssign(b Vec[T]) {
	a[0] += b[0]
	a[1] += b[1]
	a[2] += b[2]
}

func (a *Vec[T]) SubAssign(b Vec[T]) {
	a[0] -= b[0]
	a[1] -= b[1]
	a[2] -= b[2]
}

func (a *Vec[T]) MulAssign(b Vec[T]) {
	a[0] *= b[0]
	a[1] *= b[1]
	a[2] *= b[2]
}

func (a *Vec[T]) DivAssign(b Vec[T]) {
	a[0] /= b[0]
	a[1] /= b[1]
	a[2] /= b[2]
}

func (a *Vec[T]) ScaleAssign(s T) {
	a[0] *= s
	a[1] *= s
	a[2] *= s
}

// Lerp returns (1-t)*a + t*b.
func Lerp[T Float](a, b Vec[T], t T) Vec[T] {
	out := a.Scale(1 - t)
	out.AddAssign(b.Scale(t))
	return out
}

// Convert changes the precision of a vector.
func Convert[U, T Float](v Vec[T]) Vec[U] {
	return Vec[U]{U(v[0]), U(v[1]), U(v[2])}
}

// Sqrt dispatches to math32 for single precision so float32 vectors never
// round-trip through float64.
func Sqrt[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Sqrt(f))
	}
	return T(math.Sqrt(float64(x)))
}

// Inf returns positive infinity in the element type.
func Inf[T Float]() T {
	return T(math.Inf(1))
}
