package mathutil

// Ray is the half-line Origin + t*Direction. Direction need not be unit length.
type Ray[T Float] struct {
	Origin    Vec[T]
	Direction Vec[T]
}

func NewRay[T Float](origin, direction Vec[T]) Ray[T] {
	return Ray[T]{Origin: origin, Direction: direction}
}

// PointAt returns Origin + t*Direction. Negative t lies behind the origin.
func (r Ray[T]) PointAt(t T) Vec[T] {
	return r.Origin.Add(r.Direction.Scale(t))
}
