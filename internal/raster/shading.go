package raster

import (
	"fmt"

	"raycast-renderer/internal/mathutil"
)

// HitEpsilon is the smallest accepted ray parameter. Roots at or below it
// are self-intersections or lie behind the camera.
const HitEpsilon = 1e-4

// Pattern selects what a Shader draws.
type Pattern int

const (
	PatternScene Pattern = iota // sphere and sky, one ray per pixel
	PatternUV                   // viewport coordinates as color, no rays cast
)

// ParsePattern maps a pattern name to a Pattern. The empty name is the scene.
func ParsePattern(name string) (Pattern, error) {
	switch name {
	case "", "scene":
		return PatternScene, nil
	case "uv":
		return PatternUV, nil
	}
	return 0, fmt.Errorf("raster: unknown pattern %q (want scene or uv)", name)
}

func (p Pattern) String() string {
	if p == PatternUV {
		return "uv"
	}
	return "scene"
}

// Shader colors a ray against a single optional sphere under a gradient sky.
type Shader[T mathutil.Float] struct {
	Pattern Pattern
	Sphere  *Sphere[T] // nil renders the sky alone
	Horizon mathutil.Vec[T]
	Zenith  mathutil.Vec[T]
}

// White and SkyBlue are the default gradient endpoints.
func White[T mathutil.Float]() mathutil.Vec[T]   { return mathutil.Splat[T](1) }
func SkyBlue[T mathutil.Float]() mathutil.Vec[T] { return mathutil.NewVec[T](0.5, 0.7, 1.0) }

// NewShader returns a shader with the default white-to-sky-blue gradient.
func NewShader[T mathutil.Float](sphere *Sphere[T]) Shader[T] {
	return Shader[T]{
		Sphere:  sphere,
		Horizon: White[T](),
		Zenith:  SkyBlue[T](),
	}
}

// Shade colors the viewport point (u, v), casting a ray through cam unless
// the shader draws the UV pattern.
func (sh Shader[T]) Shade(cam Camera[T], u, v T) (mathutil.Vec[T], error) {
	if sh.Pattern == PatternUV {
		return UVPattern(u, v), nil
	}
	return sh.Color(cam.RayAt(u, v))
}

// UVPattern is the calibration image: red follows u, green follows v, blue
// is fixed at 0.2.
func UVPattern[T mathutil.Float](u, v T) mathutil.Vec[T] {
	return mathutil.NewVec(u, v, 0.2)
}

// Color is a pure function of the ray. A sphere hit maps the unit normal
// from [-1,1] to [0,1] per component; a miss blends the sky by the height of
// the unit direction.
func (sh Shader[T]) Color(r mathutil.Ray[T]) (mathutil.Vec[T], error) {
	if sh.Sphere != nil {
		hit := sh.Sphere.IntersectRange(r, HitEpsilon, mathutil.Inf[T]())
		if hit.Hit {
			n, err := sh.Sphere.NormalAt(r.PointAt(hit.T))
			if err != nil {
				return mathutil.Vec[T]{}, err
			}
			return n.Add(mathutil.Splat[T](1)).Scale(0.5), nil
		}
	}
	return sh.Sky(r)
}

// Sky returns the background gradient for a ray, ignoring the sphere.
func (sh Shader[T]) Sky(r mathutil.Ray[T]) (mathutil.Vec[T], error) {
	u, err := r.Direction.Normalize()
	if err != nil {
		return mathutil.Vec[T]{}, fmt.Errorf("raster: sky direction: %w", err)
	}
	s := 0.5 * (u.Y() + 1)
	return mathutil.Lerp(sh.Horizon, sh.Zenith, s), nil
}
