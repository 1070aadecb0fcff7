package pipeline

import (
	"errors"
	"fmt"
	"image"
	"time"

	"raycast-renderer/internal/config"
	"raycast-renderer/internal/mathutil"
	"raycast-renderer/internal/postprocess"
	"raycast-renderer/internal/raster"
)

// Result holds the outcome of one frame.
type Result struct {
	Image     *image.NRGBA // quantized and upscaled
	Width     int          // render size before upscaling
	Height    int
	Precision int
	Workers   int
	Elapsed   time.Duration
}

// Run renders the frame described by a resolved config.
func Run(cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.Width == nil || cfg.Height == nil {
		return Result{}, errors.New("pipeline: config size not resolved")
	}

	start := time.Now()

	var (
		img *image.NRGBA
		err error
	)
	switch cfg.Precision {
	case 32:
		img, err = renderFrame[float32](cfg)
	default:
		img, err = renderFrame[float64](cfg)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Image:     postprocess.Upscale(img, cfg.Scale),
		Width:     *cfg.Width,
		Height:    *cfg.Height,
		Precision: cfg.Precision,
		Workers:   cfg.Workers,
		Elapsed:   time.Since(start),
	}, nil
}

func renderFrame[T mathutil.Float](cfg config.Config) (*image.NRGBA, error) {
	pattern, err := raster.ParsePattern(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	cam, err := BuildCamera[T](cfg.Camera)
	if err != nil {
		return nil, err
	}

	// The UV pattern and the gradient-only sky never look at the sphere.
	var sphere *raster.Sphere[T]
	if pattern == raster.PatternScene && !cfg.GradientOnly && cfg.Sphere != nil {
		s, err := BuildSphere[T](*cfg.Sphere)
		if err != nil {
			return nil, err
		}
		sphere = &s
	}
	sh := raster.NewShader(sphere)
	sh.Pattern = pattern

	buf, err := raster.Render(cam, sh, raster.Options{
		Width:   *cfg.Width,
		Height:  *cfg.Height,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	return buf.ToNRGBA(), nil
}

// BuildCamera converts the configured camera, applying yaw and pitch.
// Unset vectors fall back to the default camera.
func BuildCamera[T mathutil.Float](c config.Camera) (raster.Camera[T], error) {
	def := raster.DefaultCamera[T]()
	cam, err := raster.NewCamera(
		vecOr(c.Origin, def.Origin),
		vecOr(c.LowerLeft, def.LowerLeft),
		vecOr(c.Horizontal, def.Horizontal),
		vecOr(c.Vertical, def.Vertical),
	)
	if err != nil {
		return raster.Camera[T]{}, fmt.Errorf("pipeline: camera: %w", err)
	}
	return cam.Rotated(c.Yaw, c.Pitch), nil
}

// BuildSphere converts the configured sphere. A missing center or radius
// takes the default; an explicit radius is passed through for validation.
func BuildSphere[T mathutil.Float](s config.Sphere) (raster.Sphere[T], error) {
	center := vec[T](config.DefaultCenter)
	if s.Center != nil {
		center = vec[T](*s.Center)
	}
	radius := T(config.DefaultRadius)
	if s.Radius != nil {
		radius = T(*s.Radius)
	}
	sphere, err := raster.NewSphere(center, radius)
	if err != nil {
		return raster.Sphere[T]{}, fmt.Errorf("pipeline: sphere: %w", err)
	}
	return sphere, nil
}

func vec[T mathutil.Float](a [3]float64) mathutil.Vec[T] {
	return mathutil.NewVec(T(a[0]), T(a[1]), T(a[2]))
}

func vecOr[T mathutil.Float](a *[3]float64, def mathutil.Vec[T]) mathutil.Vec[T] {
	if a == nil {
		return def
	}
	return vec[T](*a)
}
