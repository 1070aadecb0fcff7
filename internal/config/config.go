package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"raycast-renderer/internal/raster"
)

// Config holds the scene, camera and output settings of one render.
type Config struct {
	// Viewport. Size is a pointer so an explicit 0 is kept and rejected.
	Width     *int `json:"width"`
	Height    *int `json:"height"`
	Workers   int  `json:"workers"`
	Precision int  `json:"precision"` // 32 or 64 bit floats

	// Output
	Output string `json:"output"` // file path; empty or "-" writes PPM to stdout
	Scale  int    `json:"scale"`  // integer upscale of the written image

	Camera       Camera  `json:"camera"`
	Sphere       *Sphere `json:"sphere"`
	GradientOnly bool    `json:"gradient_only"` // render the sky without the sphere
	Pattern      string  `json:"pattern"`       // "scene" (default) or "uv"
}

// Camera places the viewport. Vectors are [x, y, z]; angles are degrees.
type Camera struct {
	Origin     *[3]float64 `json:"origin"`
	LowerLeft  *[3]float64 `json:"lower_left"`
	Horizontal *[3]float64 `json:"horizontal"`
	Vertical   *[3]float64 `json:"vertical"`
	Yaw        float64     `json:"yaw"`
	Pitch      float64     `json:"pitch"`
}

// Sphere is the single scene object.
type Sphere struct {
	Center *[3]float64 `json:"center"`
	Radius *float64    `json:"radius"`
}

// Defaults for fields left empty by both the file and the flags.
var (
	DefaultOrigin     = [3]float64{0, 0, 0}
	DefaultLowerLeft  = [3]float64{-2, -1, -1}
	DefaultHorizontal = [3]float64{4, 0, 0}
	DefaultVertical   = [3]float64{0, 2, 0}
	DefaultCenter     = [3]float64{0, 0, -1}
)

const (
	DefaultWidth  = 200
	DefaultHeight = 100
	DefaultRadius = 0.5
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width     int
	Height    int
	Workers   int
	Precision int
	Output    string
	Scale     int
	Gradient  bool
	Pattern   string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = &flags.Width
	}
	if flags.Height > 0 {
		c.Height = &flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Precision > 0 {
		c.Precision = flags.Precision
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Gradient {
		c.GradientOnly = true
	}
	if flags.Pattern != "" {
		c.Pattern = flags.Pattern
	}

	// Defaults fill only missing fields. A size or radius given as 0 stays,
	// so the renderer rejects it.
	if c.Width == nil {
		c.Width = intPtr(DefaultWidth)
	}
	if c.Height == nil {
		c.Height = intPtr(DefaultHeight)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Precision == 0 {
		c.Precision = 64
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}

	c.Camera.Origin = orDefault(c.Camera.Origin, DefaultOrigin)
	c.Camera.LowerLeft = orDefault(c.Camera.LowerLeft, DefaultLowerLeft)
	c.Camera.Horizontal = orDefault(c.Camera.Horizontal, DefaultHorizontal)
	c.Camera.Vertical = orDefault(c.Camera.Vertical, DefaultVertical)

	if c.Sphere == nil {
		c.Sphere = &Sphere{}
	}
	c.Sphere.Center = orDefault(c.Sphere.Center, DefaultCenter)
	if c.Sphere.Radius == nil {
		r := DefaultRadius
		c.Sphere.Radius = &r
	}
}

func intPtr(v int) *int { return &v }

func orDefault(v *[3]float64, def [3]float64) *[3]float64 {
	if v != nil {
		return v
	}
	d := def
	return &d
}

// Validate checks the settings that only the command layer interprets.
// Size and geometry are validated by the renderer itself.
func (c *Config) Validate() error {
	if c.Precision != 32 && c.Precision != 64 {
		return fmt.Errorf("config: precision must be 32 or 64, got %d", c.Precision)
	}
	if c.Scale < 1 {
		return fmt.Errorf("config: scale must be at least 1, got %d", c.Scale)
	}
	if _, err := raster.ParsePattern(c.Pattern); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ToStdout reports whether the image goes to standard output as PPM.
func (c *Config) ToStdout() bool {
	return c.Output == "" || c.Output == "-"
}
