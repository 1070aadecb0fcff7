package raster

import (
	"errors"
	"testing"

	"raycast-renderer/internal/mathutil"
)

func TestCamera_RayAt(t *testing.T) {
	cam := DefaultCamera[float64]()

	tests := []struct {
		name string
		u, v float64
		want mathutil.Vec3
	}{
		{"lower left", 0, 0, mathutil.NewVec(-2.0, -1, -1)},
		{"center", 0.5, 0.5, mathutil.NewVec(0, 0, -1.0)},
		{"upper right", 1, 1, mathutil.NewVec(2.0, 1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cam.RayAt(tt.u, tt.v)
			if r.Origin != cam.Origin {
				t.Errorf("origin = %v, want %v", r.Origin, cam.Origin)
			}
			if r.Direction != tt.want {
				t.Errorf("RayAt(%v, %v).Direction = %v, want %v", tt.u, tt.v, r.Direction, tt.want)
			}
		})
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	tests := []struct {
		name                            string
		lowerLeft, horizontal, vertical mathutil.Vec3
	}{
		{"parallel spans", mathutil.NewVec(-2.0, -1, -1), mathutil.NewVec(4.0, 0, 0), mathutil.NewVec(2.0, 0, 0)},
		{"zero vertical", mathutil.NewVec(-2.0, -1, -1), mathutil.NewVec(4.0, 0, 0), mathutil.Vec3{}},
		{"plane through zero direction", mathutil.NewVec(-2.0, -1, 0), mathutil.NewVec(4.0, 0, 0), mathutil.NewVec(0, 2.0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(mathutil.Vec3{}, tt.lowerLeft, tt.horizontal, tt.vertical)
			if !errors.Is(err, ErrInvalidViewport) {
				t.Errorf("NewCamera error = %v, want ErrInvalidViewport", err)
			}
		})
	}

	def := DefaultCamera[float64]()
	if _, err := NewCamera(def.Origin, def.LowerLeft, def.Horizontal, def.Vertical); err != nil {
		t.Errorf("default camera rejected: %v", err)
	}
}

func TestCamera_Rotated(t *testing.T) {
	cam := DefaultCamera[float64]()
	if got := cam.Rotated(0, 0); got != cam {
		t.Errorf("Rotated(0, 0) = %+v, want unchanged", got)
	}

	turned := cam.Rotated(90, 0)
	center := turned.RayAt(0.5, 0.5).Direction
	if want := mathutil.NewVec(-1.0, 0, 0); center.Sub(want).Len() > 1e-12 {
		t.Errorf("yaw 90 center direction = %v, want %v", center, want)
	}
	if err := turned.Validate(); err != nil {
		t.Errorf("rotated camera invalid: %v", err)
	}
}
