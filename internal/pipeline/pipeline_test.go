package pipeline

import (
	"encoding/json"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"raycast-renderer/internal/config"
	"raycast-renderer/internal/raster"
)

func resolved(t *testing.T, flags config.Flags) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Resolve(flags)
	return cfg
}

func TestRun_DefaultScene(t *testing.T) {
	for _, precision := range []int{32, 64} {
		cfg := resolved(t, config.Flags{Width: 40, Height: 20, Workers: 2, Precision: precision, Scale: 3})
		res, err := Run(cfg)
		if err != nil {
			t.Fatalf("precision %d: Run: %v", precision, err)
		}
		if b := res.Image.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
			t.Errorf("precision %d: image %v, want 120x60", precision, b)
		}
		if res.Width != 40 || res.Height != 20 || res.Precision != precision {
			t.Errorf("precision %d: result %+v", precision, res)
		}
		// Column 20, row 9 looks straight down -z into the sphere: normal (0,0,1).
		want := color.NRGBA{127, 127, 255, 255}
		if got := res.Image.NRGBAAt(20*3, 9*3); got != want {
			t.Errorf("precision %d: center pixel = %v, want %v", precision, got, want)
		}
	}
}

func TestRun_GradientOnly(t *testing.T) {
	cfg := resolved(t, config.Flags{Width: 40, Height: 20, Gradient: true})
	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Image.NRGBAAt(20, 9); got.R == 127 && got.G == 127 {
		t.Errorf("gradient-only render shows the sphere at the center: %v", got)
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := resolved(t, config.Flags{})
	cfg.Precision = 16
	if _, err := Run(cfg); err == nil {
		t.Error("precision 16 accepted")
	}

	cfg = resolved(t, config.Flags{})
	*cfg.Sphere.Radius = -1
	if _, err := Run(cfg); !errors.Is(err, raster.ErrInvalidSphere) {
		t.Errorf("negative radius error = %v, want ErrInvalidSphere", err)
	}

	// A bad sphere is ignored when it is not drawn.
	cfg.GradientOnly = true
	if _, err := Run(cfg); err != nil {
		t.Errorf("gradient-only with bad sphere: %v", err)
	}

	cfg = resolved(t, config.Flags{})
	*cfg.Camera.Vertical = *cfg.Camera.Horizontal
	if _, err := Run(cfg); !errors.Is(err, raster.ErrInvalidViewport) {
		t.Errorf("parallel spans error = %v, want ErrInvalidViewport", err)
	}

	cfg = resolved(t, config.Flags{})
	*cfg.Width = -5
	if _, err := Run(cfg); !errors.Is(err, raster.ErrInvalidViewport) {
		t.Errorf("negative width error = %v, want ErrInvalidViewport", err)
	}

	if _, err := Run(config.Config{Precision: 64, Scale: 1}); err == nil {
		t.Error("unresolved config accepted")
	}
}

func TestRun_ExplicitZerosFromFile(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"zero radius", `{"sphere": {"radius": 0}}`, raster.ErrInvalidSphere},
		{"zero size", `{"width": 0, "height": 0}`, raster.ErrInvalidViewport},
		{"zero height", `{"height": 0}`, raster.ErrInvalidViewport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			cfg.Resolve(config.Flags{})

			res, err := Run(cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Run error = %v, want %v", err, tt.want)
			}
			if res.Image != nil {
				t.Error("failed run returned an image")
			}
		})
	}
}

func TestRun_UVPattern(t *testing.T) {
	cfg := resolved(t, config.Flags{Pattern: "uv"})
	// The sphere is not drawn, so its radius is never checked.
	*cfg.Sphere.Radius = -1

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := res.Image.NRGBAAt(0, 0), (color.NRGBA{0, 253, 51, 255}); got != want {
		t.Errorf("top-left = %v, want %v", got, want)
	}
	if got, want := res.Image.NRGBAAt(199, 99), (color.NRGBA{254, 0, 51, 255}); got != want {
		t.Errorf("bottom-right = %v, want %v", got, want)
	}

	cfg.Pattern = "plaid"
	if _, err := Run(cfg); err == nil {
		t.Error("unknown pattern accepted")
	}
}

func TestBuildCamera(t *testing.T) {
	cam, err := BuildCamera[float64](config.Camera{})
	if err != nil {
		t.Fatalf("BuildCamera: %v", err)
	}
	if cam != raster.DefaultCamera[float64]() {
		t.Errorf("empty camera = %+v, want default", cam)
	}

	yawed, err := BuildCamera[float64](config.Camera{Yaw: 90})
	if err != nil {
		t.Fatalf("BuildCamera(yaw 90): %v", err)
	}
	if yawed == cam {
		t.Error("yaw 90 left the camera unchanged")
	}
}

func TestWriteManifest(t *testing.T) {
	cfg := resolved(t, config.Flags{Width: 8, Height: 4, Output: "frame.png", Scale: 2})
	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.json")
	if err := WriteManifest(path, NewManifest(cfg, res)); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if got.Image != "frame.png" || got.Width != 8 || got.Height != 4 || got.Scale != 2 || got.Precision != 64 {
		t.Errorf("manifest = %+v", got)
	}
	if got.Pattern != "scene" {
		t.Errorf("manifest pattern = %q, want scene", got.Pattern)
	}
	if got.Sphere == nil || got.Sphere.Radius == nil || *got.Sphere.Radius != 0.5 {
		t.Errorf("manifest sphere = %+v, want radius 0.5", got.Sphere)
	}
}
