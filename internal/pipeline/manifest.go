package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"raycast-renderer/internal/config"
	"raycast-renderer/internal/raster"
)

// Manifest describes one written frame.
type Manifest struct {
	Image        string         `json:"image"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Scale        int            `json:"scale"`
	Precision    int            `json:"precision"`
	Workers      int            `json:"workers"`
	ElapsedMS    int64          `json:"elapsed_ms"`
	GradientOnly bool           `json:"gradient_only"`
	Pattern      string         `json:"pattern"`
	Camera       config.Camera  `json:"camera"`
	Sphere       *config.Sphere `json:"sphere,omitempty"`
}

// NewManifest records the settings and timing that produced res.
func NewManifest(cfg config.Config, res Result) Manifest {
	m := Manifest{
		Image:        cfg.Output,
		Width:        res.Width,
		Height:       res.Height,
		Scale:        cfg.Scale,
		Precision:    res.Precision,
		Workers:      res.Workers,
		ElapsedMS:    res.Elapsed.Milliseconds(),
		GradientOnly: cfg.GradientOnly,
		Pattern:      cfg.Pattern,
		Camera:       cfg.Camera,
	}
	if m.Pattern == "" {
		m.Pattern = raster.PatternScene.String()
	}
	if !cfg.GradientOnly && m.Pattern == raster.PatternScene.String() {
		m.Sphere = cfg.Sphere
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("pipeline: manifest: %w", err)
	}
	return nil
}
