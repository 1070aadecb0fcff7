package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"raycast-renderer/internal/config"
	"raycast-renderer/internal/pipeline"
	"raycast-renderer/internal/raster"
	"raycast-renderer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Image width in pixels (default: 200)")
	height := flag.Int("height", 0, "Image height in pixels (default: 100)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	precision := flag.Int("precision", 0, "Float precision, 32 or 64 (default: 64)")
	scale := flag.Int("scale", 0, "Window zoom factor (default: 4)")
	gradient := flag.Bool("gradient", false, "Render the sky gradient only, without the sphere")
	pattern := flag.String("pattern", "", "What to draw: scene or uv (default: scene)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// The window zooms instead of resampling the frame.
	zoom := *scale
	if zoom <= 0 {
		zoom = cfg.Scale
	}
	if zoom <= 0 {
		zoom = 4
	}
	cfg.Resolve(config.Flags{
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Precision: *precision,
		Gradient:  *gradient,
		Pattern:   *pattern,
	})
	cfg.Scale = 1

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	res, err := pipeline.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %dx%d (float%d) in %s; Esc closes the window\n",
		res.Width, res.Height, res.Precision, res.Elapsed)

	title := fmt.Sprintf("raycast %dx%d", res.Width, res.Height)
	if err := viewer.Run(res.Image, title, zoom); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
