package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"raycast-renderer/internal/config"
	"raycast-renderer/internal/output"
	"raycast-renderer/internal/pipeline"
	"raycast-renderer/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Image width in pixels (default: 200)")
	height := flag.Int("height", 0, "Image height in pixels (default: 100)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	precision := flag.Int("precision", 0, "Float precision, 32 or 64 (default: 64)")
	outPath := flag.String("output", "", "Output file .ppm/.png/.webp/.tga (default: PPM on stdout)")
	scale := flag.Int("scale", 0, "Integer upscale factor for the written image (default: 1)")
	gradient := flag.Bool("gradient", false, "Render the sky gradient only, without the sphere")
	pattern := flag.String("pattern", "", "What to draw: scene or uv (default: scene)")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the render to this path")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Precision: *precision,
		Output:    *outPath,
		Scale:     *scale,
		Gradient:  *gradient,
		Pattern:   *pattern,
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// The image owns stdout in PPM mode; the summary moves to stderr.
	var summary io.Writer = os.Stdout
	if cfg.ToStdout() {
		summary = os.Stderr
	}

	res, err := pipeline.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ToStdout() {
		err = output.WritePPM(os.Stdout, res.Image)
	} else {
		err = output.Save(cfg.Output, res.Image)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := res.Image.Bounds()
	fmt.Fprintf(summary, "Rendered %dx%d (float%d, %d workers) in %s\n",
		res.Width, res.Height, res.Precision, res.Workers, res.Elapsed.Round(time.Millisecond))
	if !cfg.ToStdout() {
		fmt.Fprintf(summary, "Output: %s (%dx%d)\n", cfg.Output, b.Dx(), b.Dy())
	}

	if *manifest != "" {
		if err := pipeline.WriteManifest(*manifest, pipeline.NewManifest(cfg, res)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Fprintf(summary, "Manifest: %s\n", *manifest)
		}
	}
}
