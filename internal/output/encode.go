package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrUnknownFormat is returned for an output extension with no encoder.
var ErrUnknownFormat = errors.New("output: unknown image format")

// Format selects an image encoder.
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// ParseFormat maps a file name or bare extension (".webp", "webp") to a Format.
func ParseFormat(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = name
	}
	switch f := Format(strings.ToLower(strings.TrimPrefix(ext, "."))); f {
	case PPM, PNG, WebP, TGA:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PPM:
		return WritePPM(w, img)
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("output: %s encode: %w", f, err)
	}
	return nil
}

// Save encodes img to path, picking the format from the extension and
// creating parent directories as needed.
func Save(path string, img image.Image) error {
	f, err := ParseFormat(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}
