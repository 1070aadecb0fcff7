package raster

import (
	"image"
	"math"

	"raycast-renderer/internal/mathutil"
)

// PixelBuffer holds one color per pixel as a flat slice, row-major with row 0
// at the top. Its size is fixed at construction.
type PixelBuffer[T mathutil.Float] struct {
	Width  int
	Height int
	Pix    []mathutil.Vec[T] // len = W*H
}

func newPixelBuffer[T mathutil.Float](w, h int) *PixelBuffer[T] {
	return &PixelBuffer[T]{
		Width:  w,
		Height: h,
		Pix:    make([]mathutil.Vec[T], w*h),
	}
}

// Len is the number of pixels, Width*Height.
func (b *PixelBuffer[T]) Len() int {
	return len(b.Pix)
}

// At returns the color at column x, row y (y counted from the top).
func (b *PixelBuffer[T]) At(x, y int) mathutil.Vec[T] {
	return b.Pix[y*b.Width+x]
}

// Quantize maps a [0,1] component to a byte as floor(c*255.9), truncating
// rather than rounding. Out-of-range values clamp; NaN maps to 0.
func Quantize(c float64) uint8 {
	v := math.Floor(c * 255.9)
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ToNRGBA quantizes the buffer into an opaque image in the same scan order.
func (b *PixelBuffer[T]) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		j := i * 4
		img.Pix[j+0] = Quantize(float64(c.R()))
		img.Pix[j+1] = Quantize(float64(c.G()))
		img.Pix[j+2] = Quantize(float64(c.B()))
		img.Pix[j+3] = 255
	}
	return img
}
