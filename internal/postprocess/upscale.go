package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// so every source pixel becomes a hard-edged factor×factor block. factor <= 1
// returns img unchanged.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
