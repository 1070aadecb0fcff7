package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// WritePPM encodes img as plain-text PPM (P3): a "P3 <w> <h> 255" header,
// then one line per image row, top to bottom, of space-separated R G B
// triples, left to right.
func WritePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3 %d %d 255\n", b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("output: ppm header: %w", err)
	}

	line := make([]byte, 0, b.Dx()*12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line = line[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if x > b.Min.X {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("output: ppm row %d: %w", y-b.Min.Y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: ppm flush: %w", err)
	}
	return nil
}
