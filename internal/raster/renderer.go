package raster

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"raycast-renderer/internal/mathutil"
)

// Options sizes a render. Workers <= 0 means runtime.NumCPU().
type Options struct {
	Width   int
	Height  int
	Workers int
}

// Render casts one ray per pixel through cam and shades it with sh.
//
// Pixel (x, row) with row counted from the top samples u = x/Width and
// v = (Height-1-row)/Height, so both lie in [0,1) and the top row looks
// highest. Rows are independent; workers pull row indices from a channel and
// each writes only its own rows, so the buffer needs no locking and the
// result does not depend on the worker count.
//
// Inputs are validated before any pixel is computed. A render either returns
// a complete buffer or an error, never a partial image.
func Render[T mathutil.Float](cam Camera[T], sh Shader[T], opts Options) (*PixelBuffer[T], error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > math.MaxInt/opts.Height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, opts.Width, opts.Height)
	}
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	if sh.Sphere != nil {
		if err := sh.Sphere.Validate(); err != nil {
			return nil, err
		}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Height {
		workers = opts.Height
	}

	log := Logger()
	log.Debug("render start", "width", opts.Width, "height", opts.Height, "workers", workers)
	start := time.Now()

	buf := newPixelBuffer[T](opts.Width, opts.Height)
	rowErrs := make([]error, opts.Height)
	var rowsDone atomic.Int64

	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowChan {
				rowErrs[row] = renderRow(buf, cam, sh, row)
				rowsDone.Add(1)
			}
		}()
	}

	for row := 0; row < opts.Height; row++ {
		rowChan <- row
	}
	close(rowChan)

	wg.Wait()

	if err := errors.Join(rowErrs...); err != nil {
		return nil, fmt.Errorf("raster: render: %w", err)
	}

	log.Debug("render done", "rows", rowsDone.Load(), "pixels", buf.Len(), "elapsed", time.Since(start))
	return buf, nil
}

func renderRow[T mathutil.Float](buf *PixelBuffer[T], cam Camera[T], sh Shader[T], row int) error {
	w, h := T(buf.Width), T(buf.Height)
	v := T(buf.Height-1-row) / h
	off := row * buf.Width
	for x := 0; x < buf.Width; x++ {
		c, err := sh.Shade(cam, T(x)/w, v)
		if err != nil {
			return fmt.Errorf("pixel (%d, %d): %w", x, row, err)
		}
		buf.Pix[off+x] = c
	}
	return nil
}
