// Package viewer shows a rendered frame in a desktop window.
package viewer

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Run opens a window showing img scaled by an integer factor.
// It blocks until the window is closed or Escape is pressed.
func Run(img *image.NRGBA, title string, scale int) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("viewer: empty image")
	}
	if scale < 1 {
		scale = 1
	}

	g := &frameGame{img: img}
	b := img.Bounds()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx()*scale, b.Dy()*scale)
	ebiten.SetTPS(30)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type frameGame struct {
	img   *image.NRGBA
	frame *ebiten.Image
}

func (g *frameGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *frameGame) Draw(screen *ebiten.Image) {
	// The frame is static; upload it once.
	if g.frame == nil {
		b := g.img.Bounds()
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
		g.frame.WritePixels(nrgbaToPremultiplied(g.img))
	}
	screen.DrawImage(g.frame, nil)
}

func (g *frameGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.img.Bounds()
	return b.Dx(), b.Dy()
}

// nrgbaToPremultiplied packs img into the premultiplied RGBA byte
// layout WritePixels expects.
func nrgbaToPremultiplied(img *image.NRGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			a := uint16(row[i+3])
			out = append(out,
				uint8(uint16(row[i])*a/255),
				uint8(uint16(row[i+1])*a/255),
				uint8(uint16(row[i+2])*a/255),
				row[i+3])
		}
	}
	return out
}
