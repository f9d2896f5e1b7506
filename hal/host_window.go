//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"izzymon/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the panel framebuffer and
// maps keys 1..6 to the front buttons (held key = held button). It blocks
// until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	s := NewSim()
	step := newApp(s)

	g := &simGame{s: s, step: step}
	ebiten.SetWindowTitle("izzymon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(s.fb.Width()*3, s.fb.Height()*3)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

var buttonKeys = [SimButtonCount]ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
}

type simGame struct {
	s       *Sim
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *simGame) Update() error {
	for i, key := range buttonKeys {
		g.s.PressButton(i, ebiten.IsKeyPressed(key))
	}
	g.s.t.advance()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	fb := g.s.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.Width() || g.img.Bounds().Dy() != fb.Height() {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
		g.scratch = make([]byte, len(fb.Buffer()))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width(), fb.Height())
	}

	fb.SnapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i])<<8 | uint16(src[i+1]))
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.s.fb.Width(), g.s.fb.Height()
}
