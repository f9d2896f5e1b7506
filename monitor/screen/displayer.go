package screen

import (
	"image/color"

	"tinygo.org/x/drivers"

	"izzymon/hal"
)

// Surface is the drawing collaborator the screen routines need: a pixel
// Displayer that can also fill rectangles. Display pushes the frame out and
// is the fallible step.
type Surface interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// fbSurface adapts a hal.Framebuffer to Surface.
type fbSurface struct {
	fb hal.Framebuffer
}

// NewSurface wraps a framebuffer. Returns nil for a nil or non-RGB565
// framebuffer.
func NewSurface(fb hal.Framebuffer) Surface {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return &fbSurface{fb: fb}
}

func (d *fbSurface) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbSurface) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	hal.PutRGB565(buf, iy*d.fb.StrideBytes()+ix*2, c.R, c.G, c.B)
}

func (d *fbSurface) Display() error {
	return d.fb.Present()
}

func (d *fbSurface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			hal.PutRGB565(buf, row+px*2, c.R, c.G, c.B)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// strokeRectangle draws a 1px rectangle outline.
func strokeRectangle(d Surface, x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := d.FillRectangle(x, y, width, 1, c); err != nil {
		return err
	}
	if err := d.FillRectangle(x, y+height-1, width, 1, c); err != nil {
		return err
	}
	if err := d.FillRectangle(x, y, 1, height, c); err != nil {
		return err
	}
	return d.FillRectangle(x+width-1, y, 1, height, c)
}
