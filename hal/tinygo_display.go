//go:build tinygo

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/st7735"
)

const (
	panelWidth  = 160
	panelHeight = 128
)

// newBoardDisplay brings up the ST7735 over SPI0 and returns a framebuffer
// whose Present blits the whole panel.
func newBoardDisplay() (Framebuffer, error) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		Frequency: 27_000_000,
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
		Mode:      0,
	})
	if err != nil {
		return nil, errors.New("display: spi: " + err.Error())
	}

	pinBacklight.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinBacklight.High()

	dev := st7735.New(spi, pinLCDRST, pinLCDDC, pinLCDCS, pinBacklight)
	dev.Configure(st7735.Config{
		Rotation: st7735.ROTATION_90,
		Width:    panelWidth,
		Height:   panelHeight,
	})

	w, h := dev.Size()
	if w == 0 || h == 0 {
		return nil, errors.New("display: panel reported zero size")
	}

	fb := NewMemoryFramebuffer(int(w), int(h), func(buf []byte, fw, fh int) error {
		return dev.DrawRGBBitmap8(0, 0, buf, int16(fw), int16(fh))
	})
	return fb, nil
}
