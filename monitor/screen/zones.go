// Package screen renders the menu screens into the panel framebuffer.
package screen

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Panel palette: black background with the green-tinted scheme of the
// shipped faceplate.
var (
	colorBG     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorText   = color.RGBA{R: 0xe8, G: 0xff, B: 0xe8, A: 0xff}
	colorBorder = color.RGBA{R: 0x40, G: 0x80, B: 0x40, A: 0xff}
	colorActive = color.RGBA{R: 0x28, G: 0x50, B: 0x28, A: 0xff}
)

// TextZone is static layout metadata for one rectangular screen region.
// Zones are defined once and shared read-only by all draw routines.
type TextZone struct {
	X      int16
	Y      int16
	W      int16
	H      int16
	Font   tinyfont.Fonter
	Border bool
}

// Zone indices into DefaultZones.
const (
	ZoneHeader = iota
	ZoneContent
	ZoneButton0
	ZoneButton1
	ZoneButton2
)

var defaultZones = [5]TextZone{
	{X: 5, Y: 5, W: 150, H: 18, Font: &proggy.TinySZ8pt7b, Border: true},
	{X: 5, Y: 28, W: 150, H: 55, Font: &proggy.TinySZ8pt7b, Border: true},
	{X: 5, Y: 88, W: 45, H: 35, Font: &tinyfont.Org01, Border: true},
	{X: 55, Y: 88, W: 45, H: 35, Font: &tinyfont.Org01, Border: true},
	{X: 105, Y: 88, W: 45, H: 35, Font: &tinyfont.Org01, Border: true},
}

// DefaultZones returns the fixed 160x128 layout: header, content, and three
// button labels along the bottom.
func DefaultZones() [5]TextZone { return defaultZones }

// Per-menu bottom-row labels.
var (
	labelsMain     = [3]string{"Menu", "Trip", "Set"}
	labelsTrip     = [3]string{"Back", "New", "View"}
	labelsSettings = [3]string{"Back", "Edit", "Save"}
)
