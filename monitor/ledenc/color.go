// Package ledenc encodes logical RGB colors into the timed pulse train of a
// single-wire addressable LED chain (WS2812B-class parts).
package ledenc

// RGB is one LED color. The wire order (GRB) is an encoding detail and does
// not leak into this type.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Device palette.
var (
	Off      = RGB{}
	White    = RGB{R: 255, G: 255, B: 255}
	Red      = RGB{R: 255}
	Green    = RGB{G: 255}
	Blue     = RGB{B: 255}
	DimBlue  = RGB{B: 32}
	DimWhite = RGB{R: 32, G: 32, B: 32}
)
