package ledenc

import "math"

// gammaTable maps raw channel intensity to perceived brightness (γ = 2.2).
var gammaTable = makeGammaTable(2.2)

func makeGammaTable(g float64) (t [256]uint8) {
	for i := range t {
		t[i] = uint8(math.Pow(float64(i)/255.0, g)*255.0 + 0.5)
	}
	return t
}

// Gamma applies the correction lookup to one channel byte.
func Gamma(v uint8) uint8 { return gammaTable[v] }

// scale applies a 0..255 brightness multiplier. The +1 bias makes 255 an
// exact identity while keeping the operation a single shift.
func scale(v, brightness uint8) uint8 {
	return uint8(uint16(v) * (uint16(brightness) + 1) >> 8)
}
