package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// Framebuffers store RGB565 big-endian, the byte order the panel expects,
// so Present can push the buffer without a swap pass.

// PutRGB565 writes one pixel into a big-endian RGB565 buffer.
func PutRGB565(buf []byte, off int, r, g, b uint8) {
	if off < 0 || off+1 >= len(buf) {
		return
	}
	p := rgb565(r, g, b)
	buf[off] = byte(p >> 8)
	buf[off+1] = byte(p)
}

// AtRGB565 reads one pixel back from a big-endian RGB565 buffer.
func AtRGB565(buf []byte, off int) (r, g, b uint8) {
	if off < 0 || off+1 >= len(buf) {
		return 0, 0, 0
	}
	return rgb888From565(uint16(buf[off])<<8 | uint16(buf[off+1]))
}
