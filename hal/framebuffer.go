package hal

import "sync"

// MemoryFramebuffer is an RGB565 framebuffer backed by plain memory.
//
// The draw buffer belongs to the single render task; Present copies it into
// a presented front buffer under the lock, and that copy is what the host
// window and tests read through SnapshotRGB565. Cross-goroutine readers
// never touch the draw buffer, so the render task draws lock-free.
type MemoryFramebuffer struct {
	width  int
	height int
	stride int
	buf    []byte

	mu      sync.Mutex
	shown   []byte
	present func(buf []byte, w, h int) error
}

// NewMemoryFramebuffer allocates a framebuffer. present may be nil, in which
// case Present only refreshes the front buffer (the simulator snapshots it).
func NewMemoryFramebuffer(width, height int, present func(buf []byte, w, h int) error) *MemoryFramebuffer {
	stride := width * 2
	return &MemoryFramebuffer{
		width:   width,
		height:  height,
		stride:  stride,
		buf:     make([]byte, stride*height),
		shown:   make([]byte, stride*height),
		present: present,
	}
}

func (f *MemoryFramebuffer) Width() int          { return f.width }
func (f *MemoryFramebuffer) Height() int         { return f.height }
func (f *MemoryFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemoryFramebuffer) StrideBytes() int    { return f.stride }

// Buffer returns the draw buffer. Only the render task may touch it;
// everyone else reads completed frames via SnapshotRGB565.
func (f *MemoryFramebuffer) Buffer() []byte { return f.buf }

func (f *MemoryFramebuffer) Present() error {
	f.mu.Lock()
	copy(f.shown, f.buf)
	f.mu.Unlock()

	if f.present == nil {
		return nil
	}
	return f.present(f.buf, f.width, f.height)
}

func (f *MemoryFramebuffer) ClearRGB(r, g, b uint8) {
	p := rgb565(r, g, b)
	hi := byte(p >> 8)
	lo := byte(p)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = hi
		f.buf[i+1] = lo
	}
}

// SnapshotRGB565 copies the last presented frame. Draws that have not been
// presented yet are not visible here.
func (f *MemoryFramebuffer) SnapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.shown)
}
