package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction (the board status LED).
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Drawing into the buffer cannot fail; Present pushes the buffer to the
// panel and is the only fallible step.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// PulsePair is one encoded bit of a single-wire LED protocol: a high pulse
// immediately followed by a low pulse. A frame-terminating reset is a pair
// with High == 0.
type PulsePair struct {
	High time.Duration
	Low  time.Duration
}

// LEDChain accepts a precomputed pulse train for an addressable LED chain.
//
// Transmit blocks until the whole train has been shifted out.
type LEDChain interface {
	Transmit(pulses []PulsePair) error
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// Network reports the state of the platform network link (optional).
type Network interface {
	Connected() bool
}

// HAL provides the only contact point between the device logic and the
// outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Buttons() GPIO
	Chain() LEDChain
	Time() Time
	Network() Network
}
