package ledenc

import (
	"fmt"
	"time"

	"izzymon/hal"
)

// Timings is one hardware calibration of the chain protocol. The values
// differ between chip batches, so they are configuration, not constants.
type Timings struct {
	T0H   time.Duration // 0-bit high pulse
	T0L   time.Duration // 0-bit low pulse
	T1H   time.Duration // 1-bit high pulse
	T1L   time.Duration // 1-bit low pulse
	Reset time.Duration // trailing low; the chain latches after it
}

// TimingsDefault is the calibration the shipped units use.
var TimingsDefault = Timings{
	T0H:   350 * time.Nanosecond,
	T0L:   900 * time.Nanosecond,
	T1H:   900 * time.Nanosecond,
	T1L:   350 * time.Nanosecond,
	Reset: 50 * time.Microsecond,
}

// TimingsAlt matches the earlier pre-production boards.
var TimingsAlt = Timings{
	T0H:   400 * time.Nanosecond,
	T0L:   850 * time.Nanosecond,
	T1H:   800 * time.Nanosecond,
	T1L:   450 * time.Nanosecond,
	Reset: 50 * time.Microsecond,
}

func (t Timings) validate() error {
	if t.T0H <= 0 || t.T0L <= 0 || t.T1H <= 0 || t.T1L <= 0 {
		return fmt.Errorf("ledenc: bit pulse durations must be positive: %+v", t)
	}
	if t.Reset <= 0 {
		return fmt.Errorf("ledenc: reset duration must be positive: %v", t.Reset)
	}
	return nil
}

// PulseCount returns the pulse-pair buffer size one frame needs: 24 bit
// pairs per LED plus the reset pair.
func PulseCount(chainLen int) int { return chainLen*24 + 1 }

// Encoder turns an RGB frame into a pulse train. Encoding is deterministic
// and performs no I/O; the only failure modes are construction-time
// contract violations and a frame of the wrong length.
type Encoder struct {
	timings    Timings
	chainLen   int
	brightness uint8
	buf        []hal.PulsePair
}

// New creates an encoder for a chain of chainLen LEDs with its own buffer.
func New(chainLen int, timings Timings) (*Encoder, error) {
	if chainLen <= 0 {
		return nil, fmt.Errorf("ledenc: invalid chain length %d", chainLen)
	}
	return NewWithBuffer(make([]hal.PulsePair, 0, PulseCount(chainLen)), chainLen, timings)
}

// NewWithBuffer creates an encoder over a caller-owned buffer. An undersized
// buffer is a configuration error and is rejected here, never per frame.
func NewWithBuffer(buf []hal.PulsePair, chainLen int, timings Timings) (*Encoder, error) {
	if chainLen <= 0 {
		return nil, fmt.Errorf("ledenc: invalid chain length %d", chainLen)
	}
	if cap(buf) < PulseCount(chainLen) {
		return nil, fmt.Errorf("ledenc: pulse buffer holds %d pairs, frame needs %d", cap(buf), PulseCount(chainLen))
	}
	if err := timings.validate(); err != nil {
		return nil, err
	}
	return &Encoder{
		timings:    timings,
		chainLen:   chainLen,
		brightness: 255,
		buf:        buf[:0],
	}, nil
}

// SetBrightness sets the global 0..255 scale applied before bit-splitting.
func (e *Encoder) SetBrightness(b uint8) { e.brightness = b }

// Brightness returns the current global scale.
func (e *Encoder) Brightness() uint8 { return e.brightness }

// ChainLen returns the configured chain length.
func (e *Encoder) ChainLen() int { return e.chainLen }

// Encode maps a frame to its pulse train: per LED the channels go out in
// GRB order, each byte MSB first, after gamma correction and the brightness
// scale. The returned slice aliases the encoder's buffer and is only valid
// until the next Encode call.
func (e *Encoder) Encode(frame []RGB) ([]hal.PulsePair, error) {
	if len(frame) != e.chainLen {
		return nil, fmt.Errorf("ledenc: frame has %d colors, chain has %d", len(frame), e.chainLen)
	}

	one := hal.PulsePair{High: e.timings.T1H, Low: e.timings.T1L}
	zero := hal.PulsePair{High: e.timings.T0H, Low: e.timings.T0L}

	out := e.buf[:0]
	for _, c := range frame {
		for _, ch := range [3]uint8{c.G, c.R, c.B} {
			v := scale(gammaTable[ch], e.brightness)
			for bit := 7; bit >= 0; bit-- {
				if v>>uint(bit)&1 == 1 {
					out = append(out, one)
				} else {
					out = append(out, zero)
				}
			}
		}
	}
	out = append(out, hal.PulsePair{Low: e.timings.Reset})

	e.buf = out
	return out, nil
}
