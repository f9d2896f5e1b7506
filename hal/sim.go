//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Sim is the host HAL: a simulated panel, six virtual buttons, and a
// recording LED chain. The window runner drives the buttons from the
// keyboard; tests drive them directly.
type Sim struct {
	logger *simLogger
	led    *simLED
	pins   []GPIOPin
	fb     *MemoryFramebuffer
	chain  *RecordingChain
	t      *simTime
	net    *simNetwork
}

// SimButtonCount matches the physical control count of the device.
const SimButtonCount = 6

// NewSim returns a host HAL implementation.
func NewSim() *Sim {
	logger := &simLogger{w: os.Stdout}
	pins := make([]GPIOPin, SimButtonCount)
	for i := range pins {
		pins[i] = newVirtualPin(fmt.Sprintf("BTN%d", i+1), GPIOCapInput|GPIOCapPullUp)
	}
	return &Sim{
		logger: logger,
		led:    &simLED{},
		pins:   pins,
		fb:     NewMemoryFramebuffer(160, 128, nil),
		chain:  &RecordingChain{},
		t:      newSimTime(),
		net:    &simNetwork{connected: true},
	}
}

func (s *Sim) Logger() Logger   { return s.logger }
func (s *Sim) LED() LED         { return s.led }
func (s *Sim) Display() Display { return simDisplay{fb: s.fb} }
func (s *Sim) Buttons() GPIO    { return newPinBank(s.pins) }
func (s *Sim) Chain() LEDChain  { return s.chain }
func (s *Sim) Time() Time       { return s.t }
func (s *Sim) Network() Network { return s.net }

// Framebuffer exposes the simulated panel for the window runner and tests.
func (s *Sim) Framebuffer() *MemoryFramebuffer { return s.fb }

// ChainRecorder exposes the recorded LED traffic.
func (s *Sim) ChainRecorder() *RecordingChain { return s.chain }

// PressButton drives a button pin: pressed pulls the line low.
func (s *Sim) PressButton(id int, pressed bool) {
	if id < 0 || id >= len(s.pins) {
		return
	}
	if p, ok := s.pins[id].(*virtualPin); ok {
		p.drive(!pressed)
	}
}

// ScriptButton replaces a button with a square-wave presser: once per
// period the line goes low for hold. Must be called before tasks start.
func (s *Sim) ScriptButton(id int, period, hold time.Duration) {
	if id < 0 || id >= len(s.pins) {
		return
	}
	s.pins[id] = newSignalPin(fmt.Sprintf("BTN%d", id+1), period, hold)
}

// SetLink flips the simulated network link.
func (s *Sim) SetLink(up bool) { s.net.set(up) }

type simDisplay struct {
	fb *MemoryFramebuffer
}

func (d simDisplay) Framebuffer() Framebuffer { return d.fb }

type simLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *simLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *simLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type simLED struct {
	mu sync.Mutex
	on bool
}

func (l *simLED) High() {
	l.mu.Lock()
	l.on = true
	l.mu.Unlock()
}

func (l *simLED) Low() {
	l.mu.Lock()
	l.on = false
	l.mu.Unlock()
}

// On reports the current LED level.
func (l *simLED) On() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

type simNetwork struct {
	mu        sync.Mutex
	connected bool
}

func (n *simNetwork) Connected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.connected
}

func (n *simNetwork) set(up bool) {
	n.mu.Lock()
	n.connected = up
	n.mu.Unlock()
}

// RecordingChain is an LEDChain that keeps the last transmitted train.
type RecordingChain struct {
	mu      sync.Mutex
	last    []PulsePair
	frames  int
	errNext error
}

func (c *RecordingChain) Transmit(pulses []PulsePair) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errNext != nil {
		err := c.errNext
		c.errNext = nil
		return err
	}
	c.last = append(c.last[:0], pulses...)
	c.frames++
	return nil
}

// Frames returns the number of trains transmitted so far.
func (c *RecordingChain) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Last returns a copy of the most recent pulse train.
func (c *RecordingChain) Last() []PulsePair {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PulsePair, len(c.last))
	copy(out, c.last)
	return out
}

// FailNext makes the next Transmit return err once.
func (c *RecordingChain) FailNext(err error) {
	c.mu.Lock()
	c.errNext = err
	c.mu.Unlock()
}
