//go:build tinygo

package hal

import (
	"fmt"
	"machine"
	"runtime/interrupt"
	"time"
)

// Wall-unit wiring. The display shares SPI0; the LED chain has a dedicated
// data pin; the six front buttons are active-low with internal pull-ups.
const (
	pinBacklight = machine.Pin(46)
	pinLCDSCK    = machine.Pin(12)
	pinLCDSDO    = machine.Pin(13)
	pinLCDCS     = machine.Pin(11)
	pinLCDDC     = machine.Pin(10)
	pinLCDRST    = machine.Pin(9)
	pinChainData = machine.Pin(16)
)

var buttonPins = [...]machine.Pin{14, 21, 47, 48, 45, 35}

type boardHAL struct {
	logger *uartLogger
	led    *pinLED
	fb     Framebuffer
	pins   GPIO
	chain  LEDChain
	t      *tickTime
	net    Network
}

// New returns the on-device HAL.
//
// UART: UART0 at 115200 8N1 for log output.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: uart}

	fb, err := newBoardDisplay()
	if err != nil {
		// Fatal by contract: the caller aborts startup on a nil framebuffer.
		logger.WriteLineString("display: " + err.Error())
		fb = nil
	}

	pins := make([]GPIOPin, len(buttonPins))
	for i, p := range buttonPins {
		pins[i] = &machinePin{pin: p, name: fmt.Sprintf("BTN%d", i+1)}
	}

	pinChainData.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinChainData.Low()

	return &boardHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		fb:     fb,
		pins:   newPinBank(pins),
		chain:  &chainPin{pin: pinChainData},
		t:      newTickTime(),
		net:    nullNetwork{},
	}
}

func (h *boardHAL) Logger() Logger { return h.logger }
func (h *boardHAL) LED() LED       { return h.led }
func (h *boardHAL) Display() Display {
	if h.fb == nil {
		return nil
	}
	return boardDisplay{fb: h.fb}
}
func (h *boardHAL) Buttons() GPIO    { return h.pins }
func (h *boardHAL) Chain() LEDChain  { return h.chain }
func (h *boardHAL) Time() Time       { return h.t }
func (h *boardHAL) Network() Network { return h.net }

type boardDisplay struct {
	fb Framebuffer
}

func (d boardDisplay) Framebuffer() Framebuffer { return d.fb }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte("\r\n"))
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte("\r\n"))
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin adapts a machine.Pin to GPIOPin.
type machinePin struct {
	pin  machine.Pin
	name string
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	var m machine.PinMode
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case pull == GPIOPullUp:
		m = machine.PinInputPullup
	case pull == GPIOPullDown:
		m = machine.PinInputPulldown
	default:
		m = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}

// chainPin shifts a pulse train out of a single data pin. Interrupts are
// held off for the duration of the train; a WS2812-class frame of six LEDs
// is under 200 microseconds plus reset.
type chainPin struct {
	pin machine.Pin
}

func (c *chainPin) Transmit(pulses []PulsePair) error {
	state := interrupt.Disable()
	for _, p := range pulses {
		if p.High > 0 {
			c.pin.High()
			spinFor(p.High)
		}
		c.pin.Low()
		spinFor(p.Low)
	}
	interrupt.Restore(state)
	return nil
}

// spinFor busy-waits. noinline keeps the loop from being folded away.
//
//go:noinline
func spinFor(d time.Duration) {
	n := uint32(uint64(machine.CPUFrequency()) / 4 * uint64(d) / uint64(time.Second))
	for i := uint32(0); i < n; i++ {
	}
}

type tickTime struct {
	ch chan uint64
}

func newTickTime() *tickTime {
	t := &tickTime{ch: make(chan uint64, 64)}
	go func() {
		tk := time.NewTicker(time.Millisecond)
		defer tk.Stop()
		var seq uint64
		for range tk.C {
			seq++
			select {
			case t.ch <- seq:
			default:
			}
		}
	}()
	return t
}

func (t *tickTime) Ticks() <-chan uint64 { return t.ch }

type nullNetwork struct{}

func (nullNetwork) Connected() bool { return false }
