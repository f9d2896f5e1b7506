// Package ledloop drives the per-button LED chain from the shared UI state.
package ledloop

import (
	"time"

	"izzymon/hal"
	"izzymon/monitor/ledenc"
	"izzymon/monitor/uistate"
)

// Animator is the LED task: each tick it derives one frame from the current
// UI state, encodes it, and pushes the pulse train to the chain.
type Animator struct {
	chain hal.LEDChain
	enc   *ledenc.Encoder
	store *uistate.Store
	log   hal.Logger
	tick  time.Duration

	frame   []ledenc.RGB
	pressed func(index int) bool
	quit    chan struct{}
}

// NewAnimator creates the LED task. tick defaults to 50ms, fast enough that a
// selection change is visible within one debounce interval.
func NewAnimator(chain hal.LEDChain, enc *ledenc.Encoder, store *uistate.Store, log hal.Logger, tick time.Duration) *Animator {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &Animator{
		chain: chain,
		enc:   enc,
		store: store,
		log:   log,
		tick:  tick,
		frame: make([]ledenc.RGB, enc.ChainLen()),
		quit:  make(chan struct{}),
	}
}

// UsePressedSource switches the animator to the held-button variant: every
// control the source reports held lights up, the selection is ignored.
// Must be called before Run.
func (a *Animator) UsePressedSource(pressed func(index int) bool) {
	a.pressed = pressed
}

// Run animates until Stop. In production it never returns.
func (a *Animator) Run() {
	t := time.NewTicker(a.tick)
	defer t.Stop()

	a.Step()
	for {
		select {
		case <-a.quit:
			return
		case <-t.C:
			a.Step()
		}
	}
}

// Stop terminates Run. Used by tests.
func (a *Animator) Stop() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// Step runs one animation tick. A transmit failure is logged and dropped;
// the chain simply keeps showing the previous frame until the next tick.
func (a *Animator) Step() {
	if a.pressed != nil {
		PressedFrame(a.pressed, a.frame)
	} else {
		snap, _ := a.store.Snapshot()
		FrameFor(snap, a.frame)
	}

	pulses, err := a.enc.Encode(a.frame)
	if err != nil {
		if a.log != nil {
			a.log.WriteLineString("leds: encode: " + err.Error())
		}
		return
	}
	if err := a.chain.Transmit(pulses); err != nil {
		if a.log != nil {
			a.log.WriteLineString("leds: transmit: " + err.Error())
		}
	}
}

// FrameFor fills frame with the colors for one UI snapshot: the selected
// button glows white, everything else idles dim blue.
func FrameFor(snap uistate.Snapshot, frame []ledenc.RGB) {
	for i := range frame {
		if i == snap.ActiveButton {
			frame[i] = ledenc.White
		} else {
			frame[i] = ledenc.DimBlue
		}
	}
}

// PressedFrame fills frame from a held-button source: held controls glow
// white, the rest idle dim blue.
func PressedFrame(pressed func(index int) bool, frame []ledenc.RGB) {
	for i := range frame {
		if pressed(i) {
			frame[i] = ledenc.White
		} else {
			frame[i] = ledenc.DimBlue
		}
	}
}
