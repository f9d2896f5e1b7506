// Package button turns raw pin-level samples into debounced logical events.
package button

import "time"

// State is the settled logical state of one button.
type State uint8

const (
	StateIdle State = iota
	StatePressed
	StateLongPressed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateLongPressed:
		return "long-pressed"
	default:
		return "unknown"
	}
}

// Event is one debounced transition.
type Event uint8

const (
	EventNone Event = iota
	EventPress
	EventRelease
	EventLongPress
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventLongPress:
		return "long-press"
	default:
		return "unknown"
	}
}

// Policy selects the state-machine variant. The two differ in event timing
// and are never mixed.
type Policy uint8

const (
	// PolicyLongPress is the canonical three-state machine
	// (idle / pressed / long-pressed).
	PolicyLongPress Policy = iota
	// PolicyPressRelease is the two-state variant: press and release only,
	// the long-press timer never fires.
	PolicyPressRelease
)

// Config holds the debounce timing knobs.
type Config struct {
	DebounceInterval time.Duration // stable-reading window, default 50ms
	LongPress        time.Duration // hold threshold, default 2s
	SampleInterval   time.Duration // watcher poll period, default 10ms
	Policy           Policy
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = 50 * time.Millisecond
	}
	if c.LongPress <= 0 {
		c.LongPress = 2 * time.Second
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = 10 * time.Millisecond
	}
	return c
}

type phase uint8

const (
	phaseSettled phase = iota
	phaseConfirmPress
	phaseConfirmRelease
)

// Debouncer is a per-button finite state machine fed with raw pin samples.
// The pin is wired active-low: a low sample means the button is held.
//
// Feed carries its own timestamp, so the machine never sleeps and tests run
// on a fake clock.
type Debouncer struct {
	cfg      Config
	state    State
	phase    phase
	deadline time.Time // debounce re-sample moment
	longAt   time.Time // long-press expiry, valid while pressed
}

// New returns a debouncer in the idle state.
func New(cfg Config) *Debouncer {
	return &Debouncer{cfg: cfg.WithDefaults()}
}

// State returns the settled state. A transition being debounced is not
// visible until confirmed.
func (d *Debouncer) State() State { return d.state }

// Feed consumes one raw sample taken at now and returns the event it
// confirms, if any.
//
// While a transition is being debounced, samples are ignored until the
// debounce interval has elapsed; the sample that arrives at or after the
// deadline decides. A bounce that does not survive the interval produces no
// event and no state change. In the settled pressed state the release check
// runs before the long-press check, so a release arriving exactly at
// long-press expiry is treated as a release.
func (d *Debouncer) Feed(rawIsLow bool, now time.Time) Event {
	switch d.phase {
	case phaseConfirmPress:
		if now.Before(d.deadline) {
			return EventNone
		}
		d.phase = phaseSettled
		if rawIsLow {
			d.state = StatePressed
			d.longAt = now.Add(d.cfg.LongPress)
			return EventPress
		}
		d.state = StateIdle
		return EventNone

	case phaseConfirmRelease:
		if now.Before(d.deadline) {
			return EventNone
		}
		d.phase = phaseSettled
		if !rawIsLow {
			d.state = StateIdle
			return EventRelease
		}
		return EventNone
	}

	switch d.state {
	case StateIdle:
		if rawIsLow {
			d.phase = phaseConfirmPress
			d.deadline = now.Add(d.cfg.DebounceInterval)
		}

	case StatePressed:
		if !rawIsLow {
			d.phase = phaseConfirmRelease
			d.deadline = now.Add(d.cfg.DebounceInterval)
			return EventNone
		}
		if d.cfg.Policy == PolicyLongPress && !now.Before(d.longAt) {
			d.state = StateLongPressed
			return EventLongPress
		}

	case StateLongPressed:
		if !rawIsLow {
			d.phase = phaseConfirmRelease
			d.deadline = now.Add(d.cfg.DebounceInterval)
		}
	}
	return EventNone
}
