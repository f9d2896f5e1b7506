package button

import (
	"time"

	"izzymon/hal"
)

// Sink receives debounced events from a watcher.
type Sink func(index int, ev Event)

// Watcher samples one button pin and feeds a Debouncer. One watcher type is
// spawned once per physical control.
type Watcher struct {
	pin   hal.GPIOPin
	index int
	deb   *Debouncer

	sample time.Duration
	sink   Sink
	log    hal.Logger
	now    func() time.Time

	quit chan struct{}
}

// NewWatcher wires a watcher to a configured input pin.
func NewWatcher(pin hal.GPIOPin, index int, cfg Config, sink Sink, log hal.Logger) *Watcher {
	cfg = cfg.WithDefaults()
	return &Watcher{
		pin:    pin,
		index:  index,
		deb:    New(cfg),
		sample: cfg.SampleInterval,
		sink:   sink,
		log:    log,
		now:    time.Now,
		quit:   make(chan struct{}),
	}
}

// Run polls the pin until Stop. It is the long-running per-button task; in
// production it never returns.
func (w *Watcher) Run() {
	t := time.NewTicker(w.sample)
	defer t.Stop()

	for {
		select {
		case <-w.quit:
			return
		case <-t.C:
			level, err := w.pin.Read()
			if err != nil {
				if w.log != nil {
					w.log.WriteLineString("button " + w.pin.Name() + ": read: " + err.Error())
				}
				continue
			}
			ev := w.deb.Feed(!level, w.now())
			if ev != EventNone && w.sink != nil {
				w.sink(w.index, ev)
			}
		}
	}
}

// Stop terminates Run. Used by tests; the firmware never stops a watcher.
func (w *Watcher) Stop() {
	select {
	case <-w.quit:
	default:
		close(w.quit)
	}
}
