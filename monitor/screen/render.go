package screen

import (
	"time"

	"izzymon/hal"
	"izzymon/monitor/uistate"
)

// Renderer is the display task: it watches the shared state and redraws the
// current screen when the state it last painted goes stale.
type Renderer struct {
	d     Surface
	store *uistate.Store
	log   hal.Logger
	poll  time.Duration

	last      uistate.Snapshot
	lastValid bool

	quit chan struct{}
}

// NewRenderer creates the display task. poll bounds the worst-case reaction
// latency; the store's change notifications usually win.
func NewRenderer(d Surface, store *uistate.Store, log hal.Logger, poll time.Duration) *Renderer {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	return &Renderer{
		d:     d,
		store: store,
		log:   log,
		poll:  poll,
		quit:  make(chan struct{}),
	}
}

// Run renders until Stop. In production it never returns.
func (r *Renderer) Run() {
	notify := r.store.Subscribe()
	t := time.NewTicker(r.poll)
	defer t.Stop()

	r.RenderOnce()
	for {
		select {
		case <-r.quit:
			return
		case <-notify:
			r.RenderOnce()
		case <-t.C:
			r.RenderOnce()
		}
	}
}

// Stop terminates Run. Used by tests.
func (r *Renderer) Stop() {
	select {
	case <-r.quit:
	default:
		close(r.quit)
	}
}

// RenderOnce performs one tick: if the state differs from the last
// successful render, dispatch exactly one per-menu draw routine. A failed
// draw is logged and leaves the tracking state unchanged, so the next
// mismatching tick retries.
func (r *Renderer) RenderOnce() {
	snap, _ := r.store.Snapshot()
	if r.lastValid && snap == r.last {
		return
	}

	var err error
	switch snap.Menu {
	case uistate.MenuTrip:
		err = DrawTrip(r.d, snap)
	case uistate.MenuSettings:
		err = DrawSettings(r.d, snap)
	default:
		err = DrawMain(r.d, snap)
	}
	if err != nil {
		if r.log != nil {
			r.log.WriteLineString("display: draw " + snap.Menu.String() + ": " + err.Error())
		}
		return
	}

	r.last = snap
	r.lastValid = true
}
