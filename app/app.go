// Package app wires the HAL to the monitor tasks and owns their lifetimes.
package app

import (
	"fmt"
	"time"

	"izzymon/hal"
	"izzymon/monitor/assist"
	"izzymon/monitor/button"
	"izzymon/monitor/ledenc"
	"izzymon/monitor/ledloop"
	"izzymon/monitor/netclient"
	"izzymon/monitor/screen"
	"izzymon/monitor/uistate"
)

// Config holds every timing and calibration knob in one place.
type Config struct {
	Buttons button.Config

	ChainLen   int
	Brightness uint8
	LEDTimings ledenc.Timings
	LEDTick    time.Duration

	RenderPoll time.Duration

	// Backend is the assistant collaborator. nil means no network stack:
	// queries fail fast and are logged.
	Backend      netclient.Client
	MicPrompt    string
	QueryTimeout time.Duration

	// HeartbeatTicks is how many base ticks pass between status LED
	// toggles. The base tick is 1ms, so 500 blinks at 1Hz.
	HeartbeatTicks uint64
	LinkPoll       time.Duration
}

// DefaultConfig returns the device calibration.
func DefaultConfig() Config {
	return Config{
		Buttons:        button.Config{}.WithDefaults(),
		ChainLen:       uistate.NumControls,
		Brightness:     100,
		LEDTimings:     ledenc.TimingsDefault,
		LEDTick:        50 * time.Millisecond,
		RenderPoll:     100 * time.Millisecond,
		MicPrompt:      "hello",
		QueryTimeout:   10 * time.Second,
		HeartbeatTicks: 500,
		LinkPoll:       time.Second,
	}
}

// System is the assembled device: shared state plus one goroutine per task.
type System struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	store    *uistate.Store
	renderer *screen.Renderer
	animator *ledloop.Animator
	watchers []*button.Watcher
	assist   *assist.Task

	quit chan struct{}
}

// New assembles the system. Construction is the fatal path: a missing
// display, chain, or button pin is a hardware defect and aborts here.
// Nothing runs until Start.
func New(h hal.HAL, cfg Config) (*System, error) {
	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("app: no display")
	}
	surface := screen.NewSurface(disp.Framebuffer())
	if surface == nil {
		return nil, fmt.Errorf("app: display framebuffer unusable")
	}

	chain := h.Chain()
	if chain == nil {
		return nil, fmt.Errorf("app: no LED chain")
	}
	enc, err := ledenc.New(cfg.ChainLen, cfg.LEDTimings)
	if err != nil {
		return nil, fmt.Errorf("app: led encoder: %w", err)
	}
	enc.SetBrightness(cfg.Brightness)

	log := h.Logger()
	store := uistate.New()

	backend := cfg.Backend
	if backend == nil {
		backend = netclient.Unavailable{}
	}

	s := &System{
		h:        h,
		cfg:      cfg,
		log:      log,
		store:    store,
		renderer: screen.NewRenderer(surface, store, log, cfg.RenderPoll),
		animator: ledloop.NewAnimator(chain, enc, store, log, cfg.LEDTick),
		assist:   assist.NewTask(backend, store, log, cfg.QueryTimeout),
		quit:     make(chan struct{}),
	}

	buttons := h.Buttons()
	for i := 0; i < uistate.NumControls; i++ {
		pin := buttons.Pin(i)
		if pin == nil {
			return nil, fmt.Errorf("app: button pin %d missing", i)
		}
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("app: configure button pin %d: %w", i, err)
		}
		s.watchers = append(s.watchers, button.NewWatcher(pin, i, cfg.Buttons, s.onButton, log))
	}

	return s, nil
}

// Start launches every task goroutine. In production none of them ever stop.
func (s *System) Start() {
	go s.renderer.Run()
	go s.animator.Run()
	for _, w := range s.watchers {
		go w.Run()
	}
	go s.assist.Run()
	go s.heartbeat()
	go s.linkMonitor()
}

// Stop terminates every task. Used by tests and the headless runner.
func (s *System) Stop() {
	select {
	case <-s.quit:
		return
	default:
		close(s.quit)
	}
	s.renderer.Stop()
	s.animator.Stop()
	for _, w := range s.watchers {
		w.Stop()
	}
	s.assist.Stop()
}

// Store exposes the shared UI state. Used by tests and the host tooling.
func (s *System) Store() *uistate.Store { return s.store }

// onButton routes debounced events: a press drives the menu state machine, a
// long press on the mic control asks the backend.
func (s *System) onButton(index int, ev button.Event) {
	switch ev {
	case button.EventPress:
		if err := s.store.Press(index); err != nil && s.log != nil {
			s.log.WriteLineString("app: press: " + err.Error())
		}
	case button.EventLongPress:
		if index == assist.MicButton {
			s.assist.Ask(s.cfg.MicPrompt)
		}
	}
}

// heartbeat toggles the status LED off the base tick stream, the visible
// sign that the scheduler is alive.
func (s *System) heartbeat() {
	led := s.h.LED()
	t := s.h.Time()
	if led == nil || t == nil {
		return
	}
	ch := t.Ticks()
	if ch == nil {
		return
	}

	period := s.cfg.HeartbeatTicks
	if period == 0 {
		period = 500
	}
	on := false
	next := period
	for {
		select {
		case <-s.quit:
			return
		case seq, ok := <-ch:
			if !ok {
				return
			}
			if seq < next {
				continue
			}
			on = !on
			if on {
				led.High()
			} else {
				led.Low()
			}
			next = seq + period
		}
	}
}

// linkMonitor mirrors the platform link state into the UI.
func (s *System) linkMonitor() {
	n := s.h.Network()
	if n == nil {
		return
	}
	poll := s.cfg.LinkPoll
	if poll <= 0 {
		poll = time.Second
	}
	t := time.NewTicker(poll)
	defer t.Stop()

	s.store.SetWiFi(n.Connected())
	for {
		select {
		case <-s.quit:
			return
		case <-t.C:
			s.store.SetWiFi(n.Connected())
		}
	}
}

// Run assembles and starts the system, then blocks forever. This is the
// device entrypoint.
func Run(h hal.HAL, cfg Config) {
	sys, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("app: " + err.Error())
		}
		select {}
	}
	sys.Start()
	select {}
}
