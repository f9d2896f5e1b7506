package button

import (
	"sync"
	"testing"
	"time"

	"izzymon/hal"
)

// fakePin is a GPIOPin whose level tests flip directly.
type fakePin struct {
	mu    sync.Mutex
	level bool // true = high = released
}

func (p *fakePin) Name() string                                  { return "FAKE" }
func (p *fakePin) Caps() hal.GPIOCaps                            { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (p *fakePin) Configure(hal.GPIOMode, hal.GPIOPull) error    { return nil }
func (p *fakePin) Write(bool) error                              { return hal.ErrNotImplemented }
func (p *fakePin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *fakePin) set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func collectEvents(t *testing.T) (Sink, <-chan Event) {
	t.Helper()
	ch := make(chan Event, 16)
	return func(index int, ev Event) {
		if index != 2 {
			t.Errorf("sink got index %d, want 2", index)
		}
		ch <- ev
	}, ch
}

func waitEvent(t *testing.T, ch <-chan Event, want Event) {
	t.Helper()
	select {
	case ev := <-ch:
		if ev != want {
			t.Fatalf("got event %v, want %v", ev, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %v", want)
	}
}

func TestWatcherPressAndRelease(t *testing.T) {
	pin := &fakePin{level: true}
	sink, events := collectEvents(t)

	cfg := Config{
		DebounceInterval: 10 * time.Millisecond,
		LongPress:        5 * time.Second,
		SampleInterval:   time.Millisecond,
	}
	w := NewWatcher(pin, 2, cfg, sink, nil)
	go w.Run()
	defer w.Stop()

	pin.set(false) // press
	waitEvent(t, events, EventPress)

	pin.set(true) // release
	waitEvent(t, events, EventRelease)

	select {
	case ev := <-events:
		t.Fatalf("unexpected trailing event %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherLongPress(t *testing.T) {
	pin := &fakePin{level: true}
	sink, events := collectEvents(t)

	cfg := Config{
		DebounceInterval: 10 * time.Millisecond,
		LongPress:        100 * time.Millisecond,
		SampleInterval:   time.Millisecond,
	}
	w := NewWatcher(pin, 2, cfg, sink, nil)
	go w.Run()
	defer w.Stop()

	pin.set(false)
	waitEvent(t, events, EventPress)
	waitEvent(t, events, EventLongPress)

	pin.set(true)
	waitEvent(t, events, EventRelease)
}
