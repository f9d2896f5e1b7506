package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"izzymon/app"
	"izzymon/hal"
	"izzymon/monitor/button"
	"izzymon/monitor/netclient"
	"izzymon/monitor/screen"
	"izzymon/monitor/uistate"
)

// testConfig tightens every interval so the full pipeline settles in
// milliseconds instead of device time.
func testConfig() app.Config {
	cfg := app.DefaultConfig()
	cfg.Buttons = button.Config{
		DebounceInterval: 10 * time.Millisecond,
		LongPress:        100 * time.Millisecond,
		SampleInterval:   time.Millisecond,
	}
	cfg.LEDTick = 5 * time.Millisecond
	cfg.RenderPoll = 5 * time.Millisecond
	cfg.LinkPoll = 5 * time.Millisecond
	cfg.QueryTimeout = time.Second
	return cfg
}

func startSystem(t *testing.T, cfg app.Config) (*app.System, *hal.Sim) {
	t.Helper()
	sim := hal.NewSim()
	sys, err := app.New(sim, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sys.Start()
	t.Cleanup(sys.Stop)
	return sys, sim
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for " + what)
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

// pixelAt reads one pixel from a consistent framebuffer snapshot.
func pixelAt(sim *hal.Sim, x, y int) (r, g, b uint8) {
	fb := sim.Framebuffer()
	buf := make([]byte, fb.StrideBytes()*fb.Height())
	fb.SnapshotRGB565(buf)
	return hal.AtRGB565(buf, y*fb.StrideBytes()+x*2)
}

func TestPressNavigatesRendersAndLights(t *testing.T) {
	sys, sim := startSystem(t, testConfig())

	// Hold button 1 long enough to clear the debounce window.
	sim.PressButton(1, true)
	waitFor(t, "menu change", func() bool {
		snap, _ := sys.Store().Snapshot()
		return snap.Menu == uistate.MenuTrip
	})
	sim.PressButton(1, false)

	snap, _ := sys.Store().Snapshot()
	if snap.ActiveButton != 1 {
		t.Fatalf("active button = %d, want 1 (the pressed control)", snap.ActiveButton)
	}

	// The trip screen highlights the pressed control's zone and leaves
	// the Back zone on the plain background.
	zones := screen.DefaultZones()
	z0, z1 := zones[screen.ZoneButton0], zones[screen.ZoneButton1]
	waitFor(t, "trip screen render", func() bool {
		_, g, _ := pixelAt(sim, int(z1.X)+4, int(z1.Y)+4)
		return g > 0
	})
	if r, g, b := pixelAt(sim, int(z0.X)+4, int(z0.Y)+4); r != 0 || g != 0 || b != 0 {
		t.Fatalf("zone 0 fill = %d,%d,%d, want background", r, g, b)
	}

	// The LED task keeps pushing frames the whole time.
	if sim.ChainRecorder().Frames() == 0 {
		t.Fatal("no LED frames transmitted")
	}
}

type fakeBackend struct {
	reply string
	asked chan string
}

func (f *fakeBackend) Query(_ context.Context, text string) (string, error) {
	select {
	case f.asked <- text:
	default:
	}
	return f.reply, nil
}

func (f *fakeBackend) Directions(context.Context, string, string) (netclient.TripDirections, error) {
	return netclient.TripDirections{}, errors.New("not used")
}

func TestLongPressOnMicQueriesBackend(t *testing.T) {
	backend := &fakeBackend{reply: "All systems nominal", asked: make(chan string, 1)}
	cfg := testConfig()
	cfg.Backend = backend
	cfg.MicPrompt = "status report"
	sys, sim := startSystem(t, cfg)

	sim.PressButton(3, true)
	defer sim.PressButton(3, false)

	select {
	case text := <-backend.asked:
		if text != "status report" {
			t.Fatalf("backend saw %q", text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("long press never reached the backend")
	}

	waitFor(t, "status line update", func() bool {
		snap, _ := sys.Store().Snapshot()
		return snap.StatusLine == "All systems nominal"
	})
}

func TestLinkMonitorTracksNetwork(t *testing.T) {
	sys, sim := startSystem(t, testConfig())

	waitFor(t, "link up", func() bool {
		snap, _ := sys.Store().Snapshot()
		return snap.WiFiConnected
	})

	sim.SetLink(false)
	waitFor(t, "link down", func() bool {
		snap, _ := sys.Store().Snapshot()
		return !snap.WiFiConnected
	})
}

type brokenHAL struct {
	*hal.Sim
}

func (brokenHAL) Chain() hal.LEDChain { return nil }

func TestNewFailsWithoutChain(t *testing.T) {
	if _, err := app.New(brokenHAL{hal.NewSim()}, testConfig()); err == nil {
		t.Fatal("expected construction error with no LED chain")
	}
}
