package ledloop

import (
	"errors"
	"testing"
	"time"

	"izzymon/hal"
	"izzymon/monitor/ledenc"
	"izzymon/monitor/uistate"
)

const chainLen = 6

func newTestAnimator(t *testing.T, log hal.Logger) (*Animator, *hal.RecordingChain, *uistate.Store) {
	t.Helper()
	enc, err := ledenc.New(chainLen, ledenc.TimingsDefault)
	if err != nil {
		t.Fatalf("New encoder: %v", err)
	}
	chain := &hal.RecordingChain{}
	store := uistate.New()
	return NewAnimator(chain, enc, store, log, time.Hour), chain, store
}

// expectTrain encodes frame with a fresh encoder so the comparison does not
// alias the animator's reused buffer.
func expectTrain(t *testing.T, frame []ledenc.RGB) []hal.PulsePair {
	t.Helper()
	enc, err := ledenc.New(len(frame), ledenc.TimingsDefault)
	if err != nil {
		t.Fatalf("New encoder: %v", err)
	}
	pulses, err := enc.Encode(frame)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return pulses
}

func trainsEqual(a, b []hal.PulsePair) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStepTransmitsSelectionFrame(t *testing.T) {
	anim, chain, store := newTestAnimator(t, nil)

	anim.Step()
	if chain.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", chain.Frames())
	}

	want := make([]ledenc.RGB, chainLen)
	FrameFor(uistate.Snapshot{ActiveButton: 0}, want)
	if want[0] != ledenc.White || want[1] != ledenc.DimBlue {
		t.Fatalf("frame derivation broken: %+v", want[:2])
	}
	if !trainsEqual(chain.Last(), expectTrain(t, want)) {
		t.Fatal("transmitted train does not match the default selection frame")
	}

	// Move the selection and tick again.
	if err := store.Press(4); err != nil {
		t.Fatalf("Press: %v", err)
	}
	anim.Step()

	FrameFor(uistate.Snapshot{ActiveButton: 4}, want)
	if !trainsEqual(chain.Last(), expectTrain(t, want)) {
		t.Fatal("transmitted train does not track the selected button")
	}
}

func TestStepSurvivesTransmitFailure(t *testing.T) {
	log := &lineRecorder{}
	anim, chain, _ := newTestAnimator(t, log)

	chain.FailNext(errors.New("rmt busy"))
	anim.Step()
	if chain.Frames() != 0 {
		t.Fatalf("frames = %d, want 0 after failed transmit", chain.Frames())
	}
	if len(log.lines) == 0 {
		t.Fatal("transmit failure was not logged")
	}

	anim.Step()
	if chain.Frames() != 1 {
		t.Fatalf("frames = %d, want 1 after recovery", chain.Frames())
	}
}

func TestPressedSourceOverridesSelection(t *testing.T) {
	anim, chain, _ := newTestAnimator(t, nil)
	anim.UsePressedSource(func(i int) bool { return i == 2 || i == 5 })

	anim.Step()

	want := make([]ledenc.RGB, chainLen)
	PressedFrame(func(i int) bool { return i == 2 || i == 5 }, want)
	if want[0] != ledenc.DimBlue || want[2] != ledenc.White {
		t.Fatalf("frame derivation broken: %+v", want)
	}
	if !trainsEqual(chain.Last(), expectTrain(t, want)) {
		t.Fatal("transmitted train ignores the held-button source")
	}
}

func TestRunStopTerminates(t *testing.T) {
	anim, chain, _ := newTestAnimator(t, nil)

	done := make(chan struct{})
	go func() {
		anim.Run()
		close(done)
	}()

	// Run transmits an initial frame before the first tick.
	deadline := time.After(2 * time.Second)
	for chain.Frames() == 0 {
		select {
		case <-deadline:
			t.Fatal("no initial frame transmitted")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	anim.Stop()
	select {
	case <-done:
	case <-deadline:
		t.Fatal("Run did not return after Stop")
	}
}

type lineRecorder struct {
	lines []string
}

func (l *lineRecorder) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineRecorder) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }
