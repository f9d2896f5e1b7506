package hal

import (
	"testing"
	"time"
)

func TestSimTimeCatchesUpAfterStall(t *testing.T) {
	clock := time.Unix(0, 0)
	st := newSimTimeWithClock(time.Millisecond, func() time.Time { return clock })

	// First call only sets the reference point.
	st.advance()
	select {
	case seq := <-st.Ticks():
		t.Fatalf("tick %d before any time elapsed", seq)
	default:
	}

	// A 3ms stall yields three sequential ticks on the next call.
	clock = clock.Add(3 * time.Millisecond)
	st.advance()
	for want := uint64(1); want <= 3; want++ {
		select {
		case seq := <-st.Ticks():
			if seq != want {
				t.Fatalf("seq = %d, want %d", seq, want)
			}
		default:
			t.Fatalf("missing tick %d", want)
		}
	}
}

func TestSimTimeCarriesSubTickRemainder(t *testing.T) {
	clock := time.Unix(0, 0)
	st := newSimTimeWithClock(time.Millisecond, func() time.Time { return clock })
	st.advance()

	clock = clock.Add(1500 * time.Microsecond)
	st.advance()
	if seq := <-st.Ticks(); seq != 1 {
		t.Fatalf("seq = %d, want 1", seq)
	}
	select {
	case seq := <-st.Ticks():
		t.Fatalf("unexpected tick %d from the half-elapsed unit", seq)
	default:
	}

	// The leftover half-unit plus another half completes tick 2.
	clock = clock.Add(500 * time.Microsecond)
	st.advance()
	if seq := <-st.Ticks(); seq != 2 {
		t.Fatalf("seq = %d, want 2", seq)
	}
}

func TestSimTimeDropsTicksNobodyDrains(t *testing.T) {
	clock := time.Unix(0, 0)
	st := newSimTimeWithClock(time.Millisecond, func() time.Time { return clock })
	st.advance()

	clock = clock.Add(5 * time.Second)
	st.advance()

	var got int
	for {
		select {
		case <-st.Ticks():
			got++
			continue
		default:
		}
		break
	}
	if got != cap(st.ch) {
		t.Fatalf("buffered ticks = %d, want channel capacity %d", got, cap(st.ch))
	}
}
