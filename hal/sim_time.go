//go:build !tinygo

package hal

import "time"

// simTime is the host tick source. The window and headless loops call
// advance once per frame; the wall-clock time elapsed since the previous
// call is converted into ticks at the configured resolution, so a stalled
// frame catches up in a burst instead of losing ticks.
type simTime struct {
	ch   chan uint64
	seq  uint64
	res  time.Duration
	now  func() time.Time
	mark time.Time
}

func newSimTime() *simTime {
	return newSimTimeWithClock(time.Millisecond, time.Now)
}

func newSimTimeWithClock(res time.Duration, now func() time.Time) *simTime {
	return &simTime{
		ch:  make(chan uint64, 1024),
		res: res,
		now: now,
	}
}

func (t *simTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per elapsed resolution unit. The first call only
// establishes the reference point; the sub-resolution remainder carries
// over to the next call.
func (t *simTime) advance() {
	now := t.now()
	if t.mark.IsZero() {
		t.mark = now
		return
	}

	n := uint64(now.Sub(t.mark) / t.res)
	if n == 0 {
		return
	}
	t.mark = t.mark.Add(time.Duration(n) * t.res)
	t.emit(n)
}

// emit sends n sequential ticks, dropping ticks no one is draining.
func (t *simTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
