// Package uistate holds the single shared record of what the device is
// showing and which control is selected.
//
// The store is mutex-guarded and hands out copies; writers are the button
// tasks, readers are the display and LED tasks. Every mutation bumps a
// version counter and pokes subscriber channels, so readers can react
// promptly and still fall back to polling.
package uistate

import (
	"fmt"
	"sync"
)

// Menu enumerates the screens.
type Menu uint8

const (
	MenuMain Menu = iota
	MenuTrip
	MenuSettings
)

func (m Menu) String() string {
	switch m {
	case MenuMain:
		return "main"
	case MenuTrip:
		return "trip"
	case MenuSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// NumControls is the number of physical controls on the front panel.
const NumControls = 6

// Snapshot is a copy of the shared state at one instant.
type Snapshot struct {
	Menu          Menu
	ActiveButton  int
	UserName      string
	WiFiConnected bool
	StatusLine    string
}

// Store is the process-wide UI state. The zero value is not usable; create
// one with New.
type Store struct {
	mu      sync.Mutex
	s       Snapshot
	version uint64
	subs    []chan struct{}
}

// New returns a store with the boot defaults.
func New() *Store {
	return &Store{
		s: Snapshot{
			Menu:         MenuMain,
			ActiveButton: 0,
			UserName:     "Guest",
			StatusLine:   "Ready",
		},
	}
}

// Snapshot returns a copy of the state and its version.
func (st *Store) Snapshot() (Snapshot, uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s, st.version
}

// Subscribe returns a one-slot channel poked on every mutation. Back-to-back
// mutations coalesce into a single pending notification.
func (st *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	st.mu.Lock()
	st.subs = append(st.subs, ch)
	st.mu.Unlock()
	return ch
}

// notify must be called with the lock held.
func (st *Store) notify() {
	st.version++
	for _, ch := range st.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetActiveButton selects a control.
func (st *Store) SetActiveButton(idx int) error {
	if idx < 0 || idx >= NumControls {
		return fmt.Errorf("uistate: control index %d out of range", idx)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.s.ActiveButton == idx {
		return nil
	}
	st.s.ActiveButton = idx
	st.notify()
	return nil
}

// SetWiFi records the link status shown in the header.
func (st *Store) SetWiFi(connected bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.s.WiFiConnected == connected {
		return
	}
	st.s.WiFiConnected = connected
	st.notify()
}

// SetUserName sets the display name shown in the header.
func (st *Store) SetUserName(name string) {
	if name == "" {
		name = "Guest"
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.s.UserName == name {
		return
	}
	st.s.UserName = name
	st.notify()
}

// SetStatusLine sets the main-screen content line.
func (st *Store) SetStatusLine(line string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.s.StatusLine == line {
		return
	}
	st.s.StatusLine = line
	st.notify()
}

// Press applies one debounced press of control idx: the selection moves to
// idx, and if idx is one of the menu keys the menu switches regardless of
// which screen is showing. This is the only way the menu ever changes.
func (st *Store) Press(idx int) error {
	if idx < 0 || idx >= NumControls {
		return fmt.Errorf("uistate: control index %d out of range", idx)
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	changed := false
	if st.s.ActiveButton != idx {
		st.s.ActiveButton = idx
		changed = true
	}
	if next, ok := MenuFor(idx); ok && st.s.Menu != next {
		st.s.Menu = next
		changed = true
	}
	if changed {
		st.notify()
	}
	return nil
}

// MenuFor returns the menu a press of control idx switches to, if any. The
// first three controls are menu keys from every screen: 0 shows Main,
// 1 Trip, 2 Settings. The remaining controls never change the menu.
func MenuFor(idx int) (Menu, bool) {
	switch idx {
	case 0:
		return MenuMain, true
	case 1:
		return MenuTrip, true
	case 2:
		return MenuSettings, true
	default:
		return MenuMain, false
	}
}
