// Package assist runs the voice-button query flow: a long press asks the
// backend a question and the reply lands in the UI status line.
package assist

import (
	"context"
	"strings"
	"time"

	"izzymon/hal"
	"izzymon/monitor/netclient"
	"izzymon/monitor/uistate"
)

// MicButton is the control index whose long press triggers a query.
const MicButton = 3

// maxStatusLen bounds the reply placed into the status line. The content
// zone wraps nothing; anything longer is cut.
const maxStatusLen = 64

// Task serializes backend queries off the button path. Button watchers must
// never block on the network, so Ask only enqueues.
type Task struct {
	client  netclient.Client
	store   *uistate.Store
	log     hal.Logger
	timeout time.Duration

	reqs chan string
	quit chan struct{}
}

// NewTask creates the query task. timeout bounds each backend call.
func NewTask(client netclient.Client, store *uistate.Store, log hal.Logger, timeout time.Duration) *Task {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Task{
		client:  client,
		store:   store,
		log:     log,
		timeout: timeout,
		reqs:    make(chan string, 1),
		quit:    make(chan struct{}),
	}
}

// Ask enqueues one query. At most one query waits behind the one in
// flight; anything beyond that is dropped rather than queued.
func (t *Task) Ask(text string) {
	select {
	case t.reqs <- text:
	default:
		if t.log != nil {
			t.log.WriteLineString("assist: query in flight, dropped: " + text)
		}
	}
}

// Run serves queries until Stop. In production it never returns.
func (t *Task) Run() {
	for {
		select {
		case <-t.quit:
			return
		case text := <-t.reqs:
			t.serve(text)
		}
	}
}

// Stop terminates Run. Used by tests.
func (t *Task) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// serve performs one query. Failures are logged and leave the status line
// unchanged.
func (t *Task) serve(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	reply, err := t.client.Query(ctx, text)
	if err != nil {
		if t.log != nil {
			t.log.WriteLineString("assist: query: " + err.Error())
		}
		return
	}
	t.store.SetStatusLine(statusLine(reply))
}

// statusLine flattens a reply into one bounded line.
func statusLine(reply string) string {
	s := strings.TrimSpace(strings.ReplaceAll(reply, "\n", " "))
	r := []rune(s)
	if len(r) > maxStatusLen {
		return string(r[:maxStatusLen])
	}
	return s
}
