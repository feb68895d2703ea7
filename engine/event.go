package engine

import (
	"cmp"
	"slices"
)

// Event is a parameter change scheduled at an absolute sample position,
// counted in frames from the start of the session or the last Reset.
type Event struct {
	Frame  int64   `json:"frame"`
	Module string  `json:"module"`
	Param  string  `json:"param"`
	Value  float64 `json:"value"`
}

// Schedule queues automation events. Each takes effect exactly at its
// frame; events whose frame has already passed apply at the start of the
// next processed sample. Events at the same frame apply in the order
// given.
func (e *Engine) Schedule(events ...Event) {
	if len(events) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pending := append(e.events[e.next:len(e.events):len(e.events)], events...)
	slices.SortStableFunc(pending, func(a, b Event) int {
		return cmp.Compare(a.Frame, b.Frame)
	})
	e.events = pending
	e.next = 0
}

// Pending returns the number of queued events.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.events) - e.next
}

// applyDue applies every event scheduled at or before the current position.
func (e *Engine) applyDue() {
	for e.next < len(e.events) && e.events[e.next].Frame <= e.position {
		ev := e.events[e.next]
		if !e.chain.SetParameter(ev.Module, ev.Param, ev.Value) {
			e.dropped++
		}
		e.next++
	}
}

// framesUntilEvent returns how many frames can run before the next event,
// capped at limit.
func (e *Engine) framesUntilEvent(limit int) int {
	if e.next >= len(e.events) {
		return limit
	}
	until := e.events[e.next].Frame - e.position
	if until < int64(limit) {
		return int(until)
	}
	return limit
}
