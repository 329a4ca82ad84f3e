package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/socialmesh/bus"
	"github.com/hupe1980/socialmesh/core"
)

// EventRecorder captures events delivered through the bus so tests can
// assert on what was (and was not) published. Safe for concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []core.Event
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Handler returns a bus.Handler that records every delivered event.
func (r *EventRecorder) Handler() bus.Handler {
	return func(ctx context.Context, evt core.Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, evt)
		return nil
	}
}

// SubscribeAll registers the recorder for every known event type.
func (r *EventRecorder) SubscribeAll(b *bus.Bus) {
	for _, t := range []core.EventType{
		core.EventContentCreated,
		core.EventContentScheduled,
		core.EventContentPublished,
		core.EventEngagementReceived,
		core.EventTrendDetected,
		core.EventStrategyUpdated,
		core.EventAnalyticsUpdated,
	} {
		b.Subscribe(t, r.Handler())
	}
}

// Events returns a copy of all recorded events in arrival order.
func (r *EventRecorder) Events() []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns recorded events matching a type.
func (r *EventRecorder) OfType(t core.EventType) []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// WaitFor polls until at least n events of type t arrived or the timeout
// elapses, returning the matching events either way.
func (r *EventRecorder) WaitFor(t core.EventType, n int, timeout time.Duration) []core.Event {
	deadline := time.Now().Add(timeout)
	for {
		evts := r.OfType(t)
		if len(evts) >= n || time.Now().After(deadline) {
			return evts
		}
		time.Sleep(5 * time.Millisecond)
	}
}
