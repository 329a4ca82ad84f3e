package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/metrics"
)

// Handler processes one event. Errors returned (or panics raised) by a
// handler are caught, logged and counted; they never reach the publisher or
// sibling handlers.
type Handler func(ctx context.Context, evt core.Event) error

// Subscription identifies one registered handler so it can be removed later.
// Function values are not comparable in Go, so Subscribe hands out a token
// instead of accepting the handler again on unsubscribe.
type Subscription struct {
	eventType core.EventType
	id        uint64
}

// Options configures a Bus.
type Options struct {
	// Logger receives handler failure reports. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Bus is an in-memory typed publish/subscribe fan-out. A single instance is
// constructed by the hosting application and passed to every component that
// needs it; there is no hidden package-level singleton.
//
// Fan-out is concurrent: handlers for one event run in their own goroutines
// with no ordering guarantee, and Publish returns only after all of them have
// settled.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[core.EventType]map[uint64]Handler
	logger   logging.Logger
}

// New creates an empty bus.
func New(optFns ...func(o *Options)) *Bus {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Bus{
		handlers: make(map[core.EventType]map[uint64]Handler),
		logger:   opts.Logger,
	}
}

// Subscribe registers a handler for an event type and returns a subscription
// token. Multiple handlers per type are permitted.
func (b *Bus) Subscribe(t core.EventType, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.handlers[t] == nil {
		b.handlers[t] = make(map[uint64]Handler)
	}
	b.handlers[t][b.nextID] = h
	return &Subscription{eventType: t, id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Removing the last
// handler for a type releases the registration entry entirely, so exhausted
// topics do not grow the map. Unsubscribing an unknown or already removed
// subscription is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	hs, ok := b.handlers[sub.eventType]
	if !ok {
		return
	}
	delete(hs, sub.id)
	if len(hs) == 0 {
		delete(b.handlers, sub.eventType)
	}
}

// Publish delivers the event to every handler currently registered for its
// type. Handlers run concurrently; each failure is isolated, logged and
// counted. Publish returns once all handlers have settled. Publishing with
// zero subscribers is a legal no-op.
func (b *Bus) Publish(ctx context.Context, evt core.Event) {
	b.mu.RLock()
	hs := b.handlers[evt.Type]
	snapshot := make([]Handler, 0, len(hs))
	for _, h := range hs {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(evt.Type)).Inc()
	if len(snapshot) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, h := range snapshot {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			b.dispatch(ctx, h, evt)
		}(h)
	}
	wg.Wait()
}

// dispatch runs a single handler, converting panics into logged failures so
// one misbehaving subscriber cannot take down the fan-out.
func (b *Bus) dispatch(ctx context.Context, h Handler, evt core.Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerFailures.WithLabelValues(string(evt.Type)).Inc()
			b.logger.Error("event handler panicked", "type", string(evt.Type), "panic", fmt.Sprintf("%v", r))
		}
	}()
	if err := h(ctx, evt); err != nil {
		metrics.HandlerFailures.WithLabelValues(string(evt.Type)).Inc()
		b.logger.Error("event handler failed", "type", string(evt.Type), "error", err.Error())
	}
}

// SubscriberCount reports the number of handlers registered for a type.
// Intended for diagnostics and tests.
func (b *Bus) SubscriberCount(t core.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
