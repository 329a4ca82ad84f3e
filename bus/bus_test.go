package bus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/socialmesh/core"
)

func strategyEvent(agentID string) core.Event {
	return core.NewEvent(agentID, core.StrategyUpdatedPayload{}, core.Metadata{Domain: "crypto"})
}

func TestPublish_ZeroSubscribersIsNoOp(t *testing.T) {
	b := New()

	// Must not panic, block or error.
	b.Publish(context.Background(), strategyEvent("a1"))
	assert.Equal(t, 0, b.SubscriberCount(core.EventStrategyUpdated))
}

func TestPublish_DeliversToAllSubscribers(t *testing.T) {
	b := New()
	var count atomic.Int32
	for i := 0; i < 3; i++ {
		b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
			count.Add(1)
			return nil
		})
	}

	b.Publish(context.Background(), strategyEvent("a1"))

	// Publish settles only after all handlers ran, so no waiting is needed.
	assert.Equal(t, int32(3), count.Load())
}

func TestPublish_FailingHandlerDoesNotAffectSiblings(t *testing.T) {
	b := New()
	var ok atomic.Int32
	b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		return errors.New("boom")
	})
	b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		ok.Add(1)
		return nil
	})
	b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		panic("kaboom")
	})

	require.NotPanics(t, func() {
		b.Publish(context.Background(), strategyEvent("a1"))
	})
	assert.Equal(t, int32(1), ok.Load())
}

func TestPublish_OnlyMatchingTypeReceives(t *testing.T) {
	b := New()
	var created, updated atomic.Int32
	b.Subscribe(core.EventContentCreated, func(ctx context.Context, evt core.Event) error {
		created.Add(1)
		return nil
	})
	b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		updated.Add(1)
		return nil
	})

	b.Publish(context.Background(), strategyEvent("a1"))

	assert.Equal(t, int32(0), created.Load())
	assert.Equal(t, int32(1), updated.Load())
}

func TestUnsubscribe_IsIdempotent(t *testing.T) {
	b := New()
	var called atomic.Bool
	sub := b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		called.Store(true)
		return nil
	})

	b.Unsubscribe(sub)
	b.Unsubscribe(sub) // second call is a no-op
	b.Unsubscribe(nil) // nil is a no-op too

	b.Publish(context.Background(), strategyEvent("a1"))
	assert.False(t, called.Load(), "handler must not run after unsubscribe")
}

func TestUnsubscribe_LastHandlerReleasesEntry(t *testing.T) {
	b := New()
	s1 := b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error { return nil })
	s2 := b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error { return nil })
	require.Equal(t, 2, b.SubscriberCount(core.EventStrategyUpdated))

	b.Unsubscribe(s1)
	assert.Equal(t, 1, b.SubscriberCount(core.EventStrategyUpdated))

	b.Unsubscribe(s2)
	assert.Equal(t, 0, b.SubscriberCount(core.EventStrategyUpdated))

	b.mu.RLock()
	_, stillThere := b.handlers[core.EventStrategyUpdated]
	b.mu.RUnlock()
	assert.False(t, stillThere, "exhausted topic must release its registration entry")
}

func TestPublish_ConcurrentPublishers(t *testing.T) {
	b := New()
	var count atomic.Int32
	b.Subscribe(core.EventStrategyUpdated, func(ctx context.Context, evt core.Event) error {
		count.Add(1)
		return nil
	})

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			b.Publish(context.Background(), strategyEvent("a1"))
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Equal(t, int32(10), count.Load())
}
