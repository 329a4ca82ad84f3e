package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCount(t *testing.T, c *atomic.Int32, want int32, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for c.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d firings, got %d", want, c.Load())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestInMemory_RecurringFirings(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	var count atomic.Int32
	var lastAgent atomic.Value
	q.Process(func(ctx context.Context, job Job) error {
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.FiredAt.IsZero())
		lastAgent.Store(job.AgentID)
		count.Add(1)
		return nil
	})

	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))
	waitForCount(t, &count, 3, time.Second)
	assert.Equal(t, "agent-1", lastAgent.Load())
}

func TestInMemory_RejectsNonPositiveInterval(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	err := q.AddRecurring(context.Background(), "agent-1", 0)
	require.Error(t, err)
}

func TestInMemory_PauseStopsDispatch(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	var count atomic.Int32
	q.Process(func(ctx context.Context, job Job) error {
		count.Add(1)
		return nil
	})
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))
	waitForCount(t, &count, 1, time.Second)

	q.Pause()
	paused := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, count.Load(), paused+1, "at most one in-flight firing may land after pause")

	q.Resume()
	waitForCount(t, &count, paused+2, time.Second)
}

func TestInMemory_RemoveDisarmsAgent(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	var count atomic.Int32
	q.Process(func(ctx context.Context, job Job) error {
		count.Add(1)
		return nil
	})
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))
	waitForCount(t, &count, 1, time.Second)

	require.NoError(t, q.Remove(context.Background(), "agent-1"))
	removed := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, count.Load(), removed+1)

	// Removing an unknown agent is a no-op.
	require.NoError(t, q.Remove(context.Background(), "ghost"))
}

func TestInMemory_ReAddReplacesSchedule(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	var count atomic.Int32
	q.Process(func(ctx context.Context, job Job) error {
		count.Add(1)
		return nil
	})
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", time.Hour))
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))
	waitForCount(t, &count, 2, time.Second)
}

func TestInMemory_HandlerErrorDoesNotStopSchedule(t *testing.T) {
	q := NewInMemory()
	defer q.Close()

	var count atomic.Int32
	q.Process(func(ctx context.Context, job Job) error {
		count.Add(1)
		return errors.New("firing failed")
	})
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))

	// Failures are reported, not fatal: the schedule keeps firing.
	waitForCount(t, &count, 3, time.Second)
}

func TestInMemory_CloseIsIdempotentAndTerminal(t *testing.T) {
	q := NewInMemory()
	q.Process(func(ctx context.Context, job Job) error { return nil })
	require.NoError(t, q.AddRecurring(context.Background(), "agent-1", 10*time.Millisecond))

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	err := q.AddRecurring(context.Background(), "agent-2", 10*time.Millisecond)
	require.ErrorIs(t, err, ErrClosed)
}
