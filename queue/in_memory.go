package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/socialmesh/logging"
)

// ErrClosed is returned when scheduling against a closed queue.
var ErrClosed = fmt.Errorf("queue is closed")

// InMemoryOptions configures an InMemory queue.
type InMemoryOptions struct {
	// Logger receives dispatch diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// InMemory is the default Queue implementation: one ticker goroutine per
// agent, firings dispatched inline so each agent's firings are strictly
// sequential. Schedules do not survive a restart; use the redis subpackage
// when firings must be durable.
type InMemory struct {
	mu        sync.Mutex
	handler   Handler
	logger    logging.Logger
	paused    bool
	closed    bool
	schedules map[string]chan struct{}
	wg        sync.WaitGroup
}

// NewInMemory creates an empty in-memory queue. The queue starts unpaused.
func NewInMemory(optFns ...func(o *InMemoryOptions)) *InMemory {
	opts := InMemoryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &InMemory{
		logger:    opts.Logger,
		schedules: make(map[string]chan struct{}),
	}
}

// Process implements Queue.
func (q *InMemory) Process(h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = h
}

// AddRecurring implements Queue. Re-adding an agent replaces its schedule.
func (q *InMemory) AddRecurring(ctx context.Context, agentID string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	if stop, ok := q.schedules[agentID]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	q.schedules[agentID] = stop

	q.wg.Add(1)
	go q.run(agentID, interval, stop)
	return nil
}

// Remove implements Queue. Removing an unknown agent is a no-op.
func (q *InMemory) Remove(ctx context.Context, agentID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if stop, ok := q.schedules[agentID]; ok {
		close(stop)
		delete(q.schedules, agentID)
	}
	return nil
}

// Pause implements Queue: tickers keep running but firings are skipped.
func (q *InMemory) Pause() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = true
}

// Resume implements Queue.
func (q *InMemory) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = false
}

// Close implements Queue: stops every schedule and waits for in-flight
// firings to finish. Close is idempotent.
func (q *InMemory) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	for id, stop := range q.schedules {
		close(stop)
		delete(q.schedules, id)
	}
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

func (q *InMemory) run(agentID string, interval time.Duration, stop chan struct{}) {
	defer q.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			q.fire(agentID)
		}
	}
}

// fire dispatches one firing. Dispatch happens on the agent's own schedule
// goroutine, so a later firing of the same agent never starts before the
// previous one finished.
func (q *InMemory) fire(agentID string) {
	q.mu.Lock()
	h := q.handler
	skip := q.paused || q.closed || h == nil
	q.mu.Unlock()
	if skip {
		return
	}

	job := Job{ID: uuid.NewString(), AgentID: agentID, FiredAt: time.Now().UTC()}
	if err := h(context.Background(), job); err != nil {
		q.logger.Error("job firing failed", "agent_id", agentID, "job_id", job.ID, "error", err.Error())
		return
	}
	q.logger.Debug("job firing completed", "agent_id", agentID, "job_id", job.ID)
}
