// Package redis implements queue.Queue on top of Redis Streams. Per-agent
// tickers append firings to a bounded stream (XADD) and a consumer-group
// loop (XREADGROUP/XACK) dispatches them to the handler, so a firing written
// before a consumer restart is still delivered afterwards.
package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/queue"
)

// Options configures the Redis-backed queue.
type Options struct {
	Addr     string
	Password string
	DB       int

	// Stream is the Redis Stream key holding pending firings.
	Stream string
	// Group is the consumer group name.
	Group string
	// Consumer identifies this process within the group.
	Consumer string
	// MaxLen bounds the stream (approximate trimming).
	MaxLen int64
	// BlockTimeout is the XREADGROUP block duration per poll.
	BlockTimeout time.Duration

	Logger logging.Logger
}

// Queue is the Redis Streams implementation of queue.Queue.
type Queue struct {
	client *redis.Client
	opts   Options
	logger logging.Logger

	mu        sync.Mutex
	handler   queue.Handler
	paused    bool
	closed    bool
	schedules map[string]chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates the queue, ensures the consumer group exists and starts the
// consume loop.
func New(optFns ...func(o *Options)) (*Queue, error) {
	opts := Options{
		Addr:         "localhost:6379",
		Stream:       "socialmesh:jobs",
		Group:        "socialmesh-runtime",
		Consumer:     "runtime-1",
		MaxLen:       10000,
		BlockTimeout: 5 * time.Second,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	client := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		client:    client,
		opts:      opts,
		logger:    opts.Logger,
		schedules: make(map[string]chan struct{}),
		cancel:    cancel,
	}

	err := client.XGroupCreateMkStream(ctx, opts.Stream, opts.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		cancel()
		_ = client.Close()
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	q.wg.Add(1)
	go q.consume(ctx)
	return q, nil
}

// Process implements queue.Queue.
func (q *Queue) Process(h queue.Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = h
}

// AddRecurring implements queue.Queue: a local ticker appends one firing per
// interval to the stream. Re-adding an agent replaces its schedule.
func (q *Queue) AddRecurring(ctx context.Context, agentID string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return queue.ErrClosed
	}
	if stop, ok := q.schedules[agentID]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	q.schedules[agentID] = stop

	q.wg.Add(1)
	go q.tick(agentID, interval, stop)
	return nil
}

// Remove implements queue.Queue: disarms the ticker and deletes pending
// stream entries carrying the agent id.
func (q *Queue) Remove(ctx context.Context, agentID string) error {
	q.mu.Lock()
	if stop, ok := q.schedules[agentID]; ok {
		close(stop)
		delete(q.schedules, agentID)
	}
	q.mu.Unlock()

	entries, err := q.client.XRange(ctx, q.opts.Stream, "-", "+").Result()
	if err != nil {
		return fmt.Errorf("failed to enumerate pending firings: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if id, ok := e.Values["agent_id"].(string); ok && id == agentID {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := q.client.XDel(ctx, q.opts.Stream, ids...).Err(); err != nil {
		return fmt.Errorf("failed to remove pending firings: %w", err)
	}
	q.logger.Debug("removed pending firings", "agent_id", agentID, "count", len(ids))
	return nil
}

// Pause implements queue.Queue.
func (q *Queue) Pause() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = true
}

// Resume implements queue.Queue.
func (q *Queue) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = false
}

// Close implements queue.Queue: stops all schedules and the consume loop,
// then releases the client connection. Close is idempotent.
func (q *Queue) Close() error {
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

	q.cancel()
	q.wg.Wait()
	return q.client.Close()
}

func (q *Queue) tick(agentID string, interval time.Duration, stop chan struct{}) {
	defer q.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			q.enqueue(agentID)
		}
	}
}

func (q *Queue) enqueue(agentID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.opts.Stream,
		MaxLen: q.opts.MaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"agent_id": agentID,
			"fired_at": time.Now().UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		q.logger.Error("failed to enqueue firing", "agent_id", agentID, "error", err.Error())
	}
}

func (q *Queue) consume(ctx context.Context) {
	defer q.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}
		q.mu.Lock()
		paused := q.paused
		q.mu.Unlock()
		if paused {
			select {
			case <-ctx.Done():
				return
			case <-time.After(q.opts.BlockTimeout):
			}
			continue
		}

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.opts.Group,
			Consumer: q.opts.Consumer,
			Streams:  []string{q.opts.Stream, ">"},
			Count:    10,
			Block:    q.opts.BlockTimeout,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			q.logger.Error("failed to consume firings", "error", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				q.dispatch(ctx, msg)
			}
		}
	}
}

func (q *Queue) dispatch(ctx context.Context, msg redis.XMessage) {
	job := queue.Job{ID: msg.ID, FiredAt: time.Now().UTC()}
	if agentID, ok := msg.Values["agent_id"].(string); ok {
		job.AgentID = agentID
	}
	if firedAt, ok := msg.Values["fired_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, firedAt); err == nil {
			job.FiredAt = t
		}
	}

	q.mu.Lock()
	h := q.handler
	q.mu.Unlock()

	if h != nil {
		if err := h(ctx, job); err != nil {
			q.logger.Error("job firing failed", "agent_id", job.AgentID, "job_id", job.ID, "error", err.Error())
		}
	}

	// Ack and trim regardless of handler outcome; retry policy lives with
	// the consumer, not the stream.
	ackCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := q.client.XAck(ackCtx, q.opts.Stream, q.opts.Group, msg.ID).Err(); err != nil {
		q.logger.Error("failed to ack firing", "job_id", msg.ID, "error", err.Error())
	}
	_ = q.client.XDel(ackCtx, q.opts.Stream, msg.ID).Err()
}
