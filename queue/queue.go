package queue

import (
	"context"
	"time"
)

// Job is one firing of an agent's recurring generation task. Jobs carry no
// state between firings; the agent id is the only correlation key.
type Job struct {
	ID      string
	AgentID string
	FiredAt time.Time
}

// Handler processes a single job firing. A returned error marks the firing
// failed; the queue backend owns any retry policy.
type Handler func(ctx context.Context, job Job) error

// Queue is the scheduling backend consumed by the runtime. Implementations
// must tolerate Pause/Resume/Close in any order and treat removal of an
// unknown agent as a no-op.
type Queue interface {
	// AddRecurring arms a recurring job for an agent at a fixed interval.
	// Re-adding an agent replaces its existing schedule.
	AddRecurring(ctx context.Context, agentID string, interval time.Duration) error

	// Remove disarms the recurring job and drops pending firings for the
	// agent.
	Remove(ctx context.Context, agentID string) error

	// Process installs the handler invoked for each firing. It must be
	// called before the first firing is dispatched.
	Process(h Handler)

	// Pause stops dispatching firings without discarding schedules.
	Pause()

	// Resume restarts dispatching after Pause.
	Resume()

	// Close releases all schedules and any underlying connection. Close is
	// idempotent.
	Close() error
}
