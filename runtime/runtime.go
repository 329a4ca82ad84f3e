package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/socialmesh/bus"
	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/generator"
	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/metrics"
	"github.com/hupe1980/socialmesh/platform"
	"github.com/hupe1980/socialmesh/queue"
)

// Options configures a Runtime.
type Options struct {
	// Logger receives runtime diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Interval is the recurring-job cadence applied to newly registered
	// agents. Defaults to one hour.
	Interval time.Duration
	// CallTimeout bounds each external call (engine generation, adapter
	// post). A hung collaborator stalls only its own firing, and only up to
	// this limit. Defaults to two minutes.
	CallTimeout time.Duration
	// TemplateID names the template used by recurring jobs. Defaults to
	// generator.DefaultTemplateID.
	TemplateID string
}

// Runtime owns the agent table and platform-adapter bindings, drives the
// recurring generation jobs, and bridges generation to publication over the
// event bus: every job firing publishes CONTENT_CREATED, and the runtime's
// own subscriber reacts by resolving the bound adapter, posting, and
// emitting CONTENT_PUBLISHED on success.
//
// The agent table and adapter map are mutated only by the public
// registration calls, serialized by an RWMutex against job firings that
// read them.
type Runtime struct {
	bus        *bus.Bus
	gen        *generator.Generator
	queue      queue.Queue
	logger     logging.Logger
	interval   time.Duration
	timeout    time.Duration
	templateID string

	mu       sync.RWMutex
	agents   map[string]*core.Agent
	adapters map[core.Platform]platform.Adapter
	started  bool
	runCtx   context.Context
	cancel   context.CancelFunc

	sub *bus.Subscription
}

// New wires a Runtime to its collaborators. The runtime subscribes itself to
// CONTENT_CREATED and installs its job handler on the queue; scheduling
// stays paused until Start.
func New(b *bus.Bus, gen *generator.Generator, q queue.Queue, optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Logger:      logging.NoOpLogger{},
		Interval:    time.Hour,
		CallTimeout: 2 * time.Minute,
		TemplateID:  generator.DefaultTemplateID,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r := &Runtime{
		bus:        b,
		gen:        gen,
		queue:      q,
		logger:     opts.Logger,
		interval:   opts.Interval,
		timeout:    opts.CallTimeout,
		templateID: opts.TemplateID,
		agents:     make(map[string]*core.Agent),
		adapters:   make(map[core.Platform]platform.Adapter),
		runCtx:     runCtx,
		cancel:     cancel,
	}

	r.sub = b.Subscribe(core.EventContentCreated, r.handleContentCreated)
	q.Process(r.handleJob)
	q.Pause()
	return r
}

// Start resumes the scheduling backend. Safe to call once per runtime.
func (r *Runtime) Start() {
	r.mu.Lock()
	r.started = true
	r.mu.Unlock()
	r.queue.Resume()
	r.logger.Info("runtime started")
}

// Stop pauses scheduling, cancels the firing context so in-flight firings
// publish nothing further, releases the queue and its connection, and
// removes the bus subscription. Stop is idempotent.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	r.mu.Unlock()

	r.cancel()
	r.queue.Pause()
	err := r.queue.Close()
	r.bus.Unsubscribe(r.sub)
	r.logger.Info("runtime stopped")
	return err
}

// RegisterAgent creates an agent via the factory, stores it, emits exactly
// one STRATEGY_UPDATED event (synchronously, before returning) and arms the
// agent's recurring generation job.
func (r *Runtime) RegisterAgent(ctx context.Context, domain string, platforms []core.Platform) (*core.Agent, error) {
	for _, p := range platforms {
		if !p.Valid() {
			return nil, fmt.Errorf("unknown platform %q", p)
		}
	}

	agent := core.NewAgent(domain, platforms)
	agent.Strategy.PostingInterval = r.interval

	r.mu.Lock()
	r.agents[agent.ID] = agent
	r.mu.Unlock()

	r.bus.Publish(ctx, core.NewEvent(agent.ID,
		core.StrategyUpdatedPayload{Strategy: agent.Strategy},
		core.Metadata{Domain: domain, Priority: core.PriorityNormal},
	))

	if err := r.queue.AddRecurring(ctx, agent.ID, r.interval); err != nil {
		r.mu.Lock()
		delete(r.agents, agent.ID)
		r.mu.Unlock()
		return nil, fmt.Errorf("failed to schedule agent %s: %w", agent.ID, err)
	}

	r.logger.Info("agent registered", "agent_id", agent.ID, "domain", domain, "platforms", len(platforms))
	return agent, nil
}

// RegisterPlatform binds one adapter per platform value. Re-registration
// replaces the prior binding.
func (r *Runtime) RegisterPlatform(p core.Platform, a platform.Adapter) {
	r.mu.Lock()
	r.adapters[p] = a
	r.mu.Unlock()
	r.logger.Info("platform registered", "platform", p.String())
}

// Agent returns the agent record for an id.
func (r *Runtime) Agent(id string) (*core.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return agent, nil
}

// Agents returns all registered agents.
func (r *Runtime) Agents() []*core.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Agent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	return out
}

// StartAgent re-arms the recurring job for a stopped agent.
func (r *Runtime) StartAgent(ctx context.Context, id string) error {
	if _, err := r.Agent(id); err != nil {
		return err
	}
	return r.queue.AddRecurring(ctx, id, r.interval)
}

// StopAgent disarms the recurring job and drops pending firings for one
// agent without discarding the agent record.
func (r *Runtime) StopAgent(ctx context.Context, id string) error {
	if _, err := r.Agent(id); err != nil {
		return err
	}
	return r.queue.Remove(ctx, id)
}

// UnregisterAgent disarms the agent's job and removes its record.
func (r *Runtime) UnregisterAgent(ctx context.Context, id string) error {
	if err := r.StopAgent(ctx, id); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.agents, id)
	r.mu.Unlock()
	r.logger.Info("agent unregistered", "agent_id", id)
	return nil
}

// handleJob executes one recurring firing: for each of the agent's platforms
// in sequence, verify the adapter binding, generate content and publish
// CONTENT_CREATED. The first failure aborts the firing: remaining platforms
// are skipped and the error is reported to the queue, which owns any retry
// policy. There is deliberately no per-platform isolation at this layer.
func (r *Runtime) handleJob(ctx context.Context, job queue.Job) error {
	start := time.Now()
	err := r.runFiring(ctx, job)
	if err != nil {
		metrics.JobFirings.WithLabelValues(metrics.StatusFailed).Inc()
		r.logger.Error("job firing failed", "agent_id", job.AgentID, "job_id", job.ID, "duration", time.Since(start).String(), "error", err.Error())
		return err
	}
	metrics.JobFirings.WithLabelValues(metrics.StatusOK).Inc()
	r.logger.Debug("job firing completed", "agent_id", job.AgentID, "job_id", job.ID, "duration", time.Since(start).String())
	return nil
}

func (r *Runtime) runFiring(ctx context.Context, job queue.Job) error {
	r.mu.RLock()
	agent, ok := r.agents[job.AgentID]
	runCtx := r.runCtx
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, job.AgentID)
	}

	for _, p := range agent.Platforms {
		if err := runCtx.Err(); err != nil {
			return err
		}
		if _, err := r.adapter(p); err != nil {
			return err
		}

		req := core.GenerationRequest{
			Domain:     agent.Domain,
			TemplateID: r.templateID,
			Variables: map[string]string{
				"domain":   agent.Domain,
				"platform": p.String(),
				"topic":    topicFor(agent),
			},
			Platforms: []core.Platform{p},
			Tone:      agent.Personality.Tone,
		}

		genCtx, cancel := context.WithTimeout(runCtx, r.timeout)
		content, err := r.gen.Generate(genCtx, req)
		cancel()
		if err != nil {
			return fmt.Errorf("generation for %s failed: %w", p, err)
		}

		// A firing already in flight when Stop is called may finish its
		// generation, but it must not publish afterwards.
		if err := runCtx.Err(); err != nil {
			return err
		}

		r.mu.Lock()
		agent.Analytics.PostsCreated++
		agent.Analytics.UpdatedAt = time.Now().UTC()
		r.mu.Unlock()

		r.bus.Publish(ctx, core.NewEvent(agent.ID,
			core.ContentCreatedPayload{Text: content.VariationFor(p), Content: *content},
			core.Metadata{Domain: agent.Domain, Platform: p, Priority: core.PriorityNormal},
		))
	}
	return nil
}

// handleContentCreated is the runtime's own CONTENT_CREATED subscriber: it
// resolves the agent and the bound adapter, posts the content, and re-emits
// the outcome as CONTENT_PUBLISHED. Failures are reported to the bus (which
// logs and isolates them); no event is emitted and nothing is retried here.
func (r *Runtime) handleContentCreated(ctx context.Context, evt core.Event) error {
	payload, ok := evt.Payload.(core.ContentCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", evt.Payload, evt.Type)
	}

	r.mu.RLock()
	agent, agentOK := r.agents[evt.AgentID]
	runCtx := r.runCtx
	r.mu.RUnlock()
	if !agentOK {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, evt.AgentID)
	}

	adapter, err := r.adapter(evt.Metadata.Platform)
	if err != nil {
		return err
	}

	postCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	result, err := adapter.Post(postCtx, payload.Text)
	if err != nil {
		metrics.Publications.WithLabelValues(evt.Metadata.Platform.String(), metrics.StatusFailed).Inc()
		return fmt.Errorf("publish to %s failed: %w", evt.Metadata.Platform, err)
	}
	metrics.Publications.WithLabelValues(evt.Metadata.Platform.String(), metrics.StatusOK).Inc()
	r.logger.Info("content published", "agent_id", agent.ID, "platform", evt.Metadata.Platform.String(), "post_id", result.ID, "duration", time.Since(start).String())

	// Discard the follow-up event if the runtime stopped mid-publish.
	if runCtx.Err() != nil {
		return nil
	}

	r.mu.Lock()
	agent.Analytics.PostsPublished++
	agent.Analytics.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()

	r.bus.Publish(ctx, core.NewEvent(evt.AgentID,
		core.ContentPublishedPayload{Text: payload.Text, Post: *result},
		evt.Metadata,
	))
	return nil
}

func (r *Runtime) adapter(p core.Platform) (platform.Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotConfigured, p)
	}
	return a, nil
}

// topicFor picks the heaviest topic from the agent's strategy, breaking ties
// lexicographically so job variables stay deterministic. Falls back to the
// agent's domain when no weights are configured.
func topicFor(agent *core.Agent) string {
	topic := ""
	best := -1.0
	for t, w := range agent.Strategy.TopicWeights {
		if w > best || (w == best && (topic == "" || t < topic)) {
			topic, best = t, w
		}
	}
	if topic == "" {
		return agent.Domain
	}
	return topic
}
