// Package socialmesh provides a high-level façade over the orchestration
// core (event bus, content generator, agent runtime & scheduling backend)
// enabling rapid construction of autonomous content agents. Most
// applications interact with this package by:
//  1. Creating a SocialMesh via New() (optionally overriding the engine,
//     templates, queue and logger)
//  2. Registering platform adapters and one or more agents
//  3. Calling Start to begin recurring generation cycles
//
// The façade delegates orchestration to runtime.Runtime while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments supply a real engine adapter, a
// durable queue and a structured logger.
package socialmesh

import (
	"context"
	"time"

	"github.com/hupe1980/socialmesh/bus"
	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/engine"
	"github.com/hupe1980/socialmesh/generator"
	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/platform"
	"github.com/hupe1980/socialmesh/queue"
	"github.com/hupe1980/socialmesh/runtime"
)

// Options configures the SocialMesh instance.
type Options struct {
	// Engine is the generation backend. Defaults to a MockEngine suitable
	// only for local development.
	Engine engine.Engine

	// Templates seeds the generator's registry. Defaults to
	// generator.DefaultTemplates().
	Templates []core.ContentTemplate

	// Queue is the scheduling backend. Defaults to an in-memory queue.
	Queue queue.Queue

	// Interval is the recurring-job cadence for registered agents.
	Interval time.Duration

	// CallTimeout bounds each external engine/adapter call.
	CallTimeout time.Duration

	// TemplateID selects the template used by recurring jobs.
	TemplateID string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// SocialMesh is the high-level façade aggregating the bus, generator and
// runtime.
type SocialMesh struct {
	opts    Options
	bus     *bus.Bus
	gen     *generator.Generator
	runtime *runtime.Runtime
}

// New creates a new SocialMesh instance with optional overrides. Any unset
// collaborator is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *SocialMesh {
	opts := Options{
		Engine:    engine.NewMockEngine(),
		Templates: generator.DefaultTemplates(),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Queue == nil {
		opts.Queue = queue.NewInMemory(func(o *queue.InMemoryOptions) { o.Logger = opts.Logger })
	}

	b := bus.New(func(o *bus.Options) { o.Logger = opts.Logger })
	gen := generator.New(opts.Engine, opts.Templates, func(o *generator.Options) { o.Logger = opts.Logger })
	rt := runtime.New(b, gen, opts.Queue, func(o *runtime.Options) {
		o.Logger = opts.Logger
		if opts.Interval > 0 {
			o.Interval = opts.Interval
		}
		if opts.CallTimeout > 0 {
			o.CallTimeout = opts.CallTimeout
		}
		if opts.TemplateID != "" {
			o.TemplateID = opts.TemplateID
		}
	})

	return &SocialMesh{opts: opts, bus: b, gen: gen, runtime: rt}
}

// Bus exposes the event bus so hosting applications can attach their own
// subscribers (analytics, trend watchers, audit logs).
func (m *SocialMesh) Bus() *bus.Bus { return m.bus }

// Generator exposes the content generator for ad hoc generation outside the
// recurring schedule.
func (m *SocialMesh) Generator() *generator.Generator { return m.gen }

// RegisterAgent creates and schedules an agent for a domain and platforms.
func (m *SocialMesh) RegisterAgent(ctx context.Context, domain string, platforms []core.Platform) (*core.Agent, error) {
	return m.runtime.RegisterAgent(ctx, domain, platforms)
}

// RegisterPlatform binds an adapter for a platform.
func (m *SocialMesh) RegisterPlatform(p core.Platform, a platform.Adapter) {
	m.runtime.RegisterPlatform(p, a)
}

// StartAgent re-arms the recurring job for a stopped agent.
func (m *SocialMesh) StartAgent(ctx context.Context, id string) error {
	return m.runtime.StartAgent(ctx, id)
}

// StopAgent disarms an agent's recurring job, keeping the record.
func (m *SocialMesh) StopAgent(ctx context.Context, id string) error {
	return m.runtime.StopAgent(ctx, id)
}

// UnregisterAgent disarms and removes an agent.
func (m *SocialMesh) UnregisterAgent(ctx context.Context, id string) error {
	return m.runtime.UnregisterAgent(ctx, id)
}

// Agents lists all registered agents.
func (m *SocialMesh) Agents() []*core.Agent { return m.runtime.Agents() }

// Start begins dispatching recurring generation jobs.
func (m *SocialMesh) Start() { m.runtime.Start() }

// Stop halts scheduling and releases the queue. In-flight firings finish
// but publish nothing further.
func (m *SocialMesh) Stop() error { return m.runtime.Stop() }
