// Package metrics exposes Prometheus collectors for the orchestration core.
// Collectors are registered on the default registry via promauto; hosting
// applications decide whether and where to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsPublished counts events delivered to the bus, by event type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmesh_events_published_total",
		Help: "Events published to the in-process event bus.",
	}, []string{"type"})

	// HandlerFailures counts subscriber handlers that returned an error or
	// panicked during fan-out, by event type.
	HandlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmesh_handler_failures_total",
		Help: "Event handlers that failed during fan-out.",
	}, []string{"type"})

	// JobFirings counts recurring job firings by terminal status.
	JobFirings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmesh_job_firings_total",
		Help: "Recurring generation job firings.",
	}, []string{"status"})

	// Publications counts platform publish attempts by platform and status.
	Publications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmesh_publications_total",
		Help: "Platform publish attempts.",
	}, []string{"platform", "status"})

	// EngineCalls counts generation engine invocations by provider and status.
	EngineCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmesh_engine_calls_total",
		Help: "Generation engine invocations.",
	}, []string{"provider", "status"})
)

// Status label values shared by the counters above.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)
