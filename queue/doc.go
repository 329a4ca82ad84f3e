// Package queue defines the scheduling backend behind the runtime's
// recurring generation jobs: arm a per-agent schedule at a fixed interval,
// dispatch each firing to a handler, and support pause/resume/close plus
// removal by agent id.
//
// Two implementations are provided: InMemory (per-agent tickers, default)
// and the redis subpackage, which routes firings through a Redis Stream so
// dispatch survives transient consumer restarts.
package queue
