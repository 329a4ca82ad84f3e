// Package runtime is the orchestration heart of socialmesh: it owns the
// agent table and platform-adapter bindings, drives each agent's recurring
// generation job through the scheduling backend, and bridges generation to
// publication over the event bus.
//
// The bus is the sole coupling between the two halves. A job firing only
// publishes CONTENT_CREATED; the runtime's own subscriber resolves the
// adapter and posts, emitting CONTENT_PUBLISHED on success. Additional
// subscribers can observe either event without touching the scheduler.
//
// Within one firing, platform processing is strictly sequential and the
// first failure aborts the remainder. Across agents, firings interleave
// freely.
package runtime
