// Package bus implements the in-process event bus that decouples content
// generation from publication.
//
// The bus fans each published event out to all handlers registered for its
// type. Fan-out is concurrent and unordered; a handler error or panic is
// caught, logged and counted without affecting sibling handlers or the
// publisher. Publish blocks until every handler has settled, which lets a
// caller emit an event and know all synchronous consequences (such as the
// runtime's publication bridge) have run before it returns.
//
// The bus holds no persistence and makes no delivery guarantees beyond the
// lifetime of the process.
package bus
