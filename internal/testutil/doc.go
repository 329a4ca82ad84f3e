// Package testutil provides shared helpers for socialmesh tests: an event
// recorder that captures bus traffic and scripted platform adapters with
// controllable outcomes.
package testutil
