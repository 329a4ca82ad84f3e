// Package core defines the shared domain model for socialmesh: the closed
// Platform enumeration, the Agent record and its factory defaults, content
// templates and generation requests/results, and the typed Event union
// exchanged over the bus.
//
// The package is deliberately free of behavior beyond construction helpers;
// orchestration lives in the bus, generator, queue and runtime packages.
package core
