// Package engine interprets a workflow against real time.
//
// Engine walks a step sequence on a single background goroutine, honoring
// per-step delays and recursing into loop and conditional bodies. A per-run
// Signal makes the walk cancellable at every delay and dispatch boundary;
// an in-flight leaf action is never interrupted. Controller owns the
// run/stop lifecycle and reports state transitions to the UI.
package engine
