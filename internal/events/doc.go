// Package events defines the closed set of typed domain events and the
// in-process emitter that fans them out to registered handlers. Delivery
// is synchronous and best-effort: a failing handler never affects the
// state change that produced the event.
package events
