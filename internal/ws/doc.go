// Package ws implements the real-time notification channel: a hub that
// fans ReviewAdded events out to every connected WebSocket listener.
// Delivery is fire-and-forget, at-most-once, with no replay buffer; a
// listener that connects after an event fires never receives it. Events
// carry a per-book topic so clients may narrow their subscription, and a
// future authorization layer can gate subscriptions without changing the
// transport.
package ws
