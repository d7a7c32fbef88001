// Package eventing carries the app-wide domain event bus and the
// scheduled-intent workflow engine that feeds it.
package eventing

import "sync"

// EventKind identifies one of the fixed, closed set of domain events.
type EventKind string

const (
	EventLotRegistered          EventKind = "lot.registered"
	EventLotVerified            EventKind = "lot.verified"
	EventOfferCreated           EventKind = "offer.created"
	EventShipmentScheduled      EventKind = "shipment.scheduled"
	EventCertificationRequested EventKind = "certification.requested"
)

// Kinds returns every event kind the bus can carry.
func Kinds() []EventKind {
	return []EventKind{
		EventLotRegistered,
		EventLotVerified,
		EventOfferCreated,
		EventShipmentScheduled,
		EventCertificationRequested,
	}
}

// Event is a domain event with a kind-specific payload, e.g. {"lotId": ...}.
type Event struct {
	Kind    EventKind         `json:"kind"`
	Payload map[string]string `json:"payload"`
}

// Handler receives dispatched events. Handlers run synchronously on the
// emitter's goroutine; a panicking handler propagates to the emitter.
type Handler func(Event)

// Bus is a process-wide publish/subscribe dispatcher. There is no
// unsubscribe, no backpressure, and no persistence.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]Handler)}
}

// Subscribe registers a handler for the given kind.
func (b *Bus) Subscribe(kind EventKind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Emit dispatches the event synchronously to every subscriber of its kind,
// in subscription order.
func (b *Bus) Emit(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Kind]))
	copy(handlers, b.handlers[event.Kind])
	b.mu.RUnlock()
	for _, handler := range handlers {
		handler(event)
	}
}
