package ports

import "go.trai.ch/mason/internal/core/domain"

// EventSubscriber receives bus events. Handlers must be fast or hand off;
// the bus delivers sequentially per subscriber.
type EventSubscriber interface {
	HandleEvent(event domain.Event)
}

// EventBus is the process-wide publish/subscribe channel for diagnostic and
// telemetry events. It is the core's only reporting surface.
//
//go:generate go run go.uber.org/mock/mockgen -source=event_bus.go -destination=mocks/mock_event_bus.go -package=mocks
type EventBus interface {
	// Post publishes an event to all subscribers. Never blocks the
	// caller on slow subscribers beyond the bus's internal buffering.
	Post(event domain.Event)

	// Subscribe registers a subscriber. Subscribing after events were
	// posted only delivers subsequent events.
	Subscribe(sub EventSubscriber)

	// Close flushes buffered events and stops delivery.
	Close() error
}
