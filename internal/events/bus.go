package events

import (
	"github.com/kelindar/event"
)

// Bus wraps the kelindar/event dispatcher for in-process event broadcasting.
// Publishing never blocks on LED work: subscribers receive events on the
// dispatcher's goroutines and only enqueue work from there.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(ProfileChangedEvent{Index: 1})
func (b *Bus) Publish(ev Event) {
	// Type switch to call the generic Publish with the concrete type.
	switch e := ev.(type) {
	case ProfileChangedEvent:
		event.Publish(b.dispatcher, e)
	case ProfileConnectionEvent:
		event.Publish(b.dispatcher, e)
	case USBConnStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case BatteryReportEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e ProfileChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ProfileChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ProfileConnectionEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(USBConnStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(BatteryReportEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// No-op unsubscribe for unrecognized handler types
		return func() {}
	}
}
