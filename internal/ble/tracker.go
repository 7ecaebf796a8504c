// Package ble tracks BLE profile connectivity as reported over the event
// bus. The daemon has no BLE stack of its own; whatever transport relays the
// keyboard's state publishes ProfileConnectionEvent and the tracker answers
// the indicator's connectivity queries.
package ble

import (
	"log/slog"
	"sync"

	"github.com/kabarga/statusledd/internal/events"
)

// Tracker remembers the last reported connectivity of the active profile.
type Tracker struct {
	mu        sync.Mutex
	connected bool
	unsub     func()
	logger    *slog.Logger
}

// NewTracker subscribes to profile connection events on the bus.
func NewTracker(bus *events.Bus, logger *slog.Logger) *Tracker {
	t := &Tracker{logger: logger}
	t.unsub = bus.Subscribe(func(e events.ProfileConnectionEvent) {
		t.mu.Lock()
		t.connected = e.Connected
		t.mu.Unlock()
		logger.Debug("Profile connectivity changed", "connected", e.Connected)
	})
	return t
}

// ActiveProfileConnected reports the last known connectivity.
func (t *Tracker) ActiveProfileConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// Close unsubscribes from the bus.
func (t *Tracker) Close() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
}
