package power

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kabarga/statusledd/internal/events"
)

// USBMonitor polls a power supply's online attribute and publishes
// USBConnStateChangedEvent on every transition. It stands in for the
// firmware USB stack on hosts where USB power state is only visible through
// sysfs.
type USBMonitor struct {
	root     string
	supply   string
	interval time.Duration
	bus      *events.Bus
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewUSBMonitor creates a monitor for the named supply (e.g. "usb").
func NewUSBMonitor(supply string, interval time.Duration, bus *events.Bus, logger *slog.Logger) *USBMonitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &USBMonitor{
		root:     defaultSysfsPowerPath,
		supply:   supply,
		interval: interval,
		bus:      bus,
		logger:   logger,
	}
}

// Start begins polling. The initial state is published immediately so
// subscribers see the state at boot.
func (m *USBMonitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.loop(ctx)
	m.logger.Info("USB monitor started", "supply", m.supply, "interval", m.interval)
}

// Stop halts polling.
func (m *USBMonitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.logger.Info("USB monitor stopped")
}

func (m *USBMonitor) loop(ctx context.Context) {
	defer close(m.done)

	last := m.readState()
	m.bus.Publish(events.USBConnStateChangedEvent{State: last})

	tick := time.NewTicker(m.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			state := m.readState()
			if state == last {
				continue
			}
			m.logger.Debug("USB connection state changed", "from", last.String(), "to", state.String())
			last = state
			m.bus.Publish(events.USBConnStateChangedEvent{State: state})
		}
	}
}

// readState maps the supply's online attribute to a connection state.
// Missing or unreadable attributes mean no connection.
func (m *USBMonitor) readState() events.USBConnState {
	data, err := os.ReadFile(filepath.Join(m.root, m.supply, "online"))
	if err != nil {
		return events.USBNone
	}
	if strings.TrimSpace(string(data)) == "1" {
		return events.USBPowered
	}
	return events.USBNone
}
