// Package indicator maps device state changes to status LED animations.
// Event listeners record state and enqueue work; every animation runs on the
// single workqueue goroutine, so LED writes never interleave.
package indicator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kabarga/statusledd/internal/animation"
	"github.com/kabarga/statusledd/internal/events"
	"github.com/kabarga/statusledd/internal/metrics"
	"github.com/kabarga/statusledd/internal/workqueue"
)

// Fixed animation durations.
const (
	profileFadeDuration    = 400 * time.Millisecond
	batteryFadeDuration    = 800 * time.Millisecond
	usbFadeDuration        = 400 * time.Millisecond
	disconnectFadeDuration = 300 * time.Millisecond
)

const (
	// checkInterval is how often the disconnect-check loop re-arms itself
	// while connectivity is unresolved.
	checkInterval = 4 * time.Second

	// startupDelay defers the first battery animation past boot.
	startupDelay = time.Second

	// maxProfileIndex is the highest BLE profile the shield indicates.
	maxProfileIndex = 2
)

// disconnectMask blinks LED 0 while connectivity is unresolved.
const disconnectMask animation.Mask = 0b1000

// checkState is the disconnect-check loop state.
type checkState uint8

const (
	stateIdle checkState = iota
	stateChecking
)

// BLEStatus reports connectivity of the active BLE profile.
type BLEStatus interface {
	ActiveProfileConnected() bool
}

// BatterySource reports the battery state of charge (0-100).
type BatterySource interface {
	StateOfCharge() uint8
}

// Config holds indicator feature toggles.
type Config struct {
	// SuspendFadeOut fades all LEDs out when USB suspend is observed,
	// instead of running the connect animation.
	SuspendFadeOut bool
}

// Status is a snapshot of the indicator state for external readers.
type Status struct {
	ProfileIndex int    `json:"profile_index" doc:"Last selected BLE profile index"`
	USBState     string `json:"usb_state" doc:"Last observed USB connection state"`
	Checking     bool   `json:"checking" doc:"Whether the disconnect-check loop is active"`
}

// Controller owns all indicator state and wires bus events to animations.
// Mutable scalars live behind one mutex so listener and worker contexts can
// both read them safely.
type Controller struct {
	engine  *animation.Engine
	queue   *workqueue.Queue
	bus     *events.Bus
	ble     BLEStatus
	battery BatterySource
	cfg     Config
	logger  *slog.Logger

	mu           sync.Mutex
	check        checkState
	profileIndex int
	usbState     events.USBConnState

	batteryWork *workqueue.Work
	profileWork *workqueue.Work
	usbConnWork *workqueue.Work
	usbAnimWork *workqueue.Work
	checkWork   *workqueue.Work

	unsubs []func()
}

// New creates an indicator controller. Call Start to begin processing.
func New(engine *animation.Engine, queue *workqueue.Queue, bus *events.Bus,
	ble BLEStatus, battery BatterySource, cfg Config, logger *slog.Logger) *Controller {

	c := &Controller{
		engine:  engine,
		queue:   queue,
		bus:     bus,
		ble:     ble,
		battery: battery,
		cfg:     cfg,
		logger:  logger,
	}
	c.batteryWork = workqueue.NewWork("battery_status", c.runBatteryStatus)
	c.profileWork = workqueue.NewWork("profile_blink", c.runProfileBlink)
	c.usbConnWork = workqueue.NewWork("usb_connection", c.runUSBConnection)
	c.usbAnimWork = workqueue.NewWork("usb_animation", c.runUSBAnimation)
	c.checkWork = workqueue.NewWork("connectivity_check", c.runConnectivityCheck)
	return c
}

// Start zeroes the LEDs, starts the worker queue, subscribes the bus
// listeners, and schedules the boot battery animation.
func (c *Controller) Start() {
	c.engine.Off()
	c.queue.Start()
	c.unsubs = append(c.unsubs,
		c.bus.Subscribe(c.onProfileChanged),
		c.bus.Subscribe(c.onUSBConnStateChanged),
		c.bus.Subscribe(c.onBatteryReport),
	)
	c.queue.Schedule(c.batteryWork, startupDelay)
	c.logger.Info("Indicator controller started")
}

// Stop unsubscribes the listeners and stops the worker queue, cancelling any
// running animation.
func (c *Controller) Stop() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
	c.queue.Stop()
	c.logger.Info("Indicator controller stopped")
}

// ShowBattery enqueues the battery status animation immediately.
func (c *Controller) ShowBattery() {
	c.queue.Schedule(c.batteryWork, 0)
}

// HideBattery is a placeholder; battery animations run to completion and
// there is nothing to tear down yet.
func (c *Controller) HideBattery() {}

// Snapshot returns the current indicator state.
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		ProfileIndex: c.profileIndex,
		USBState:     c.usbState.String(),
		Checking:     c.check == stateChecking,
	}
}

// --- bus listeners (event-dispatch context: record state, enqueue only) ---

func (c *Controller) onProfileChanged(e events.ProfileChangedEvent) {
	metrics.CountEvent("profile_changed")
	if e.Index < 0 || e.Index > maxProfileIndex {
		// Out-of-range profiles are not indicated; stored state is untouched.
		c.logger.Debug("Ignoring out-of-range profile index", "index", e.Index)
		return
	}
	c.mu.Lock()
	c.profileIndex = e.Index
	c.mu.Unlock()
	c.queue.Schedule(c.profileWork, 0)
}

func (c *Controller) onUSBConnStateChanged(e events.USBConnStateChangedEvent) {
	metrics.CountEvent("usb_conn_state_changed")
	c.mu.Lock()
	c.usbState = e.State
	c.mu.Unlock()
	c.queue.Schedule(c.usbConnWork, 0)
}

func (c *Controller) onBatteryReport(e events.BatteryReportEvent) {
	metrics.CountEvent("battery_report")
	metrics.SetBatteryPercent(e.Percent)
}

// --- worker handlers (workqueue context: free to animate) ---

func (c *Controller) runBatteryStatus(ctx context.Context) {
	level := c.battery.StateOfCharge()
	metrics.SetBatteryPercent(level)
	mask, count := BatteryPattern(level)
	c.logger.Debug("Battery status animation", "percent", level, "count", count)
	metrics.CountAnimation("battery")
	c.engine.Blink(ctx, mask, count, batteryFadeDuration)
}

func (c *Controller) runProfileBlink(ctx context.Context) {
	c.mu.Lock()
	idx := c.profileIndex
	c.mu.Unlock()
	metrics.CountAnimation("profile")
	c.engine.Blink(ctx, animation.ProfileMask(idx), 1, profileFadeDuration)

	c.mu.Lock()
	idle := c.check == stateIdle
	if idle {
		c.check = stateChecking
	}
	c.mu.Unlock()
	if idle {
		c.queue.Schedule(c.checkWork, checkInterval)
	}
}

func (c *Controller) runUSBConnection(ctx context.Context) {
	c.mu.Lock()
	state := c.usbState
	c.mu.Unlock()

	if state == events.USBPowered {
		c.queue.Schedule(c.usbAnimWork, 0)
		return
	}

	c.mu.Lock()
	c.check = stateChecking
	c.mu.Unlock()
	c.queue.Schedule(c.checkWork, checkInterval)
}

func (c *Controller) runUSBAnimation(ctx context.Context) {
	if c.cfg.SuspendFadeOut {
		c.mu.Lock()
		state := c.usbState
		c.mu.Unlock()
		if state == events.USBSuspended {
			metrics.CountAnimation("suspend_fade_out")
			c.engine.FadeOutAll(ctx, disconnectFadeDuration)
			return
		}
	}
	metrics.CountAnimation("usb_connect")
	c.engine.ConnectSequence(ctx, usbFadeDuration)
}

// runConnectivityCheck is the disconnect-check loop: while neither BLE nor
// USB connectivity is observed it blinks and re-arms itself every
// checkInterval, with no backoff and no attempt limit.
func (c *Controller) runConnectivityCheck(ctx context.Context) {
	c.mu.Lock()
	if c.check != stateChecking {
		// Stale invocation after the loop was cleared.
		c.mu.Unlock()
		return
	}
	usb := c.usbState
	c.mu.Unlock()

	if c.ble.ActiveProfileConnected() || usb != events.USBNone {
		c.mu.Lock()
		c.check = stateIdle
		c.mu.Unlock()
		c.logger.Debug("Connectivity restored, disconnect-check loop cleared")
		return
	}

	metrics.CountDisconnectCheck()
	metrics.CountAnimation("disconnect")
	c.engine.Blink(ctx, disconnectMask, 1, disconnectFadeDuration)
	c.queue.Schedule(c.checkWork, checkInterval)
}
