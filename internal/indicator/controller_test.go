package indicator

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/kabarga/statusledd/internal/animation"
	"github.com/kabarga/statusledd/internal/events"
	"github.com/kabarga/statusledd/internal/led"
	"github.com/kabarga/statusledd/internal/workqueue"
)

type instantClock struct{}

func (instantClock) Sleep(ctx context.Context, _ time.Duration) bool {
	return ctx.Err() == nil
}

type recordingDriver struct {
	mu     sync.Mutex
	writes map[led.Index][]uint8
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{writes: make(map[led.Index][]uint8)}
}

func (d *recordingDriver) SetBrightness(i led.Index, percent uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes[i] = append(d.writes[i], percent)
	return nil
}

func (d *recordingDriver) Off(led.Index) error { return nil }

func (d *recordingDriver) writeCount(i led.Index) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.writes[i])
}

func (d *recordingDriver) peak(i led.Index) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var peak uint8
	for _, w := range d.writes[i] {
		if w > peak {
			peak = w
		}
	}
	return peak
}

type fakeBLE struct {
	mu        sync.Mutex
	connected bool
}

func (f *fakeBLE) ActiveProfileConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

type fakeBattery struct {
	level uint8
}

func (f *fakeBattery) StateOfCharge() uint8 { return f.level }

func newTestController(t *testing.T, ble *fakeBLE, battery *fakeBattery, cfg Config) (*Controller, *recordingDriver) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	drv := newRecordingDriver()
	engine := animation.NewEngine(drv, logger, animation.WithClock(instantClock{}))
	queue := workqueue.New(logger)
	bus := events.New()
	return New(engine, queue, bus, ble, battery, cfg, logger), drv
}

func TestController_ProfileOutOfRangeIgnored(t *testing.T) {
	c, _ := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.onProfileChanged(events.ProfileChangedEvent{Index: 1})
	c.onProfileChanged(events.ProfileChangedEvent{Index: 5})
	c.onProfileChanged(events.ProfileChangedEvent{Index: -1})

	if got := c.Snapshot().ProfileIndex; got != 1 {
		t.Errorf("Expected stored profile index 1 after out-of-range events, got %d", got)
	}
}

func TestController_ProfileBlinkArmsCheckLoop(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.onProfileChanged(events.ProfileChangedEvent{Index: 1})
	c.runProfileBlink(context.Background())

	// Profile 1 blinks LED 1 only.
	if drv.writeCount(1) == 0 {
		t.Error("Expected LED 1 writes for profile 1 blink")
	}
	for _, other := range []led.Index{0, 2, 3} {
		if drv.writeCount(other) != 0 {
			t.Errorf("LED %d should not be written for profile 1 blink", other)
		}
	}

	if !c.Snapshot().Checking {
		t.Error("Expected disconnect-check loop armed after profile blink")
	}
}

func TestController_ConnectivityCheckClearsOnBLE(t *testing.T) {
	ble := &fakeBLE{connected: true}
	c, drv := newTestController(t, ble, &fakeBattery{level: 100}, Config{})

	c.mu.Lock()
	c.check = stateChecking
	c.mu.Unlock()

	c.runConnectivityCheck(context.Background())

	if c.Snapshot().Checking {
		t.Error("Expected check loop cleared while BLE is connected")
	}
	if drv.writeCount(0) != 0 {
		t.Error("Expected no disconnect blink while BLE is connected")
	}
}

func TestController_ConnectivityCheckClearsOnUSB(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.mu.Lock()
	c.check = stateChecking
	c.usbState = events.USBHID
	c.mu.Unlock()

	c.runConnectivityCheck(context.Background())

	if c.Snapshot().Checking {
		t.Error("Expected check loop cleared while USB is connected")
	}
	if drv.writeCount(0) != 0 {
		t.Error("Expected no disconnect blink while USB is connected")
	}
}

func TestController_ConnectivityCheckBlinksWhileDisconnected(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.mu.Lock()
	c.check = stateChecking
	c.mu.Unlock()

	c.runConnectivityCheck(context.Background())

	if drv.writeCount(0) == 0 {
		t.Error("Expected disconnect blink on LED 0")
	}
	for _, other := range []led.Index{1, 2, 3} {
		if drv.writeCount(other) != 0 {
			t.Errorf("LED %d should not blink during disconnect check", other)
		}
	}
	if !c.Snapshot().Checking {
		t.Error("Expected check loop still armed while disconnected")
	}
}

func TestController_ConnectivityCheckStaleInvocation(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	// Loop was cleared before this invocation ran.
	c.runConnectivityCheck(context.Background())

	if drv.writeCount(0) != 0 {
		t.Error("Stale check invocation should not blink")
	}
}

func TestController_USBPoweredRunsConnectSequence(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.onUSBConnStateChanged(events.USBConnStateChangedEvent{State: events.USBPowered})
	c.runUSBConnection(context.Background())
	c.runUSBAnimation(context.Background())

	for i := led.Index(0); i < led.Count; i++ {
		if drv.peak(i) != 100 {
			t.Errorf("LED %d: expected connect sequence to reach 100, peaked at %d", i, drv.peak(i))
		}
	}
	if c.Snapshot().Checking {
		t.Error("Powered USB should not arm the disconnect-check loop")
	}
}

func TestController_USBDisconnectedArmsCheckLoop(t *testing.T) {
	c, _ := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.onUSBConnStateChanged(events.USBConnStateChangedEvent{State: events.USBNone})
	c.runUSBConnection(context.Background())

	if !c.Snapshot().Checking {
		t.Error("Expected disconnect-check loop armed when USB disconnects")
	}
}

func TestController_SuspendFadesOut(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{SuspendFadeOut: true})

	c.onUSBConnStateChanged(events.USBConnStateChangedEvent{State: events.USBSuspended})
	c.runUSBAnimation(context.Background())

	// A fade-out from dark LEDs never raises brightness; the connect
	// sequence would have peaked at 100.
	for i := led.Index(0); i < led.Count; i++ {
		if drv.peak(i) != 0 {
			t.Errorf("LED %d: expected fade-out only on suspend, peaked at %d", i, drv.peak(i))
		}
	}
}

func TestController_ShowBattery(t *testing.T) {
	c, drv := newTestController(t, &fakeBLE{}, &fakeBattery{level: 100}, Config{})

	c.Start()
	defer c.Stop()

	c.ShowBattery()
	time.Sleep(200 * time.Millisecond)

	// Full battery blinks LEDs 0-2, never LED 3.
	for _, i := range []led.Index{0, 1, 2} {
		if drv.peak(i) != 100 {
			t.Errorf("LED %d: expected battery blink to reach 100, peaked at %d", i, drv.peak(i))
		}
	}
	if drv.writeCount(3) != 0 {
		t.Error("LED 3 should stay dark for a full battery")
	}
}
