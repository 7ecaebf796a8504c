package animation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kabarga/statusledd/internal/led"
	"github.com/kabarga/statusledd/internal/metrics"
)

// Steps is the number of discrete brightness increments per fade.
const Steps = 100

// fullBrightness is the top of the logical brightness scale.
const fullBrightness = 100

// holdDuration is the pause between the fade-in and fade-out phases of a
// blink, and the gap between LEDs in the connect sequence.
const holdDuration = 100 * time.Millisecond

// Engine executes timed brightness animations against an LED driver and
// tracks the last written level per LED so fades can ramp from current
// levels without querying hardware.
//
// All animation methods are expected to run on a single worker goroutine;
// Levels is the only method safe to call from other goroutines.
type Engine struct {
	drv    led.Driver
	clock  Clock
	logger *slog.Logger

	mu     sync.Mutex
	levels [led.Count]uint8
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the real clock, used by tests to run animations in
// virtual time.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// NewEngine creates an animation engine driving drv.
func NewEngine(drv led.Driver, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		drv:    drv,
		clock:  realClock{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Levels returns a snapshot of the last written brightness per LED.
func (e *Engine) Levels() [led.Count]uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levels
}

// set writes one brightness value through the driver and records it.
// Driver errors are logged and swallowed: the underlying LED layer is
// fail-silent and an indicator animation has nowhere to surface them.
func (e *Engine) set(i led.Index, percent uint8) {
	if err := e.drv.SetBrightness(i, percent); err != nil {
		e.logger.Debug("LED write failed", "led", i, "percent", percent, "error", err)
	}
	e.mu.Lock()
	e.levels[i] = percent
	e.mu.Unlock()
	metrics.SetLEDBrightness(int(i), percent)
}

// level reads the cached brightness for one LED.
func (e *Engine) level(i led.Index) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levels[i]
}

// Off turns every LED off through the driver. It deliberately does not touch
// the brightness cache; callers that need coherent fades afterwards must
// re-fade rather than rely on cached levels.
func (e *Engine) Off() {
	for i := led.Index(0); i < led.Count; i++ {
		if err := e.drv.Off(i); err != nil {
			e.logger.Debug("LED off failed", "led", i, "error", err)
		}
		metrics.SetLEDBrightness(int(i), 0)
	}
}

// FadeIn ramps one LED from 0 to full brightness over duration, in Steps+1
// samples inclusive of both endpoints.
func (e *Engine) FadeIn(ctx context.Context, i led.Index, duration time.Duration) {
	stepDelay := duration / Steps
	for step := 0; step <= Steps; step++ {
		e.set(i, uint8(fullBrightness*step/Steps))
		if !e.clock.Sleep(ctx, stepDelay) {
			return
		}
	}
}

// FadeOutAll fades every LED down to off over duration. Each step scales the
// LED's current cached level by j/Steps, so LEDs at different levels fade out
// proportionally and animations can hand over without a visible jump.
func (e *Engine) FadeOutAll(ctx context.Context, duration time.Duration) {
	stepDelay := duration / Steps
	for j := Steps; j >= 0; j-- {
		for i := led.Index(0); i < led.Count; i++ {
			cur := e.level(i)
			e.set(i, uint8(int(cur)*j/Steps))
		}
		if !e.clock.Sleep(ctx, stepDelay) {
			return
		}
	}
}

// Blink fades the masked LEDs in and out count times. LEDs outside the mask
// are left untouched. Each half of the cycle takes duration/2, with a fixed
// hold between and after the phases.
func (e *Engine) Blink(ctx context.Context, mask Mask, count int, duration time.Duration) {
	stepDelay := duration / (2 * Steps)
	for rep := 0; rep < count; rep++ {
		for step := 0; step <= Steps; step++ {
			for i := led.Index(0); i < led.Count; i++ {
				if mask.On(i) {
					e.set(i, uint8(fullBrightness*step/Steps))
				}
			}
			if !e.clock.Sleep(ctx, stepDelay) {
				return
			}
		}

		if !e.clock.Sleep(ctx, holdDuration) {
			return
		}

		for j := Steps; j >= 0; j-- {
			for i := led.Index(0); i < led.Count; i++ {
				if mask.On(i) {
					cur := e.level(i)
					e.set(i, uint8(int(cur)*j/Steps))
				}
			}
			if !e.clock.Sleep(ctx, stepDelay) {
				return
			}
		}

		if !e.clock.Sleep(ctx, holdDuration) {
			return
		}
	}
}

// ConnectSequence runs the USB-connected animation: each LED fades in one
// after another with a short gap, then all fade out together.
func (e *Engine) ConnectSequence(ctx context.Context, duration time.Duration) {
	for i := led.Index(0); i < led.Count; i++ {
		e.FadeIn(ctx, i, duration)
		if !e.clock.Sleep(ctx, holdDuration) {
			return
		}
	}
	if !e.clock.Sleep(ctx, holdDuration) {
		return
	}
	e.FadeOutAll(ctx, duration)
}
