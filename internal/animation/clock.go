package animation

import (
	"context"
	"time"
)

// Clock abstracts the per-step delay so animations can be driven by virtual
// time in tests. Sleep returns false when the context is cancelled before the
// delay elapses.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) bool
}

// realClock sleeps on a timer, honoring context cancellation.
type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
