// Package workqueue provides a single-worker delayed work queue. All work
// scheduled on a queue executes on one goroutine, one item at a time, so
// queue users never need their own locking around the resources the work
// touches.
package workqueue

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Work is a schedulable unit: a named function bound to a queue for its
// lifetime. The same *Work can be scheduled repeatedly; scheduling it while
// it is already pending moves its due time instead of double-queuing it.
type Work struct {
	name string
	fn   func(ctx context.Context)
}

// NewWork creates a work item. The context passed to fn is cancelled when
// the queue stops; long-running work should honor it.
func NewWork(name string, fn func(ctx context.Context)) *Work {
	return &Work{name: name, fn: fn}
}

// Name returns the work item's name.
func (w *Work) Name() string { return w.name }

type scheduleReq struct {
	work *Work
	due  time.Time
}

// Queue serializes delayed work onto a single executor goroutine.
// A separate scheduler goroutine tracks due times so that rescheduling is
// possible while a previous item is still executing.
type Queue struct {
	logger *slog.Logger
	submit chan scheduleReq
	execCh chan *Work
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped queue; call Start before scheduling.
func New(logger *slog.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		logger: logger,
		submit: make(chan scheduleReq, 32),
		execCh: make(chan *Work, 32),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the scheduler and executor goroutines.
func (q *Queue) Start() {
	q.wg.Add(2)
	go q.scheduleLoop()
	go q.execLoop()
}

// Stop cancels all pending and running work and waits for the goroutines to
// exit.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// Schedule arms w to run after delay. If w is already pending, its due time
// is replaced (cancel-and-rearm); if w is currently executing, the new
// invocation queues behind it. Returns false if the queue is stopped.
func (q *Queue) Schedule(w *Work, delay time.Duration) bool {
	select {
	case <-q.ctx.Done():
		return false
	default:
	}
	select {
	case q.submit <- scheduleReq{work: w, due: time.Now().Add(delay)}:
		return true
	case <-q.ctx.Done():
		return false
	}
}

// scheduleLoop owns the pending set and dispatches due work to the executor
// in due-time order.
func (q *Queue) scheduleLoop() {
	defer q.wg.Done()

	pending := make(map[*Work]time.Time)
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		if !timer.Stop() {
			drainTimer(timer)
		}
		if next, ok := minDue(pending); ok {
			d := time.Until(next)
			if d < 0 {
				d = 0
			}
			timer.Reset(d)
		} else {
			timer.Reset(time.Hour)
		}

		select {
		case <-q.ctx.Done():
			return

		case req := <-q.submit:
			pending[req.work] = req.due

		case <-timer.C:
			now := time.Now()
			for _, w := range takeDue(pending, now) {
				select {
				case q.execCh <- w:
				case <-q.ctx.Done():
					return
				}
			}
		}
	}
}

// execLoop runs dispatched work strictly one at a time.
func (q *Queue) execLoop() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case w := <-q.execCh:
			q.logger.Debug("Running work", "work", w.name)
			w.fn(q.ctx)
		}
	}
}

// takeDue removes and returns all work due at or before now, ordered by due
// time so FIFO holds among distinct items.
func takeDue(pending map[*Work]time.Time, now time.Time) []*Work {
	var due []*Work
	for w, t := range pending {
		if !now.Before(t) {
			due = append(due, w)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return pending[due[i]].Before(pending[due[j]])
	})
	for _, w := range due {
		delete(pending, w)
	}
	return due
}

func minDue(pending map[*Work]time.Time) (time.Time, bool) {
	var min time.Time
	for _, t := range pending {
		if min.IsZero() || t.Before(min) {
			min = t
		}
	}
	return min, !min.IsZero()
}

func drainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
