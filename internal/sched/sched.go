// Package sched provides cancellable scheduled callbacks: one-tick deferrals
// (used to arm dismiss listeners after the triggering click has passed) and
// delay timers (used to debounce hover-affordance hiding). Every handle is
// cancellable and safe to cancel more than once; teardown cancels everything
// outstanding.
package sched

import (
	"sync"
	"time"
)

// Handle represents a scheduled callback that has not necessarily fired yet.
type Handle interface {
	// Cancel stops the callback from firing. Idempotent.
	Cancel()

	// Active reports whether the callback is still pending.
	Active() bool
}

// Scheduler schedules callbacks for later execution.
type Scheduler interface {
	// Defer schedules fn to run on the next scheduling tick.
	Defer(fn func()) Handle

	// After schedules fn to run once d has elapsed.
	After(d time.Duration, fn func()) Handle
}

// TimerScheduler implements Scheduler with real timers. Callbacks fire on a
// timer goroutine; hosts with a single-threaded event loop should supply a
// dispatch function that re-posts callbacks onto that loop.
type TimerScheduler struct {
	dispatch func(fn func())
}

// Option configures a TimerScheduler.
type Option func(*TimerScheduler)

// WithDispatch routes fired callbacks through fn, typically posting them
// onto the host's event loop.
func WithDispatch(fn func(func())) Option {
	return func(s *TimerScheduler) {
		s.dispatch = fn
	}
}

// NewTimerScheduler creates a timer-backed scheduler.
func NewTimerScheduler(opts ...Option) *TimerScheduler {
	s := &TimerScheduler{
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defer implements Scheduler. A zero-delay timer is the closest analogue of
// a scheduling-tick deferral.
func (s *TimerScheduler) Defer(fn func()) Handle {
	return s.After(0, fn)
}

// After implements Scheduler.
func (s *TimerScheduler) After(d time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.timer = time.AfterFunc(d, func() {
		if !h.fire() {
			return
		}
		s.dispatch(fn)
	})
	return h
}

type timerHandle struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

// fire marks the handle fired; false when it was already cancelled.
func (h *timerHandle) fire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return false
	}
	h.done = true
	return true
}

func (h *timerHandle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return
	}
	h.done = true
	h.timer.Stop()
}

func (h *timerHandle) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.done
}
