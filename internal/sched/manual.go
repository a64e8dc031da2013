package sched

import "time"

// Manual is a deterministic Scheduler for tests: nothing fires until the
// test advances time or ticks explicitly.
type Manual struct {
	tasks []*manualTask
}

// NewManual creates a manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Defer implements Scheduler.
func (m *Manual) Defer(fn func()) Handle {
	return m.add(0, fn, true)
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, fn, false)
}

// Tick fires every deferred callback scheduled via Defer.
func (m *Manual) Tick() {
	m.run(func(t *manualTask) bool { return t.deferred })
}

// Advance fires every delayed callback whose remaining delay is within d,
// and shortens the rest.
func (m *Manual) Advance(d time.Duration) {
	for _, t := range m.tasks {
		if !t.deferred {
			t.delay -= d
		}
	}
	m.run(func(t *manualTask) bool { return !t.deferred && t.delay <= 0 })
}

// Pending returns the number of callbacks still scheduled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *Manual) add(d time.Duration, fn func(), deferred bool) Handle {
	t := &manualTask{fn: fn, delay: d, deferred: deferred}
	m.tasks = append(m.tasks, t)
	return t
}

// run fires matching tasks and compacts the task list. Callbacks may schedule
// new work; anything scheduled during a run waits for the next Tick/Advance.
func (m *Manual) run(match func(*manualTask) bool) {
	due := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.done && match(t) {
			t.done = true
			due = append(due, t)
		}
	}
	remaining := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			remaining = append(remaining, t)
		}
	}
	m.tasks = remaining
	for _, t := range due {
		t.fn()
	}
}

type manualTask struct {
	fn       func()
	delay    time.Duration
	deferred bool
	done     bool
}

func (t *manualTask) Cancel()      { t.done = true }
func (t *manualTask) Active() bool { return !t.done }
