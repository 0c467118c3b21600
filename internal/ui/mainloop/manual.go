package mainloop

import (
	"sort"
	"time"
)

type manualTask struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// ManualLoop is a virtual-clock scheduler. Time only moves through Advance,
// which makes tick sequences reproducible in tests and scripted scenarios.
// It is not safe for concurrent use.
type ManualLoop struct {
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

// NewManualLoop creates a loop whose clock starts at start.
func NewManualLoop(start time.Time) *ManualLoop {
	return &ManualLoop{now: start}
}

// Now returns the virtual clock.
func (m *ManualLoop) Now() time.Time {
	return m.now
}

// Post queues fn to run on the next Advance or RunPending.
func (m *ManualLoop) Post(fn func()) {
	m.schedule(0, fn)
}

// AfterFunc queues fn to run once the clock has moved d forward.
func (m *ManualLoop) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	task := m.schedule(d, fn)
	return func() { task.cancelled = true }
}

func (m *ManualLoop) schedule(d time.Duration, fn func()) *manualTask {
	if d < 0 {
		d = 0
	}
	m.seq++
	task := &manualTask{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

// Pending returns the number of queued, non-cancelled tasks.
func (m *ManualLoop) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// RunPending runs every task already due without moving the clock.
func (m *ManualLoop) RunPending() int {
	return m.runUntil(m.now)
}

// Advance moves the clock forward by d, running each task at its due time in
// order. Tasks scheduled by running tasks are honoured if they fall inside
// the window. It returns the number of tasks run.
func (m *ManualLoop) Advance(d time.Duration) int {
	return m.runUntil(m.now.Add(d))
}

func (m *ManualLoop) runUntil(target time.Time) int {
	ran := 0
	for {
		task := m.popDue(target)
		if task == nil {
			break
		}
		if task.due.After(m.now) {
			m.now = task.due
		}
		task.fn()
		ran++
	}
	if target.After(m.now) {
		m.now = target
	}
	return ran
}

func (m *ManualLoop) popDue(target time.Time) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due.Equal(m.tasks[j].due) {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due.Before(m.tasks[j].due)
	})

	next := m.tasks[0]
	if next.due.After(target) {
		return nil
	}
	m.tasks = m.tasks[1:]
	return next
}
