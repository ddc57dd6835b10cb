package sim

import (
	"sort"
	"time"
)

// Task is a one-shot deferred action. A cancelled task never fires.
type Task struct {
	fireAt    time.Duration
	seq       uint64
	label     string
	action    func()
	cancelled bool
	fired     bool
}

// Cancel prevents the task from firing. Cancelling a fired task is a no-op.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether Cancel was called before the task fired.
func (t *Task) Cancelled() bool {
	return t.cancelled && !t.fired
}

// Fired reports whether the action ran.
func (t *Task) Fired() bool {
	return t.fired
}

// FireAt returns the scheduler time the task is due at.
func (t *Task) FireAt() time.Duration {
	return t.fireAt
}

// Label returns the task description used in logs.
func (t *Task) Label() string {
	return t.label
}

// Scheduler holds deferred tasks on a virtual clock advanced by the session
// tick. Tasks fire in order of due time, then scheduling order.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*Task

	// guard is consulted before each task fires; a false result drops the
	// task without running it.
	guard func() bool
}

// NewScheduler creates a scheduler at time zero. A nil guard always allows.
func NewScheduler(guard func() bool) *Scheduler {
	return &Scheduler{guard: guard}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules action to run once delay has elapsed.
func (s *Scheduler) After(delay time.Duration, label string, action func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{
		fireAt: s.now + delay,
		seq:    s.seq,
		label:  label,
		action: action,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by delta and runs every due task.
// It returns the number of actions that ran.
func (s *Scheduler) Advance(delta time.Duration) int {
	if delta > 0 {
		s.now += delta
	}

	var due, pending []*Task
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case t.fireAt <= s.now:
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	s.tasks = pending

	sort.Slice(due, func(i, j int) bool {
		if due[i].fireAt != due[j].fireAt {
			return due[i].fireAt < due[j].fireAt
		}
		return due[i].seq < due[j].seq
	})

	ran := 0
	for _, t := range due {
		if t.cancelled {
			continue
		}
		if s.guard != nil && !s.guard() {
			t.cancelled = true
			continue
		}
		t.fired = true
		t.action()
		ran++
	}
	return ran
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}

// Pending returns the number of tasks still waiting to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}
