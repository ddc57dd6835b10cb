package sim

import (
	"testing"
	"time"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler(nil)
	var order []string

	s.After(30*time.Millisecond, "c", func() { order = append(order, "c") })
	s.After(10*time.Millisecond, "a", func() { order = append(order, "a") })
	s.After(10*time.Millisecond, "b", func() { order = append(order, "b") })

	if n := s.Advance(5 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(5ms) ran %d tasks, expected 0", n)
	}
	if n := s.Advance(50 * time.Millisecond); n != 3 {
		t.Fatalf("Advance ran %d tasks, expected 3", n)
	}

	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, expected %v", order, want)
			break
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler(nil)
	fired := false
	task := s.After(time.Millisecond, "x", func() { fired = true })

	task.Cancel()
	s.Advance(time.Second)

	if fired {
		t.Error("cancelled task fired")
	}
	if !task.Cancelled() || task.Fired() {
		t.Errorf("task state: cancelled=%v fired=%v", task.Cancelled(), task.Fired())
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler(nil)
	count := 0
	for i := 0; i < 3; i++ {
		s.After(time.Duration(i)*time.Millisecond, "x", func() { count++ })
	}

	s.CancelAll()
	s.Advance(time.Second)

	if count != 0 {
		t.Errorf("%d tasks fired after CancelAll", count)
	}
}

func TestSchedulerGuardDropsTasks(t *testing.T) {
	open := true
	s := NewScheduler(func() bool { return open })
	fired := 0
	s.After(time.Millisecond, "a", func() { fired++ })
	s.After(2*time.Millisecond, "b", func() { fired++ })

	s.Advance(time.Millisecond)
	open = false
	s.Advance(time.Millisecond)

	if fired != 1 {
		t.Errorf("fired = %d, expected only the task due while open", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("guarded task should be dropped, Pending() = %d", s.Pending())
	}
}

func TestSchedulerTaskScheduledDuringAdvance(t *testing.T) {
	s := NewScheduler(nil)
	fired := false
	s.After(time.Millisecond, "outer", func() {
		s.After(time.Millisecond, "inner", func() { fired = true })
	})

	s.Advance(time.Millisecond)
	if fired {
		t.Fatal("inner task should wait for its own delay")
	}
	s.Advance(time.Millisecond)
	if !fired {
		t.Error("inner task should fire on the next advance")
	}
}
