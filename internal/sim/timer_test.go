package sim

import (
	"testing"
	"time"
)

func TestTimerFiresOnce(t *testing.T) {
	calls := 0
	tm := NewTimer(100*time.Millisecond, func() { calls++ })
	tm.Start()

	for i := 0; i < 20; i++ {
		tm.Update(10 * time.Millisecond)
	}

	if calls != 1 {
		t.Errorf("expiry fired %d times, expected 1", calls)
	}
	if !tm.Expired() || tm.Running() {
		t.Errorf("expired=%v running=%v after expiry", tm.Expired(), tm.Running())
	}
	if tm.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", tm.Remaining())
	}

	tm.Start()
	tm.Update(time.Second)
	if calls != 1 {
		t.Error("restarting an expired timer must stay inert")
	}
}

func TestTimerStopPreventsExpiry(t *testing.T) {
	calls := 0
	tm := NewTimer(50*time.Millisecond, func() { calls++ })
	tm.Start()
	tm.Update(40 * time.Millisecond)

	tm.Stop()
	tm.Update(time.Second)

	if calls != 0 {
		t.Error("stopped timer fired")
	}
	if tm.Remaining() != 10*time.Millisecond {
		t.Errorf("Remaining() = %v, expected 10ms", tm.Remaining())
	}
}

func TestTimerNotStarted(t *testing.T) {
	calls := 0
	tm := NewTimer(time.Millisecond, func() { calls++ })
	tm.Update(time.Second)
	if calls != 0 {
		t.Error("timer fired before Start")
	}
}

func TestTimerSecondsRoundsUp(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 10},
		{1 * time.Millisecond, 10},
		{999 * time.Millisecond, 10},
		{1000 * time.Millisecond, 9},
		{9500 * time.Millisecond, 1},
	}

	for _, tc := range tests {
		tm := NewTimer(10*time.Second, nil)
		tm.Start()
		tm.Update(tc.elapsed)
		if got := tm.Seconds(); got != tc.want {
			t.Errorf("after %v Seconds() = %d, expected %d", tc.elapsed, got, tc.want)
		}
	}
}
