package scheduler

import (
	"testing"
	"time"
)

func TestScheduler_RunsAfterDelay(t *testing.T) {
	clock := NewManual()
	s := New(clock.AfterFunc)
	ran := 0
	s.Schedule("ticket", 5*time.Second, func() { ran++ })

	clock.Advance(4 * time.Second)
	if ran != 0 {
		t.Fatalf("ran = %d before deadline, want 0", ran)
	}
	if !s.Pending("ticket") {
		t.Error("task should be pending")
	}
	clock.Advance(time.Second)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Pending("ticket") {
		t.Error("task should no longer be pending")
	}
}

func TestScheduler_RescheduleSupersedes(t *testing.T) {
	clock := NewManual()
	s := New(clock.AfterFunc)
	var got []string
	s.Schedule("highlight", 5*time.Second, func() { got = append(got, "first") })
	clock.Advance(3 * time.Second)
	s.Schedule("highlight", 5*time.Second, func() { got = append(got, "second") })

	clock.Advance(2 * time.Second)
	if len(got) != 0 {
		t.Fatalf("superseded task ran: %v", got)
	}
	clock.Advance(3 * time.Second)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got = %v, want [second]", got)
	}
}

func TestScheduler_Cancel(t *testing.T) {
	clock := NewManual()
	s := New(clock.AfterFunc)
	ran := false
	s.Schedule("logout", 2*time.Second, func() { ran = true })
	if !s.Cancel("logout") {
		t.Error("Cancel = false, want true")
	}
	if s.Cancel("logout") {
		t.Error("second Cancel = true, want false")
	}
	clock.Advance(time.Minute)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestScheduler_KeysAreIndependent(t *testing.T) {
	clock := NewManual()
	s := New(clock.AfterFunc)
	var a, b bool
	s.Schedule("a", time.Second, func() { a = true })
	s.Schedule("b", time.Second, func() { b = true })
	s.Cancel("a")
	clock.Advance(time.Second)
	if a || !b {
		t.Errorf("a, b = %v, %v, want false, true", a, b)
	}
}

func TestScheduler_StaleFireIsIgnored(t *testing.T) {
	// A timer whose Stop lost the race still must not run a superseded task.
	var fns []func()
	s := New(func(d time.Duration, fn func()) Timer {
		fns = append(fns, fn)
		return noopTimer{}
	})
	var got []int
	s.Schedule("k", time.Second, func() { got = append(got, 1) })
	s.Schedule("k", time.Second, func() { got = append(got, 2) })
	fns[0]()
	fns[1]()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got = %v, want [2]", got)
	}
}

func TestScheduler_Stop(t *testing.T) {
	clock := NewManual()
	s := New(clock.AfterFunc)
	ran := false
	s.Schedule("a", time.Second, func() { ran = true })
	s.Stop()
	clock.Advance(time.Second)
	if ran || s.Pending("a") {
		t.Error("task survived Stop")
	}
}

func TestScheduler_DefaultAfterFunc(t *testing.T) {
	s := New(nil)
	done := make(chan struct{})
	s.Schedule("real", time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }
