// Package scheduler runs cancellable delayed tasks keyed by the entity they affect.
// Scheduling a key again supersedes the earlier task; a superseded or cancelled task never runs.
package scheduler

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc starts fn after d. time.AfterFunc satisfies it once wrapped; tests inject a manual clock.
type AfterFunc func(d time.Duration, fn func()) Timer

type task struct {
	gen   uint64
	timer Timer
}

// Scheduler holds at most one pending task per key.
type Scheduler struct {
	mu        sync.Mutex
	gen       uint64
	tasks     map[string]task
	afterFunc AfterFunc
}

// New returns a Scheduler. afterFunc may be nil (defaults to time.AfterFunc).
func New(afterFunc AfterFunc) *Scheduler {
	if afterFunc == nil {
		afterFunc = func(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }
	}
	return &Scheduler{tasks: make(map[string]task), afterFunc: afterFunc}
}

// Schedule runs fn after d under key, cancelling any task already pending for key.
func (s *Scheduler) Schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}
	s.gen++
	gen := s.gen
	timer := s.afterFunc(d, func() { s.fire(key, gen, fn) })
	s.tasks[key] = task{gen: gen, timer: timer}
}

// fire runs fn only if the task is still the current one for key.
func (s *Scheduler) fire(key string, gen uint64, fn func()) {
	s.mu.Lock()
	cur, ok := s.tasks[key]
	if !ok || cur.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, key)
	s.mu.Unlock()
	fn()
}

// Cancel drops the pending task for key. Returns false if none was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

// Pending reports whether a task is scheduled for key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
}
