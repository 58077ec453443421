// Package clock provides cancellable delayed callbacks for the game engines.
//
// Engines never call time.AfterFunc directly: they schedule through a
// Scheduler so tests can drive every timed transition with Fake.Advance,
// and they hold each kind of pending callback in a Slot so a new schedule
// replaces the old one and teardown cancels whatever is outstanding.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// Real returns a Scheduler backed by time.AfterFunc.
func Real() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is a manual Scheduler. Callbacks run synchronously inside Advance,
// in due-time order (ties in scheduling order).
type Fake struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	fake *Fake
	at   time.Duration
	seq  int
	f    func()
	done bool
}

// NewFake returns a Fake starting at offset zero.
func NewFake() *Fake { return &Fake{} }

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTask{fake: c, at: c.now + d, seq: c.seq, f: f}
	c.tasks = append(c.tasks, t)
	return t
}

func (t *fakeTask) Stop() bool {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.fake.removeLocked(t)
	return true
}

func (c *Fake) removeLocked(t *fakeTask) {
	for i, x := range c.tasks {
		if x == t {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return
		}
	}
}

// Advance moves the fake clock forward by d, running every callback that
// falls due. Callbacks scheduled by callbacks run too if they fall due.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.done = true
		c.removeLocked(next)
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

func (c *Fake) nextDueLocked(target time.Duration) *fakeTask {
	if len(c.tasks) == 0 {
		return nil
	}
	sort.SliceStable(c.tasks, func(i, j int) bool {
		if c.tasks[i].at != c.tasks[j].at {
			return c.tasks[i].at < c.tasks[j].at
		}
		return c.tasks[i].seq < c.tasks[j].seq
	})
	if c.tasks[0].at > target {
		return nil
	}
	return c.tasks[0]
}

// Pending reports how many callbacks are scheduled and not yet run.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Elapsed reports how far the fake clock has advanced.
func (c *Fake) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Slot holds at most one pending callback. Scheduling into a busy slot
// cancels the previous callback first.
type Slot struct {
	sched Scheduler

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewSlot returns an empty Slot; a nil sched means Real().
func NewSlot(sched Scheduler) *Slot {
	if sched == nil {
		sched = Real()
	}
	return &Slot{sched: sched}
}

// Schedule replaces any pending callback with f after d.
func (s *Slot) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen {
			// Replaced or stopped after the timer had already fired.
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		f()
	})
}

// Stop cancels the pending callback, if any.
func (s *Slot) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// Pending reports whether a callback is waiting to run.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
