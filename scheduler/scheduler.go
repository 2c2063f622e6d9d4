// Package scheduler drives per-frame motion work on a cooperative tick
//
// The host invokes Tick once per frame with the elapsed time; hooks and
// deferred tasks run on the caller's goroutine in a deterministic order.
// All registration and cancellation happens on that same goroutine;
// the scheduler itself takes no locks
package scheduler

import (
	"context"
	"sort"
	"sync/atomic"
	"time"
)

// Tier orders per-frame hooks: steering first, then velocity-derived
// secondary effects
type Tier int

const (
	TierSteering Tier = iota
	TierSecondary

	tierCount
)

// Hook is a recurring per-frame callback registration
type Hook struct {
	fn        func(dt time.Duration)
	cancelled atomic.Bool
}

// Cancel stops future invocations; safe to call more than once
func (h *Hook) Cancel() {
	h.cancelled.Store(true)
}

// Task is a one-shot deferred callback registration
type Task struct {
	deadline  time.Duration // against scheduler elapsed time
	seq       uint64
	frame     uint64 // frame counter at schedule time
	fn        func()
	cancelled atomic.Bool
	fired     bool
}

// Cancel prevents the task from firing; safe after firing and repeatable
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// Scheduler accumulates frame time and dispatches hooks and due tasks
type Scheduler struct {
	clock   Clock
	elapsed time.Duration
	frame   uint64
	seq     uint64

	hooks [tierCount][]*Hook
	tasks []*Task

	ticking bool
}

// New creates a scheduler on the system clock
func New() *Scheduler {
	return NewWithClock(NewSystemClock())
}

// NewWithClock creates a scheduler reading real time from clock
// Run derives each frame's dt from it, so tests drive the loop
// deterministically with a MockClock
func NewWithClock(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Elapsed returns accumulated tick time
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// Frame returns the number of completed ticks
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Register adds a recurring hook on the given tier
func (s *Scheduler) Register(tier Tier, fn func(dt time.Duration)) *Hook {
	h := &Hook{fn: fn}
	s.hooks[tier] = append(s.hooks[tier], h)
	return h
}

// After schedules fn to run once the given delay has elapsed in tick time
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{deadline: s.elapsed + delay, seq: s.seq, frame: s.frame, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances scheduler time by dt, then runs steering hooks, secondary
// hooks, and due deferred tasks, in that order
// Hooks and tasks may register or cancel work during the tick; work
// registered mid-tick runs no earlier than the next tick
func (s *Scheduler) Tick(dt time.Duration) {
	if s.ticking {
		return // re-entrant tick from a hook is a no-op
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	s.elapsed += dt
	s.frame++

	for tier := Tier(0); tier < tierCount; tier++ {
		hooks := s.hooks[tier]
		for _, h := range hooks {
			if !h.cancelled.Load() {
				h.fn(dt)
			}
		}
		s.hooks[tier] = compactHooks(s.hooks[tier])
	}

	s.runDueTasks()
}

// runDueTasks fires tasks whose deadline has passed, ordered by deadline
// then schedule order; tasks scheduled during the current tick, by a hook
// or by a firing task, wait for a later tick even at zero delay
func (s *Scheduler) runDueTasks() {
	pending := s.tasks
	var due []*Task
	for _, t := range pending {
		if !t.cancelled.Load() && !t.fired && t.deadline <= s.elapsed && t.frame < s.frame {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		if t.cancelled.Load() {
			continue // cancelled by an earlier task this tick
		}
		t.fired = true
		t.fn()
	}

	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.fired && !t.cancelled.Load() {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining
}

func compactHooks(hooks []*Hook) []*Hook {
	out := hooks[:0]
	for _, h := range hooks {
		if !h.cancelled.Load() {
			out = append(out, h)
		}
	}
	return out
}

// Run drives Tick at a fixed real-time interval until ctx is done
// For hosts without their own frame loop; dt is the clock-measured time
// between fires, so slow frames are not under-counted
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last = s.step(last)
		}
	}
}

// step advances by the time the clock reports since last
func (s *Scheduler) step(last time.Time) time.Time {
	now := s.clock.Now()
	s.Tick(now.Sub(last))
	return now
}
