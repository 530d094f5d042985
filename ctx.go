package sched

import "sync"

// Ctx is the capability a running task body uses to suspend itself. It is
// the explicit stand-in for the spec's thread-local "current task" pointer
// (§2): since a Go program may drive more than one *Scheduler, each on its
// own goroutine, there is no single ambient pointer to hang this off of, so
// it is threaded through as a plain argument — the same shape as
// context.Context.
type Ctx struct {
	mu sync.Mutex

	frame *fiberFrame

	scheduler *Scheduler
	index     int
}

// bind attaches a Ctx to its installed slot. Called once, by whichever of
// AddTask / Await installed the frame, before the frame is ever resumed.
func (c *Ctx) bind(s *Scheduler, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduler = s
	c.index = index
}

// requireBound panics with a CtxMisuseError if this Ctx has not been
// installed into a Scheduler, or has already finished running. This is the
// Go analogue of the spec's "undefined behaviour" for suspension primitives
// invoked outside an active task: a panic is the closest equivalent to an
// abort.
func (c *Ctx) requireBound(op string) {
	c.mu.Lock()
	s, index := c.scheduler, c.index
	c.mu.Unlock()
	if s == nil || c.frame == nil || s.entries[index].frame != c.frame {
		panic(&CtxMisuseError{Op: op, Cause: ErrNotInTask})
	}
}

// SleepUntil suspends the calling task, making it eligible for re-selection
// no sooner than delayMs milliseconds from now (spec §4.G). Calling it
// outside an active, bound task panics.
func (c *Ctx) SleepUntil(delayMs uint32) {
	c.requireBound("SleepUntil")
	entry := &c.scheduler.entries[c.index]
	entry.flags &^= flagLowPriority
	entry.timestamp = c.scheduler.now() + delayMs
	c.frame.suspend()
}

// YieldLowPriority suspends the calling task and marks it low-priority: it
// will only be resumed by a RunOnce call that opts into the low-priority
// pass, and then only once no ordinary eligible entry remains (spec §4.F,
// pass 2).
func (c *Ctx) YieldLowPriority() {
	c.requireBound("YieldLowPriority")
	entry := &c.scheduler.entries[c.index]
	entry.flags |= flagLowPriority
	entry.timestamp = c.scheduler.now()
	c.frame.suspend()
}
