package sched

import "github.com/nvatask/sched/internal/ring"

// Completion is one record of the scheduler's optional diagnostics history
// (see WithHistorySize / History), grounded on the teacher's registry scavenge
// log shape.
type Completion struct {
	Index     int
	Timestamp uint32
	Panicked  bool
	PanicVal  any
}

// Scheduler is a fixed-capacity, single-driver-goroutine cooperative task
// table (spec §3/§4). A *Scheduler must only ever be driven — via RunOnce,
// AddTask, TimeLeft, Close — from one goroutine at a time; it performs no
// internal locking, matching the spec's single-threaded execution model.
type Scheduler struct {
	entries []taskEntry
	cfg     *schedulerConfig
	history *ring.Buffer[Completion]
}

// NewScheduler constructs a Scheduler with a fixed table of capacity slots.
// capacity must be > 0; it is never resized (spec's explicit Non-goal).
func NewScheduler(capacity int, opts ...SchedulerOption) *Scheduler {
	if capacity <= 0 {
		panic("sched: capacity must be positive")
	}
	cfg := resolveSchedulerOptions(opts)
	s := &Scheduler{
		entries: make([]taskEntry, capacity),
		cfg:     cfg,
	}
	for i := range s.entries {
		s.entries[i].parent = noParent
	}
	if cfg.historySize > 0 {
		s.history = ring.New[Completion](cfg.historySize, func(c Completion) int { return c.Index })
	}
	cfg.logger.Log(LogEntry{Level: LevelInfo, Category: "lifecycle", Index: -1, Message: "scheduler created", Fields: map[string]any{"capacity": capacity}})
	return s
}

func (s *Scheduler) now() uint32 { return s.cfg.clock() }

// AddTask installs t as a root entry in the first free slot, returning false
// (and logging at Warn) if the table is already full — spec's CapacityExceeded
// edge case.
func (s *Scheduler) AddTask(t *Task) bool {
	for i := range s.entries {
		e := &s.entries[i]
		if e.flags.has(flagDefined) {
			continue
		}
		e.installTask(t, i, s.now())
		t.ctx.bind(s, i)
		return true
	}
	s.cfg.logger.Log(LogEntry{Level: LevelWarn, Category: "capacity", Index: -1, Message: "task table at capacity", Err: ErrCapacityExceeded})
	return false
}

// TaskCount reports the number of currently-defined (not necessarily
// eligible) entries.
func (s *Scheduler) TaskCount() int {
	n := 0
	for i := range s.entries {
		if s.entries[i].flags.has(flagDefined) {
			n++
		}
	}
	return n
}

// elapsedOrDue reports whether e is eligible in pass 1 at time now, and its
// "overdueness" score when it is.
func elapsedOrDue(e *taskEntry, now, tolerance, staleAfter uint32) (eligible bool, score uint32) {
	untilDue := e.timestamp - now   // unsigned: "time left"
	overdue := now - e.timestamp    // unsigned: "time past"
	if untilDue < tolerance || overdue < staleAfter {
		return true, overdue + tolerance
	}
	return false, 0
}

// RunOnce selects and resumes at most one eligible entry (spec §4.F). It
// returns true iff an entry was run.
func (s *Scheduler) RunOnce(includeLowPriority bool) bool {
	now := s.now()

	best := -1
	var bestScore uint32
	for i := range s.entries {
		e := &s.entries[i]
		if !e.flags.has(flagDefined) || e.flags.has(flagAwaiting) || e.flags.has(flagLowPriority) {
			continue
		}
		eligible, score := elapsedOrDue(e, now, s.cfg.tolerance, s.cfg.staleAfter)
		if !eligible {
			continue
		}
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best != -1 {
		s.entries[best].timestamp = now - 2*s.cfg.staleAfter
		s.dispatchOne(best)
		return true
	}

	if !includeLowPriority {
		return false
	}

	best = -1
	var bestWait uint32
	for i := range s.entries {
		e := &s.entries[i]
		if !e.flags.has(flagDefined) || e.flags.has(flagAwaiting) || !e.flags.has(flagLowPriority) {
			continue
		}
		wait := now - e.timestamp
		if best == -1 || wait > bestWait {
			best = i
			bestWait = wait
		}
	}
	if best == -1 {
		return false
	}
	s.entries[best].timestamp = now
	s.dispatchOne(best)
	return true
}

func (s *Scheduler) dispatchOne(index int) {
	e := &s.entries[index]
	if s.cfg.logger.IsEnabled(LevelDebug) {
		s.cfg.logger.Log(LogEntry{Level: LevelDebug, Category: "dispatch", Index: index, Message: "resuming entry"})
	}

	var panicked bool
	var panicVal any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				panicVal = r
			}
		}()
		// Task-body panics are already recovered inside the frame's own
		// goroutine (frame.go) and reported back through this return value;
		// the outer recover above only guards against a bug in dispatch
		// itself.
		p, v := e.dispatch(e, s, false)
		if p {
			panicked, panicVal = true, v
		}
	}()

	if panicked {
		s.cfg.logger.Log(LogEntry{Level: LevelError, Category: "panic", Index: index, Message: "recovered panic from task", Fields: map[string]any{"value": panicVal}})
	}
	// Only a slot that actually finished (cleared by taskEntry.complete) is a
	// completion; a slot that merely suspended (e.g. hit SleepUntil) is still
	// flagDefined and must not be recorded as one.
	if s.history != nil && !e.flags.has(flagDefined) {
		s.history.Push(Completion{Index: index, Timestamp: s.now(), Panicked: panicked, PanicVal: panicVal})
	}
}

// TimeLeft returns the minimum unsigned (timestamp-now) over all DEFINED,
// non-low-priority entries whose distance is less than
// StaleAfter (future and near-past only), or MaxTimeLeft if none qualify
// (spec §4.F "TimeLeft"). Note: the original C++ source computes this value
// via `timestamp - timeLeft`, self-referencing the accumulator by a
// shadowing bug; this implementation uses the evidently-intended
// `timestamp - now` form (documented as an Open Question resolution).
func (s *Scheduler) TimeLeft() uint32 {
	now := s.now()
	best := MaxTimeLeft
	for i := range s.entries {
		e := &s.entries[i]
		if !e.flags.has(flagDefined) || e.flags.has(flagLowPriority) {
			continue
		}
		dist := e.timestamp - now
		if dist < s.cfg.staleAfter && dist < best {
			best = dist
		}
	}
	return best
}

// Close tears down every defined slot without resuming it, abandoning their
// frames (spec §4.B "destroyed on scheduler teardown"). After Close, the
// Scheduler must not be used again.
func (s *Scheduler) Close() {
	for i := range s.entries {
		e := &s.entries[i]
		if !e.flags.has(flagDefined) {
			continue
		}
		e.dispatch(e, s, true)
		e.reset()
	}
	s.cfg.logger.Log(LogEntry{Level: LevelInfo, Category: "lifecycle", Index: -1, Message: "scheduler closed"})
}

// History returns the most recent WithHistorySize completion diagnostics, in
// oldest-to-newest order. Empty if history recording was not enabled.
func (s *Scheduler) History() []Completion {
	if s.history == nil {
		return nil
	}
	return s.history.Snapshot()
}

// LastRun reports the most recent recorded completion of the slot at index,
// searching newest-to-oldest (the ring's lookup-by-embedded-key probe, spec
// §1's "external collaborator" contract). Reports false if history
// recording is disabled or index has no completion recorded.
func (s *Scheduler) LastRun(index int) (Completion, bool) {
	if s.history == nil {
		return Completion{}, false
	}
	return s.history.Find(index)
}
