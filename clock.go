package sched

import "time"

// Clock returns the current time in milliseconds, truncated to 32 bits.
// All scheduler eligibility math is performed via unsigned 32-bit
// subtraction of Clock readings, so the scheduler behaves identically across
// the ~49-day wraparound point; see [Scheduler.RunOnce].
type Clock func() uint32

// RealClock is the default Clock, derived from [time.Now].
func RealClock() uint32 {
	return uint32(time.Now().UnixMilli())
}

// StaleAfterDefault is STALE_AFTER from the spec: the window, in
// milliseconds, beyond which an entry's timestamp is considered "long past"
// rather than "not yet due" under unsigned-wraparound interpretation.
const StaleAfterDefault uint32 = 3_600_000

// MaxTimeLeft is the sentinel returned by [Scheduler.TimeLeft] when no
// timed, non-low-priority entry exists.
const MaxTimeLeft uint32 = ^uint32(0)
