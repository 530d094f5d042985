// Package sched error taxonomy. Errors are surfaced out-of-band (booleans
// and panics), per the spec this package implements — nothing here is ever
// returned from a coroutine body itself.
package sched

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is the sentinel logged when [Scheduler.AddTask] or
// [Await]/[AwaitFrom] decline work because the task table has no free slot.
// AddTask itself reports fullness via its boolean return, matching the
// spec's "Boolean false from AddTask" surface; this sentinel lets a
// [Logger] or a caller inspecting a logged [LogEntry].Err distinguish
// fullness from other error kinds via [errors.Is].
var ErrCapacityExceeded = errors.New("sched: task table at capacity")

// ErrNotInTask is the error wrapped by the panic raised when a suspension
// primitive ([Ctx.SleepUntil], [Ctx.YieldLowPriority]) or [Await] is invoked
// on a [Ctx] that is not bound to a live task: one never installed into a
// [Scheduler], or one whose task has already finished. Use of a suspended
// task's Ctx from another goroutine is not detected. This mirrors
// the spec's NotInTask error kind, whose documented surface is "programmer
// error; panic / abort is acceptable."
var ErrNotInTask = errors.New("sched: suspension primitive used outside the active task")

// CtxMisuseError wraps [ErrNotInTask], or [ErrCapacityExceeded] when
// [Await]/[AwaitFrom] find no free slot for the child, together with the
// name of the operation that triggered it.
type CtxMisuseError struct {
	Op    string
	Cause error
}

func (e *CtxMisuseError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("sched: %s: %v", e.Op, e.Cause)
}

// Unwrap allows [errors.Is](err, [ErrNotInTask]) to match.
func (e *CtxMisuseError) Unwrap() error {
	return e.Cause
}

// WrapError wraps an error with a message, preserving the chain for
// [errors.Is] and [errors.As].
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
