// Package sched provides a fixed-capacity cooperative task scheduler for
// embedded-style environments. It runs user-authored tasks drawn from a
// statically sized table, dispatching at most one task per [Scheduler.RunOnce]
// call based on elapsed time and priority, and supports timed sleeps, voluntary
// low-priority yields, and awaiting a typed child task that produces a value.
//
// # Architecture
//
// [Scheduler] owns a fixed-size table of task entries. Each entry holds a
// frame — either a [Task] (no return value) or an [Awaitable] (typed return
// value) — plus a small flags/timestamp/parent bookkeeping record described
// in entry.go. Go has no language-level stackless coroutine, so each frame is
// backed by a dedicated goroutine synchronized with the scheduler through a
// two-channel handshake (see frame.go): calling resume() hands control to
// that goroutine and blocks until it next suspends or returns, so exactly one
// task body is ever actually running at a time.
//
// A task observes its own scheduling state through an explicit *[Ctx]
// argument rather than ambient/thread-local state — [Ctx.SleepUntil] and
// [Ctx.YieldLowPriority] correspond to the spec's suspension primitives, and
// the free function [Await] spawns and awaits a typed child task.
//
// # Dispatch
//
// [Scheduler.RunOnce] performs a two-pass scan: first over ready/timed
// entries (selecting the most overdue eligible one), then, only if nothing
// was selected and low-priority dispatch is enabled, over low-priority
// entries (selecting the one that has waited longest). Ties break to the
// lowest table index. [Scheduler.TimeLeft] reports how long the caller may
// sleep the host goroutine before the next call is guaranteed to find
// something ready.
//
// # Thread Safety
//
// A [Scheduler] is driven by exactly one goroutine: the one calling RunOnce.
// [Scheduler.AddTask] may be called from that same goroutine or from inside a
// running task (whose body runs only while RunOnce waits for it); it always
// installs a root task, while a dependent child is installed by [Await]. It
// is not safe to call concurrently from a second goroutine while RunOnce is
// executing. Multiple independent Scheduler instances may exist in a
// process, each driven by its own goroutine.
//
// # Error Types
//
// [ErrCapacityExceeded] is returned (via a boolean, per the spec's
// out-of-band error surface) when the task table is full.
// [ErrNotInTask] indicates a suspension primitive was invoked on a [Ctx]
// that is not bound to a live task (never installed, or its task has
// finished) — a programmer error.
//
// # Usage
//
//	s := sched.NewScheduler(4)
//	defer s.Close()
//
//	s.AddTask(sched.NewTask(func(ctx *sched.Ctx) {
//		fmt.Println("hello")
//		ctx.SleepUntil(100)
//		fmt.Println("awake")
//	}))
//
//	for s.TaskCount() > 0 {
//		s.RunOnce(true)
//	}
package sched
