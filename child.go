package sched

// Await installs body as a dependent child coroutine of the task running
// behind ctx, marks ctx's entry AWAITING, suspends it, and returns the
// child's produced value once the child has run to completion (spec §4.H,
// "Typed child-task support"). Calling Await outside an active, bound task
// panics, as does calling it when the table has no free slot for the child.
// The child's frame is heap-allocated; use [AwaitFrom] to source it from a
// [StaticAllocator] instead.
func Await[T any](ctx *Ctx, body func(*Ctx) T) T {
	return awaitChild(ctx, NewAwaitable(body), nil)
}

// AwaitFrom behaves exactly like [Await], except the child's Awaitable[T]
// frame is obtained from alloc rather than the heap, and is returned to
// alloc once the child completes — the spec's "typically allocated from the
// fixed-block allocator" (§4.H).
func AwaitFrom[T any](ctx *Ctx, alloc *StaticAllocator[T], body func(*Ctx) T) T {
	var result T
	aw := newAwaitableInto(alloc.get(), body)
	awaitChild(ctx, aw, func() {
		// Read the value before the frame goes back to alloc, where another
		// AwaitFrom may reuse and zero it before this parent resumes.
		result = aw.Value()
		alloc.put(aw)
	})
	return result
}

// awaitChild holds the install/suspend/retrieve logic shared by Await and
// AwaitFrom; release, if non-nil, is wired onto the child's entry so it
// runs when the child completes.
func awaitChild[T any](ctx *Ctx, aw *Awaitable[T], release func()) T {
	ctx.requireBound("Await")
	s := ctx.scheduler
	parentIndex := ctx.index

	childIndex := -1
	for i := range s.entries {
		if !s.entries[i].flags.has(flagDefined) {
			childIndex = i
			break
		}
	}
	if childIndex == -1 {
		s.cfg.logger.Log(LogEntry{Level: LevelWarn, Category: "capacity", Index: parentIndex, Message: "task table at capacity for child await", Err: ErrCapacityExceeded})
		panic(&CtxMisuseError{Op: "Await", Cause: ErrCapacityExceeded})
	}

	now := s.now()

	s.entries[childIndex].installChild(aw.fiberFrame, childIndex, parentIndex, now)
	if release != nil {
		s.entries[childIndex].setRelease(release)
	}
	aw.ctx.bind(s, childIndex)

	parent := &s.entries[parentIndex]
	parent.flags |= flagAwaiting
	parent.timestamp = now

	ctx.frame.suspend()

	return aw.Value()
}
