package sched

// frame is the type-erased resumable unit a taskEntry dispatches through.
// It is the Go translation of the spec's coroutine handle (§4.C): resume()
// advances the frame one suspension-point at a time and reports whether it
// is still live; destroy() tears it down without resuming (used for
// Scheduler teardown and for dropping a never-run frame).
//
// Go has no stackless-coroutine language feature, so each frame is backed by
// a single dedicated goroutine and two unbuffered handshake channels — see
// fiberFrame below. This is the "lightweight fiber" representation the spec
// explicitly allows (§9, Design Notes).
type frame interface {
	resume() bool
	destroy()
	takePanic() (bool, any)
}

// fiberFrame is the goroutine-backed coroutine handle shared by Task and
// Awaitable[T]. Exactly one of {resume in progress, goroutine running user
// code} is true at any instant: resume() blocks until the goroutine either
// suspends (via (*fiberFrame).suspend) or returns, so a fiberFrame never runs
// concurrently with its own scheduler.
type fiberFrame struct {
	resumeCh  chan struct{}
	yieldCh   chan struct{}
	done      bool
	started   bool
	destroyed bool
	panicked  bool
	panicVal  any
}

func newFiberFrame() *fiberFrame {
	return &fiberFrame{
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan struct{}),
	}
}

// run starts the goroutine backing this frame. When body returns, the
// goroutine marks the frame done and hands control back to the waiting
// resume(); body must call f.suspend at every suspension point.
func (f *fiberFrame) run(body func()) {
	f.started = true
	go func() {
		<-f.resumeCh // wait for the first resume()
		body()
		f.done = true
		f.yieldCh <- struct{}{}
	}()
}

// resume hands control to the frame's goroutine and blocks until it next
// suspends or finishes. Reports whether the frame is still live.
func (f *fiberFrame) resume() bool {
	if f.destroyed || f.done {
		return false
	}
	f.resumeCh <- struct{}{}
	<-f.yieldCh
	return !f.done
}

// destroy tears the frame down without resuming it. If the goroutine never
// started or already finished this is a no-op; otherwise the goroutine is
// currently blocked inside suspend() and is simply abandoned — it holds no
// scheduler state and will be collected once unreachable, matching the
// spec's "destroying a live frame releases it without completing."
func (f *fiberFrame) destroy() {
	f.destroyed = true
}

// takePanic reports, and clears, whether the frame body's most recent run
// ended in a recovered panic, and the recovered value. Read by taskEntry's
// dispatch thunk (entry.go) once resume() reports the frame is no longer
// live, so the scheduler can log the fault without surfacing it through the
// coroutine itself (spec §7, "Coroutine-internal fault").
func (f *fiberFrame) takePanic() (bool, any) {
	p, v := f.panicked, f.panicVal
	f.panicked = false
	f.panicVal = nil
	return p, v
}

// suspend is called from inside the frame's goroutine at every suspension
// point: it reports "I have suspended" to whatever resume() call is waiting,
// then blocks until the next resume() call.
func (f *fiberFrame) suspend() {
	f.yieldCh <- struct{}{}
	<-f.resumeCh
}

// Task is a root coroutine installed by [Scheduler.AddTask]. It yields no
// value; construct one with [NewTask].
type Task struct {
	*fiberFrame
	ctx *Ctx
}

// NewTask constructs a Task whose body runs body(ctx) once resumed. The
// returned Task is move-only in spirit: installing it into a Scheduler and
// then reusing the value is a programmer error (Go cannot express linear
// types, so this is documented rather than enforced).
func NewTask(body func(ctx *Ctx)) *Task {
	f := newFiberFrame()
	ctx := &Ctx{}
	t := &Task{fiberFrame: f, ctx: ctx}
	f.run(func() {
		ctx.frame = f
		defer func() {
			if r := recover(); r != nil {
				f.panicked = true
				f.panicVal = r
			}
		}()
		body(ctx)
	})
	return t
}

// Awaitable is a dependent coroutine installed by a running task via
// [Await]; it produces a typed value readable after completion.
type Awaitable[T any] struct {
	*fiberFrame
	ctx    *Ctx
	result T
}

// NewAwaitable constructs an Awaitable whose body runs body(ctx) once
// resumed, storing its return value for later retrieval via Value.
func NewAwaitable[T any](body func(ctx *Ctx) T) *Awaitable[T] {
	return newAwaitableInto(&Awaitable[T]{}, body)
}

// newAwaitableInto wires body into a caller-supplied, zero-valued
// Awaitable[T], rather than always allocating one on the heap. This is what
// lets [AwaitFrom] source the struct itself from a [StaticAllocator] (spec
// §4.D) instead of from plain new.
func newAwaitableInto[T any](aw *Awaitable[T], body func(ctx *Ctx) T) *Awaitable[T] {
	f := newFiberFrame()
	ctx := &Ctx{}
	aw.fiberFrame = f
	aw.ctx = ctx
	f.run(func() {
		ctx.frame = f
		defer func() {
			if r := recover(); r != nil {
				f.panicked = true
				f.panicVal = r
			}
		}()
		aw.result = body(ctx)
	})
	return aw
}

// Value returns the child's produced value. Only meaningful after the
// Awaitable has completed (resume returned false); the zero value of T is
// returned otherwise.
func (a *Awaitable[T]) Value() T {
	return a.result
}
