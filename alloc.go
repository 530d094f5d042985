package sched

import "github.com/nvatask/sched/internal/pool"

// StaticAllocator is a fixed-block pool of elementCount pre-allocated
// Awaitable[T] frames, the Go translation of the spec's
// StaticAllocator<ElementCount, Size> (§4.D, §6): child-task frames
// obtained through [AwaitFrom] come from this pool instead of the heap, and
// are returned to it automatically once the child completes. Requests
// beyond elementCount fall back transparently to a heap allocation — the
// spec's documented OversizePool default — so a StaticAllocator never
// blocks or errors, it only stops saving allocations.
type StaticAllocator[T any] struct {
	pool *pool.Pool[Awaitable[T]]
}

// NewStaticAllocator constructs a StaticAllocator holding elementCount
// pre-allocated Awaitable[T] slots, private to the caller.
func NewStaticAllocator[T any](elementCount int) *StaticAllocator[T] {
	return &StaticAllocator[T]{pool: pool.NewPool[Awaitable[T]](elementCount)}
}

// SharedStaticAllocator returns the process-wide StaticAllocator for type T
// and elementCount, constructing the underlying pool on first use. Every
// call with the same (T, elementCount) pair shares the same pool, matching
// the spec's "all instances with the same parameters ... share the pool" —
// though, since Go has no operator==, two *StaticAllocator[T] wrapper
// values are never themselves pointer-equal; it is the pool beneath them
// that is shared.
func SharedStaticAllocator[T any](elementCount int) *StaticAllocator[T] {
	return &StaticAllocator[T]{pool: pool.Shared[Awaitable[T]](elementCount)}
}

func (a *StaticAllocator[T]) get() *Awaitable[T] {
	return a.pool.Get()
}

func (a *StaticAllocator[T]) put(aw *Awaitable[T]) {
	a.pool.Put(aw)
}
