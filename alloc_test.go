package sched

import "testing"

func TestStaticAllocatorGetPutRoundTrip(t *testing.T) {
	alloc := NewStaticAllocator[int](1)

	aw := alloc.get()
	if aw == nil {
		t.Fatal("get() returned nil")
	}
	alloc.put(aw)

	aw2 := alloc.get()
	if aw2 != aw {
		t.Fatal("get() after put() did not return the pooled slot")
	}
}

func TestStaticAllocatorExhaustionFallsBackToHeap(t *testing.T) {
	alloc := NewStaticAllocator[int](1)

	a := alloc.get()
	b := alloc.get() // pool exhausted; must not block or panic
	if a == b {
		t.Fatal("get() returned the same slot twice while one was outstanding")
	}
}

func TestSharedStaticAllocatorSharesUnderlyingPool(t *testing.T) {
	a := SharedStaticAllocator[float64](2)
	b := SharedStaticAllocator[float64](2)

	slot := a.get()
	a.put(slot)

	if got := b.get(); got != slot {
		t.Fatal("SharedStaticAllocator with matching (T, elementCount) did not share its pool")
	}
}
