package pool

import "testing"

func TestPoolGetReturnsZeroedSlot(t *testing.T) {
	p := NewPool[int](2)

	v := p.Get()
	*v = 42
	p.Put(v)

	v2 := p.Get()
	if *v2 != 0 {
		t.Fatalf("Get() after Put returned %d, want zeroed 0", *v2)
	}
}

func TestPoolExhaustionFallsBackToHeap(t *testing.T) {
	p := NewPool[int](1)

	a := p.Get()
	b := p.Get() // pool exhausted, falls back to heap rather than blocking/erroring
	if a == b {
		t.Fatal("Get() returned the same pointer twice while one was outstanding")
	}
	*b = 7
	if *b != 7 {
		t.Fatalf("heap-fallback value = %d, want 7", *b)
	}
}

func TestPoolPutNilIsNoOp(t *testing.T) {
	p := NewPool[int](1)
	p.Put(nil) // must not panic or corrupt the free list
	v := p.Get()
	if v == nil {
		t.Fatal("Get() returned nil after Put(nil)")
	}
}

func TestSharedReturnsSameInstanceForSameKey(t *testing.T) {
	a := Shared[string](3)
	b := Shared[string](3)
	if a != b {
		t.Fatal("Shared(string, 3) returned different instances for the same key")
	}
}

func TestSharedDistinguishesByCapacity(t *testing.T) {
	a := Shared[int](5)
	b := Shared[int](6)
	if a == b {
		t.Fatal("Shared(int, 5) and Shared(int, 6) returned the same instance")
	}
}
