package sched

import "testing"

func TestTaskEntryInstallTaskSetsInvariants(t *testing.T) {
	var e taskEntry
	e.parent = noParent

	task := NewTask(func(ctx *Ctx) {})
	e.installTask(task, 3, 100)

	if !e.flags.has(flagDefined) {
		t.Fatal("installTask did not set flagDefined")
	}
	if e.parent != noParent {
		t.Fatalf("installTask set parent = %d, want noParent", e.parent)
	}
	if e.index != 3 {
		t.Fatalf("installTask set index = %d, want 3", e.index)
	}
	if e.timestamp != 100 {
		t.Fatalf("installTask set timestamp = %d, want 100", e.timestamp)
	}
	if e.frame == nil || e.dispatch == nil {
		t.Fatal("installTask left frame or dispatch nil while flagDefined is set")
	}
}

func TestTaskEntryInstallChildRecordsParent(t *testing.T) {
	var e taskEntry
	aw := NewAwaitable(func(ctx *Ctx) int { return 1 })
	e.installChild(aw.fiberFrame, 2, 0, 50)

	if e.parent != 0 {
		t.Fatalf("installChild set parent = %d, want 0", e.parent)
	}
	if !e.flags.has(flagDefined) {
		t.Fatal("installChild did not set flagDefined")
	}
}

func TestTaskEntryResetClearsEverything(t *testing.T) {
	var e taskEntry
	task := NewTask(func(ctx *Ctx) {})
	e.installTask(task, 1, 10)
	e.flags |= flagLowPriority | flagAwaiting
	e.setRelease(func() {})

	e.reset()

	if e.flags != flagNone {
		t.Fatalf("reset left flags = %v, want flagNone", e.flags)
	}
	if e.timestamp != 0 {
		t.Fatalf("reset left timestamp = %d, want 0", e.timestamp)
	}
	if e.parent != noParent {
		t.Fatalf("reset left parent = %d, want noParent", e.parent)
	}
	if e.frame != nil || e.dispatch != nil || e.release != nil {
		t.Fatal("reset left frame, dispatch, or release non-nil")
	}
}

func TestTaskEntryCompleteClearsParentAwaitingAndRunsRelease(t *testing.T) {
	var clk uint32 = 77
	s := NewScheduler(2, WithClock(func() uint32 { return clk }))
	defer s.Close()

	s.entries[0].installTask(NewTask(func(ctx *Ctx) {}), 0, 1)
	s.entries[0].flags |= flagAwaiting

	s.entries[1].flags = flagDefined
	s.entries[1].parent = 0

	released := false
	s.entries[1].setRelease(func() { released = true })

	s.entries[1].complete(s)

	if !released {
		t.Fatal("complete() did not invoke the registered release callback")
	}
	if s.entries[0].flags.has(flagAwaiting) {
		t.Fatal("complete() did not clear the parent's flagAwaiting")
	}
	if s.entries[0].timestamp != clk {
		t.Fatalf("complete() left parent timestamp = %d, want %d", s.entries[0].timestamp, clk)
	}
	if s.entries[1].flags.has(flagDefined) {
		t.Fatal("complete() left the child slot defined")
	}
}

func TestEntryFlagsHas(t *testing.T) {
	f := flagDefined | flagLowPriority
	if !f.has(flagDefined) || !f.has(flagLowPriority) {
		t.Fatal("has() missed a set bit")
	}
	if f.has(flagAwaiting) {
		t.Fatal("has() reported an unset bit as set")
	}
}
