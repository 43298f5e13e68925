package ecs_test

import (
	"testing"

	"github.com/l1jgo/ecscore/internal/ecs"
)

type refPos struct{ X, Y float64 }
type refVel struct{ DX, DY float64 }

func TestTypedRefRoundTripsThroughRWAndRO(t *testing.T) {
	m := ecs.NewManager()
	rc := ecs.CreateComponent(m, ecs.EntityID(1), refPos{X: 1, Y: 1})

	typed, ok := ecs.Typed[refPos](ecs.WrapRef(rc))
	if !ok {
		t.Fatal("Typed failed to convert a matching ComponentRef")
	}

	rw, ok := typed.RW()
	if !ok {
		t.Fatal("RW failed on a live ref")
	}
	rw.X, rw.Y = 9, 9

	ro, ok := typed.RO()
	if !ok {
		t.Fatal("RO failed on a live ref")
	}
	if ro.X != 9 || ro.Y != 9 {
		t.Fatalf("RO saw %+v, want the mutation made through RW", *ro)
	}
}

func TestTypedRejectsElementTypeMismatch(t *testing.T) {
	m := ecs.NewManager()
	rc := ecs.CreateComponent(m, ecs.EntityID(1), refPos{X: 1, Y: 1})

	if _, ok := ecs.Typed[refVel](ecs.WrapRef(rc)); ok {
		t.Fatal("Typed converted a ComponentRef to the wrong element type")
	}
}

func TestRefInvalidAfterDestroy(t *testing.T) {
	m := ecs.NewManager()
	rc := ecs.CreateComponent(m, ecs.EntityID(1), refPos{X: 1, Y: 1})
	untyped := ecs.WrapRef(rc)

	m.DestroyComponent(rc)

	if untyped.Valid() {
		t.Fatal("untyped ref still valid after DestroyComponent")
	}
	typed, ok := ecs.Typed[refPos](untyped)
	if ok {
		t.Fatal("Typed converted an already-invalid ref")
	}
	if _, ok := typed.RO(); ok {
		t.Fatal("RO succeeded on an invalid typed ref")
	}
}

func TestRefSurvivesCompactionRelocation(t *testing.T) {
	m := ecs.NewManager()
	doomed := ecs.CreateComponent(m, ecs.EntityID(1), refPos{X: 0, Y: 0})
	kept := ecs.CreateComponent(m, ecs.EntityID(2), refPos{X: 5, Y: 5})

	keptRef, ok := ecs.Typed[refPos](ecs.WrapRef(kept))
	if !ok {
		t.Fatal("Typed failed before compaction")
	}

	m.DestroyComponent(doomed)
	m.CleanupComponents()

	if !keptRef.Valid() {
		t.Fatal("surviving ref invalidated by compaction of an unrelated slot")
	}
	got, ok := keptRef.RO()
	if !ok {
		t.Fatal("RO failed on a ref that survived compaction")
	}
	if got.X != 5 || got.Y != 5 {
		t.Fatalf("data after compaction = %+v, want {5 5}", *got)
	}
}
