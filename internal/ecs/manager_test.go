package ecs

import (
	"reflect"
	"testing"
)

type mgrPos struct{ X, Y float64 }
type mgrVel struct{ DX, DY float64 }

func TestGetStoreLazyConstructsOnce(t *testing.T) {
	m := NewManager()

	_, ok := GetStore[mgrPos](m, false)
	if ok {
		t.Fatal("GetStore with createIfMissing=false found a store that was never created")
	}

	st1, ok := GetStore[mgrPos](m, true)
	if !ok || st1 == nil {
		t.Fatal("GetStore with createIfMissing=true failed to construct a store")
	}

	st2, ok := GetStore[mgrPos](m, false)
	if !ok || st2 != st1 {
		t.Fatal("second GetStore call did not return the same instance")
	}
}

func TestCreateAndDestroyComponentFireSignals(t *testing.T) {
	m := NewManager()

	var createdID, removedID EntityID
	createdFired, removedFired := false, false
	m.OnCreated(func(rc *RefCore, id EntityID) { createdFired = true; createdID = id })
	m.OnRemoved(func(rc *RefCore, id EntityID) { removedFired = true; removedID = id })

	rc := CreateComponent(m, EntityID(42), mgrPos{X: 3, Y: 4})
	if !createdFired || createdID != 42 {
		t.Fatalf("created signal did not fire correctly: fired=%v id=%d", createdFired, createdID)
	}
	if rc.IsEmpty() {
		t.Fatal("CreateComponent returned an empty handle")
	}

	if !m.DestroyComponent(rc) {
		t.Fatal("DestroyComponent returned false for a live handle")
	}
	if !removedFired || removedID != 42 {
		t.Fatalf("removed signal did not fire correctly: fired=%v id=%d", removedFired, removedID)
	}
	if rc.Valid() {
		t.Fatal("handle still validates after DestroyComponent")
	}
}

func TestDestroyComponentOnEmptyHandlePanics(t *testing.T) {
	m := NewManager()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic destroying an empty handle")
		}
	}()
	m.DestroyComponent(&RefCore{})
}

func TestDestroyComponentTwicePanicsSecondTime(t *testing.T) {
	m := NewManager()
	rc := CreateComponent(m, EntityID(1), mgrPos{})

	if !m.DestroyComponent(rc) {
		t.Fatal("first destroy should succeed")
	}

	// rc is now invalidated (empty), so a second call must panic rather than
	// silently return false -- mirrors TestDestroyComponentOnEmptyHandlePanics.
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic destroying an already-destroyed handle")
		}
	}()
	m.DestroyComponent(rc)
}

func TestCleanupComponentsCompactsEveryRegisteredStore(t *testing.T) {
	m := NewManager()

	a := CreateComponent(m, EntityID(1), mgrPos{X: 1})
	CreateComponent(m, EntityID(2), mgrPos{X: 2})
	CreateComponent(m, EntityID(3), mgrVel{DX: 1})

	m.DestroyComponent(a)
	m.CleanupComponents()

	posStore, _ := GetStore[mgrPos](m, false)
	if posStore.Allocated() != 1 {
		t.Fatalf("Position store Allocated() = %d, want 1", posStore.Allocated())
	}
	velStore, _ := GetStore[mgrVel](m, false)
	if velStore.Allocated() != 1 {
		t.Fatalf("Velocity store Allocated() = %d, want 1", velStore.Allocated())
	}
}

// TestDynamicStoreKeyHazard demonstrates that GetStoreDynamic is keyed by
// each store's own reflect.Type (*Store[T]), not by the component's element
// type. A caller who only has the element type token that
// Locator.ElemType() hands back -- the only token available without an
// already-live handle -- will not find a store that was only ever
// registered through GetStore[T].
func TestDynamicStoreKeyHazard(t *testing.T) {
	m := NewManager()
	GetStore[mgrPos](m, true)

	elemType := reflect.TypeOf(mgrPos{})
	if _, ok := m.GetStoreDynamic(elemType); ok {
		t.Fatal("GetStoreDynamic unexpectedly found a store keyed by element type")
	}

	storeType := reflect.TypeOf(&Store[mgrPos]{})
	loc, ok := m.GetStoreDynamic(storeType)
	if !ok || loc == nil {
		t.Fatal("GetStoreDynamic failed to find the store keyed by its own *Store[T] type")
	}
	if loc.ElemType() != elemType {
		t.Fatalf("resolved locator's ElemType = %v, want %v", loc.ElemType(), elemType)
	}
}

func TestGetStoreTypeMismatchPanics(t *testing.T) {
	m := NewManager()
	elemType := elemTypeOf[mgrPos]()
	m.byElemType[elemType] = "not a store"

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on element-type/store-type mismatch")
		}
	}()
	GetStore[mgrPos](m, true)
}

func TestSignalHandlerPanicIsRecovered(t *testing.T) {
	m := NewManager()
	called := false
	m.OnCreated(func(*RefCore, EntityID) { panic("bad subscriber") })
	m.OnCreated(func(*RefCore, EntityID) { called = true })

	CreateComponent(m, EntityID(1), mgrPos{})

	if !called {
		t.Fatal("a panicking subscriber should not prevent later subscribers from firing")
	}
}
