package ecs_test

import (
	"testing"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/ecs"
)

// TestMixedComponentTypesDoNotInterfere fixes entities across two unrelated
// component types on the same manager and checks each store only ever sees
// its own element type.
func TestMixedComponentTypesDoNotInterfere(t *testing.T) {
	m := ecs.NewManager()

	for i := 1; i <= 3; i++ {
		ecs.CreateComponent(m, ecs.EntityID(i), component.Position{X: float64(i)})
	}
	for i := 4; i <= 5; i++ {
		ecs.CreateComponent(m, ecs.EntityID(i), component.Health{Current: 10, Max: 10})
	}

	posStore, ok := ecs.GetStore[component.Position](m, false)
	if !ok {
		t.Fatal("Position store missing")
	}
	if posStore.Allocated() != 3 {
		t.Fatalf("Position Allocated() = %d, want 3", posStore.Allocated())
	}

	healthStore, ok := ecs.GetStore[component.Health](m, false)
	if !ok {
		t.Fatal("Health store missing")
	}
	if healthStore.Allocated() != 2 {
		t.Fatalf("Health Allocated() = %d, want 2", healthStore.Allocated())
	}

	seen := make(map[ecs.EntityID]bool)
	ecs.Each(posStore, func(id ecs.EntityID, p *component.Position) { seen[id] = true })
	for id := ecs.EntityID(1); id <= 3; id++ {
		if !seen[id] {
			t.Errorf("Position store missing entity %d", id)
		}
	}
	if seen[4] || seen[5] {
		t.Fatal("Position store leaked entities that only have a Health component")
	}
}

// TestTwoStoreMovementJoin mirrors cmd/ecsdemo's movement system: join
// Position and Velocity by entity id and advance Position in place.
func TestTwoStoreMovementJoin(t *testing.T) {
	m := ecs.NewManager()

	moving := ecs.CreateComponent(m, ecs.EntityID(1), component.Position{X: 0, Y: 0})
	ecs.CreateComponent(m, ecs.EntityID(1), component.Velocity{DX: 2, DY: 3})
	stationary := ecs.CreateComponent(m, ecs.EntityID(2), component.Position{X: 100, Y: 100})
	_ = moving
	_ = stationary

	posStore, _ := ecs.GetStore[component.Position](m, false)
	velStore, _ := ecs.GetStore[component.Velocity](m, false)

	positions := make(map[ecs.EntityID]*component.Position)
	ecs.Each(posStore, func(id ecs.EntityID, p *component.Position) { positions[id] = p })
	ecs.Each(velStore, func(id ecs.EntityID, v *component.Velocity) {
		if p, ok := positions[id]; ok {
			p.X += v.DX
			p.Y += v.DY
		}
	})

	moved, _ := positions[1]
	if moved.X != 2 || moved.Y != 3 {
		t.Fatalf("moving entity position = %+v, want {2 3}", *moved)
	}
	still := positions[2]
	if still.X != 100 || still.Y != 100 {
		t.Fatalf("stationary entity position = %+v, want unchanged {100 100}", *still)
	}
}

// TestCompactionPreservesOutstandingHandles creates a batch of entities,
// destroys a scattered subset, runs cleanup, and checks that every
// surviving handle still resolves to its original data.
func TestCompactionPreservesOutstandingHandles(t *testing.T) {
	m := ecs.NewManager()

	type tracked struct {
		id  ecs.EntityID
		rc  *ecs.RefCore
		hp  int32
		die bool
	}

	entities := make([]tracked, 0, 10)
	for i := 1; i <= 10; i++ {
		hp := int32(i * 10)
		rc := ecs.CreateComponent(m, ecs.EntityID(i), component.Health{Current: hp, Max: 100})
		entities = append(entities, tracked{id: ecs.EntityID(i), rc: rc, hp: hp, die: i%3 == 0})
	}

	for _, e := range entities {
		if e.die {
			m.DestroyComponent(e.rc)
		}
	}
	m.CleanupComponents()

	for _, e := range entities {
		ref, ok := ecs.Typed[component.Health](ecs.WrapRef(e.rc))
		if e.die {
			if ok && ref.Valid() {
				t.Errorf("entity %d should be invalid after destroy+cleanup", e.id)
			}
			continue
		}
		if !ok || !ref.Valid() {
			t.Fatalf("entity %d should still be valid after cleanup", e.id)
		}
		got, ok := ref.RO()
		if !ok {
			t.Fatalf("entity %d: RO failed after compaction", e.id)
		}
		if got.Current != e.hp {
			t.Errorf("entity %d: Current = %d, want %d", e.id, got.Current, e.hp)
		}
	}
}

// TestGrowthAcrossManyFixesKeepsDataIntact drives a store through several
// growth cycles and confirms no data corrupts across a backing-array
// reallocation.
func TestGrowthAcrossManyFixesKeepsDataIntact(t *testing.T) {
	m := ecs.NewManager()
	// The default store starts at capacity 100; 500 fixes grow it three
	// times (100 -> 200 -> 400 -> 800).
	const n = 500
	for i := 0; i < n; i++ {
		ecs.CreateComponent(m, ecs.EntityID(i+1), component.Position{X: float64(i), Y: float64(i * 2)})
	}

	posStore, _ := ecs.GetStore[component.Position](m, false)
	if posStore.Allocated() != n {
		t.Fatalf("Allocated() = %d, want %d", posStore.Allocated(), n)
	}

	count := 0
	ecs.Each(posStore, func(id ecs.EntityID, p *component.Position) {
		count++
		wantX := float64(id) - 1
		if p.X != wantX || p.Y != wantX*2 {
			t.Errorf("entity %d data = %+v, want X=%v Y=%v", id, *p, wantX, wantX*2)
		}
	})
	if count != n {
		t.Fatalf("Each visited %d entities, want %d", count, n)
	}
}
