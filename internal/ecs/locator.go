package ecs

import "reflect"

// Locator is the per-store, type-erased gateway a handle uses to reach its
// backing store without either side knowing the other's concrete type. One
// instance exists per Store[T] and is shared by every RefCore that points
// into that store. All operations that take an offset return a safe "empty"
// result on out-of-range input rather than faulting.
//
// Object-safe by construction (no type parameters), following the
// interface-segregation style of DangerosoDavo-ecs's ComponentView/
// ComponentStore split (api.go) and this codebase's own Removable interface
// convention that lets a registry fan out over heterogeneous typed stores
// without generics.
type Locator interface {
	// ElemType reveals the store's element type.
	ElemType() reflect.Type
	// IsT is the identity check a typed wrapper uses to guard its cast.
	IsT(t reflect.Type) bool

	// NotNull reports whether offset is live and its version matches.
	NotNull(version uint32, offset int32) bool

	// Data returns a pointer to the slot's payload, boxed as any, or nil if
	// offset is out of range. The typed wrapper performs the actual type
	// assertion, guarded by a prior IsT check, since the interface itself
	// can't carry the type parameter back to the caller.
	Data(offset int32) any

	// GetEntityID returns the owning entity id, or 0 if out of range.
	GetEntityID(offset int32) EntityID
	// GetRefCore returns a copy of the in-slot RefCore's fields, or the
	// empty triple if out of range.
	GetRefCore(offset int32) RefCore
	// GetRevision returns the current revision, or 0 if out of range.
	GetRevision(offset int32) uint32
	// ChangeRevision bumps the revision (wrapping MAX to 1, skipping 0) and
	// returns the new value.
	ChangeRevision(offset int32) uint32

	// Release and Rearrange give the manager a type-erased path to a
	// store's mutating operations when it only has a Locator in hand (e.g.
	// from a live handle, or from the store registry during
	// CleanupComponents).
	Release(offset int32) bool
	Rearrange()
}

// typedLocator is the concrete Locator for one Store[T]. It holds only a
// non-owning back-reference to its store; its lifetime is bounded by the
// store's, and it never outlives it in practice since nothing keeps a
// Locator around independent of the store that created it.
type typedLocator[T any] struct {
	store *Store[T]
}

func elemTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (l *typedLocator[T]) ElemType() reflect.Type {
	return elemTypeOf[T]()
}

func (l *typedLocator[T]) IsT(t reflect.Type) bool {
	return t == l.ElemType()
}

func (l *typedLocator[T]) NotNull(version uint32, offset int32) bool {
	if offset < 0 || offset >= l.store.allocated {
		return false
	}
	return l.store.slots[offset].version == version
}

func (l *typedLocator[T]) Data(offset int32) any {
	if offset < 0 || offset >= l.store.allocated {
		return nil
	}
	return &l.store.slots[offset].data
}

func (l *typedLocator[T]) GetEntityID(offset int32) EntityID {
	if offset < 0 || offset >= l.store.allocated {
		return 0
	}
	return l.store.slots[offset].entity
}

func (l *typedLocator[T]) GetRefCore(offset int32) RefCore {
	if offset < 0 || offset >= l.store.allocated || l.store.slots[offset].refCore == nil {
		return RefCore{offset: -1}
	}
	return *l.store.slots[offset].refCore
}

func (l *typedLocator[T]) GetRevision(offset int32) uint32 {
	if offset < 0 || offset >= l.store.allocated {
		return 0
	}
	return l.store.slots[offset].revision
}

func (l *typedLocator[T]) ChangeRevision(offset int32) uint32 {
	if offset < 0 || offset >= l.store.allocated {
		return 0
	}
	s := &l.store.slots[offset]
	s.revision = wrapCounter(s.revision)
	return s.revision
}

func (l *typedLocator[T]) Release(offset int32) bool {
	return l.store.Release(offset)
}

func (l *typedLocator[T]) Rearrange() {
	l.store.Rearrange()
}
