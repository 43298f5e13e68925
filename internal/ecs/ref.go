package ecs

import "reflect"

// ComponentRef is the untyped surface handle wrapper. It carries no type
// information beyond what its RefCore's Locator can report.
type ComponentRef struct {
	core *RefCore
}

// WrapRef wraps a raw handle as an untyped ComponentRef.
func WrapRef(core *RefCore) ComponentRef { return ComponentRef{core: core} }

// Core returns the underlying handle.
func (r ComponentRef) Core() *RefCore { return r.core }

// Valid reports whether the wrapped handle still validates.
func (r ComponentRef) Valid() bool {
	return r.core != nil && r.core.Valid()
}

// ElemType reveals the store's element type, or nil for an invalid ref.
func (r ComponentRef) ElemType() reflect.Type {
	if !r.Valid() {
		return nil
	}
	return r.core.Locator().ElemType()
}

// Typed converts an untyped ComponentRef into a typed TypedComponentRef[T],
// guarded by IsT so the later type assertion in RO/RW can never fail.
// Returns false if the ref is invalid or T doesn't match the store's
// element type.
func Typed[T any](r ComponentRef) (TypedComponentRef[T], bool) {
	if !r.Valid() || !r.core.Locator().IsT(elemTypeOf[T]()) {
		return TypedComponentRef[T]{}, false
	}
	return TypedComponentRef[T]{core: r.core}, true
}

// TypedComponentRef is the typed surface handle wrapper (Go can't reuse the
// bare name ComponentRef for both the untyped struct above and a generic
// type), providing RO/RW access; RW implicitly bumps the slot revision.
type TypedComponentRef[T any] struct {
	core *RefCore
}

// WrapTypedRef wraps a raw handle as a TypedComponentRef[T].
func WrapTypedRef[T any](core *RefCore) TypedComponentRef[T] {
	return TypedComponentRef[T]{core: core}
}

// Valid reports whether the wrapped handle still validates.
func (r TypedComponentRef[T]) Valid() bool {
	return r.core != nil && r.core.Valid()
}

// Untyped erases the wrapper's type information.
func (r TypedComponentRef[T]) Untyped() ComponentRef {
	return ComponentRef{core: r.core}
}

// RO returns read-only access to the component. It never changes revision.
func (r TypedComponentRef[T]) RO() (*T, bool) {
	if !r.Valid() {
		return nil, false
	}
	p, ok := r.core.Locator().Data(r.core.Offset()).(*T)
	return p, ok
}

// RW returns read-write access to the component and bumps its revision.
func (r TypedComponentRef[T]) RW() (*T, bool) {
	if !r.Valid() {
		return nil, false
	}
	p, ok := r.core.Locator().Data(r.core.Offset()).(*T)
	if !ok {
		return nil, false
	}
	r.core.Locator().ChangeRevision(r.core.Offset())
	return p, ok
}
