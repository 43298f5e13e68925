package ecs

// EntityID is an opaque identifier owned by the external entity table. The
// core never allocates, validates, or interprets it beyond using it as a
// tag on a slot; internal/world.EntityPool is the collaborator that
// actually mints these values.
type EntityID uint64

// IsZero reports whether id is the reserved "no entity" value.
func (id EntityID) IsZero() bool { return id == 0 }
