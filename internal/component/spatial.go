// Package component holds the plain data payloads fixed into ecs.Store[T]
// instances by internal/world. Pure data, zero methods except where a
// component opts into the on_create/on_destroy hook contract -- all other
// mutation happens in systems, through TypedComponentRef.RW or the data
// pointers ecs.Each hands out.
package component

// Position is a 2D world coordinate.
type Position struct {
	X, Y float64
}

// Velocity is a per-tick displacement, usually paired with Position.
type Velocity struct {
	DX, DY float64
}

// Health tracks current and maximum hit points.
type Health struct {
	Current, Max int32
}
