// Package world hosts the collaborators that sit outside the ECS core:
// entity id allocation, static seed data, and the tick-boundary glue that
// calls into internal/ecs at well-defined points.
package world

import "github.com/l1jgo/ecscore/internal/ecs"

// EntityPool mints the opaque ecs.EntityID values the core treats as a pure
// tag. It lives here, not in internal/ecs, so the core package never
// allocates or interprets an id itself.
//
// Grounded on this codebase's earlier EntityPool: a 32-bit index in the low
// bits, a 32-bit generation in the high bits, a free list for reuse,
// generation bumped on destroy to invalidate stale references. That
// EntityID/EntityPool pairing is reproduced here almost unchanged -- it
// already was the right shape for an out-of-scope collaborator, and the
// core's own EntityID is now just a uint64 alias with no allocation logic
// of its own.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

// NewEntityPool constructs an empty pool.
func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func packEntityID(index, generation uint32) ecs.EntityID {
	return ecs.EntityID(uint64(generation)<<32 | uint64(index))
}

func entityIndex(id ecs.EntityID) uint32      { return uint32(id) }
func entityGeneration(id ecs.EntityID) uint32 { return uint32(id >> 32) }

// Create allocates a fresh entity id, reusing a freed index when available.
func (p *EntityPool) Create() ecs.EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return packEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return packEntityID(idx, p.generations[idx])
}

// Alive reports whether id still refers to a live entity (its generation
// matches the pool's current generation for that index).
func (p *EntityPool) Alive(id ecs.EntityID) bool {
	idx := entityIndex(id)
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == entityGeneration(id)
}

// Destroy invalidates id and returns its index to the free list. A stale or
// already-destroyed id is a benign no-op.
func (p *EntityPool) Destroy(id ecs.EntityID) {
	idx := entityIndex(id)
	if idx >= p.nextIndex || p.generations[idx] != entityGeneration(id) {
		return
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
