package ecs

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// wrapCounter advances a version or revision counter, wrapping
// math.MaxUint32 back to 1 and skipping 0, which is reserved as the invalid
// sentinel for a never-allocated slot.
func wrapCounter(v uint32) uint32 {
	return (v % math.MaxUint32) + 1
}

// slot is one element of a store's dense array.
type slot[T any] struct {
	data     T
	refCore  *RefCore
	entity   EntityID
	version  uint32
	revision uint32
}

// Store is a dense, growable per-type component array. Grounded on
// DangerosoDavo-ecs's denseStore (dense.go: slots []denseSlot,
// occupied/generation bookkeeping, ensureCapacity growth) for the dense-array
// shape. It replaces the map-based PtrComponentStore[T] this codebase used
// to carry (a plain map[EntityID]*T with no offsets, no versions, and no
// compaction) -- Store[T] is a rewrite of that shape, not an adaptation.
type Store[T any] struct {
	log     *zap.Logger
	pool    RefCorePool
	locator *typedLocator[T]

	slots            []slot[T]
	allocated        int32
	markedCleanupPos []int32

	autoIncreaseRate        float64
	autoIncreaseTriggerEdge float64
}

// NewStore constructs a Store[T] with the given options, filling any
// zero-valued field with its default.
func NewStore[T any](opts StoreOptions) *Store[T] {
	opts = opts.withDefaults()
	s := &Store[T]{
		log:                     opts.Logger,
		pool:                    opts.Pool,
		slots:                   make([]slot[T], opts.InitialSize),
		autoIncreaseRate:        opts.AutoIncreaseRate,
		autoIncreaseTriggerEdge: opts.AutoIncreaseTriggerEdge,
	}
	s.locator = &typedLocator[T]{store: s}
	return s
}

// Locator returns the store's type-erased gateway.
func (s *Store[T]) Locator() Locator { return s.locator }

// Allocated returns the number of live-or-dead-but-present slots.
func (s *Store[T]) Allocated() int32 { return s.allocated }

// Capacity returns the current backing array length.
func (s *Store[T]) Capacity() int32 { return int32(len(s.slots)) }

// PendingCleanup returns the number of slots awaiting the next Rearrange.
func (s *Store[T]) PendingCleanup() int { return len(s.markedCleanupPos) }

// Fix creates a new live slot for entityID, optionally seeded with an
// initial value, and returns its offset.
func (s *Store[T]) Fix(entityID EntityID, initial ...T) int32 {
	pos := s.allocated
	s.growIfNeeded(pos)

	sl := &s.slots[pos]
	var zero T
	sl.data = zero
	if len(initial) > 0 {
		sl.data = initial[0]
	}
	sl.entity = entityID
	sl.version = wrapCounter(sl.version)
	sl.revision = 0

	rc := s.pool.Get()
	rc.allocate(s.locator, pos, sl.version)
	sl.refCore = rc

	s.allocated++

	if hook, ok := any(&sl.data).(OnCreateHook); ok {
		s.safeHook("on_create", entityID, func() { hook.OnCreate(entityID) })
	}

	return pos
}

// growIfNeeded grows the backing array before pos overruns it. The
// trigger-edge test is meant to let growth fire early (amortized growth
// ahead of actually filling the array); pos>=capacity is the hard
// requirement. With the shipped default trigger edge of 1.2 the pre-trigger
// clause can never fire before the hard clause also would, since the edge
// sits past capacity itself -- left as-is rather than tuned down, since
// nothing observable depends on early growth actually happening.
func (s *Store[T]) growIfNeeded(pos int32) {
	capacity := int32(len(s.slots))
	trigger := int32(math.Floor(float64(capacity) * s.autoIncreaseTriggerEdge))
	if pos <= trigger && pos < capacity {
		return
	}
	newCap := int32(math.Round(float64(capacity) * s.autoIncreaseRate))
	if pos+1 > newCap {
		newCap = pos + 1
	}
	grown := make([]slot[T], newCap)
	copy(grown, s.slots)
	s.slots = grown
}

// Expand grows capacity by max(0, count) without touching allocated. Useful
// for pre-sizing a store ahead of a known batch of Fix calls.
func (s *Store[T]) Expand(count int) int {
	if count <= 0 {
		return 0
	}
	s.slots = append(s.slots, make([]slot[T], count)...)
	return count
}

// Release marks offset's slot dead. Returns false, a benign no-op, for an
// out-of-range offset or a slot already released.
func (s *Store[T]) Release(offset int32) bool {
	if offset < 0 || offset >= s.allocated {
		return false
	}
	sl := &s.slots[offset]
	if sl.refCore == nil {
		return false
	}

	entity := sl.entity
	if hook, ok := any(&sl.data).(OnDestroyHook); ok {
		s.safeHook("on_destroy", entity, func() { hook.OnDestroy(entity) })
	}

	sl.revision = 0
	sl.entity = 0

	rc := sl.refCore
	sl.refCore = nil
	s.pool.Put(rc)

	s.markedCleanupPos = append(s.markedCleanupPos, offset)
	return true
}

// Rearrange compacts the store so live slots occupy [0, allocated-k) with no
// holes, where k is the number of pending releases.
func (s *Store[T]) Rearrange() {
	k := len(s.markedCleanupPos)
	if k == 0 {
		return
	}
	sort.Slice(s.markedCleanupPos, func(i, j int) bool {
		return s.markedCleanupPos[i] < s.markedCleanupPos[j]
	})

	for i := 0; i < k; i++ {
		emptyPos := s.markedCleanupPos[k-1-i]
		lastPos := s.allocated - 1 - int32(i)
		if emptyPos >= lastPos {
			continue
		}
		s.slots[emptyPos] = s.slots[lastPos]
		if rc := s.slots[emptyPos].refCore; rc != nil {
			rc.relocate(emptyPos)
		}
	}

	s.allocated -= int32(k)
	s.markedCleanupPos = s.markedCleanupPos[:0]
}

// RO reads a slot statically, bypassing the Locator's dynamic dispatch for
// callers that already know T. version must match the slot's current
// generation.
func (s *Store[T]) RO(offset int32, version uint32) (*T, bool) {
	if offset < 0 || offset >= s.allocated || s.slots[offset].version != version {
		return nil, false
	}
	return &s.slots[offset].data, true
}

// RW reads a slot statically for mutation and bumps its revision.
func (s *Store[T]) RW(offset int32, version uint32) (*T, bool) {
	if offset < 0 || offset >= s.allocated || s.slots[offset].version != version {
		return nil, false
	}
	sl := &s.slots[offset]
	sl.revision = wrapCounter(sl.revision)
	return &sl.data, true
}

// safeHook runs a component lifecycle hook, recovering and logging any
// panic rather than letting it propagate out of Fix/Release, so a bad
// component hook can't crash the tick loop.
func (s *Store[T]) safeHook(kind string, entityID EntityID, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("component hook panic recovered",
				zap.String("hook", kind),
				zap.Uint64("entity", uint64(entityID)),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
