package ecs

import "sync"

// RefCore is the body of a handle: {locator, offset, version}. It is shared
// by reference between the slot that owns it and any number of user-facing
// ComponentRef wrappers; only the owning store ever mutates it, through
// allocate/relocate/invalidate.
type RefCore struct {
	locator Locator
	offset  int32
	version uint32
}

// Locator returns the handle's per-store gateway, or nil for an empty
// handle.
func (r *RefCore) Locator() Locator { return r.locator }

// Offset returns the handle's current slot offset. Unstable across
// compaction unless read fresh from the handle each time (relocate rewrites
// this field in place).
func (r *RefCore) Offset() int32 { return r.offset }

// Version returns the handle's captured slot generation.
func (r *RefCore) Version() uint32 { return r.version }

// IsEmpty reports whether the handle has no locator. invalidate sets the
// full empty triple (locator == nil, offset == -1, version == 0), but only
// the locator is checked here.
func (r *RefCore) IsEmpty() bool { return r.locator == nil }

// Valid reports whether the handle still validates against its locator. An
// empty handle is never valid.
func (r *RefCore) Valid() bool {
	if r.locator == nil {
		return false
	}
	return r.locator.NotNull(r.version, r.offset)
}

// allocate overwrites all three fields. Precondition: r was freshly obtained
// from its pool or previously invalidated.
func (r *RefCore) allocate(locator Locator, offset int32, version uint32) {
	r.locator = locator
	r.offset = offset
	r.version = version
}

// relocate overwrites only the offset, used during compaction when a slot
// moves but its logical identity does not change.
func (r *RefCore) relocate(offset int32) {
	r.offset = offset
}

// invalidate sets the handle to the empty triple. Called before the handle
// is returned to its pool.
func (r *RefCore) invalidate() {
	r.locator = nil
	r.offset = -1
	r.version = 0
}

// RefCorePool is the abstract "acquire/release reusable instance" contract
// a store depends on, rather than on any concrete pool.
type RefCorePool interface {
	Get() *RefCore
	Put(*RefCore)
}

// syncRefCorePool is the default RefCorePool, backed by sync.Pool -- the
// idiomatic Go primitive for this shape. No third-party pooling library in
// the example pack targets this exact acquire/release contract, so
// sync.Pool is used here instead of hand-rolling one.
type syncRefCorePool struct {
	pool sync.Pool
}

// NewRefCorePool constructs a RefCorePool. The default pool is process-wide
// with no teardown; callers that want world-scoped teardown can construct
// their own and set it on StoreOptions.Pool.
func NewRefCorePool() RefCorePool {
	return &syncRefCorePool{
		pool: sync.Pool{
			New: func() any { return &RefCore{offset: -1} },
		},
	}
}

func (p *syncRefCorePool) Get() *RefCore {
	return p.pool.Get().(*RefCore)
}

func (p *syncRefCorePool) Put(rc *RefCore) {
	rc.invalidate()
	p.pool.Put(rc)
}

// defaultRefCorePool is the process-wide pool used by stores that do not
// specify their own: initialized on first use, with no teardown.
var defaultRefCorePool = NewRefCorePool()
