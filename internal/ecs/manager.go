package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// CreatedFunc and RemovedFunc are the component lifecycle signal shapes.
type CreatedFunc func(*RefCore, EntityID)
type RemovedFunc func(*RefCore, EntityID)

// StoreOptionsFor lets a caller supply per-component-type growth policy
// overrides, threaded through from configuration.
type StoreOptionsFor func(elemType reflect.Type) StoreOptions

// Manager is the type -> store registry. It fans out component
// creation/destruction events and drives compaction across every
// registered store.
//
// Grounded on this codebase's earlier Registry: a []Removable slice plus a
// single RemoveAll fan-out loop. Manager generalizes that one-operation
// fan-out into the full create/destroy/cleanup surface this package needs,
// and adds the created/removed signals the original Registry never had.
type Manager struct {
	log *zap.Logger

	byElemType  map[reflect.Type]any     // elemType(T) -> *Store[T], populated by GetStore[T]
	byStoreType map[reflect.Type]Locator // reflect.Type(*Store[T]) -> Locator, populated alongside

	stores []Locator // every registered store's Locator, for CleanupComponents fan-out

	storeOptsFor StoreOptionsFor

	onCreated []CreatedFunc
	onRemoved []RemovedFunc
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager)

// WithLogger sets the manager's (and any store it lazily constructs)
// diagnostic logger.
func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// WithStoreOptions installs a per-component-type override function used
// whenever the manager lazily constructs a Store[T].
func WithStoreOptions(f StoreOptionsFor) ManagerOption {
	return func(m *Manager) { m.storeOptsFor = f }
}

// NewManager constructs an empty registry.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		byElemType:  make(map[reflect.Type]any),
		byStoreType: make(map[reflect.Type]Locator),
		stores:      make([]Locator, 0, 16),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m
}

// GetStore looks up (or, when createIfMissing, lazily constructs) the
// Store[T] backing component type T. A mismatch between an
// already-registered store's element type and T is a programmer error and
// panics loudly.
func GetStore[T any](m *Manager, createIfMissing bool) (*Store[T], bool) {
	elemType := elemTypeOf[T]()
	if v, ok := m.byElemType[elemType]; ok {
		st, ok := v.(*Store[T])
		if !ok {
			panic(fmt.Sprintf("ecs: store for %s is registered with a different element type", elemType))
		}
		return st, true
	}
	if !createIfMissing {
		return nil, false
	}

	opts := DefaultStoreOptions()
	if m.storeOptsFor != nil {
		opts = m.storeOptsFor(elemType)
	}
	opts.Logger = m.log

	st := NewStore[T](opts)
	m.byElemType[elemType] = st
	m.byStoreType[reflect.TypeOf(st)] = st.locator
	m.stores = append(m.stores, st.locator)
	return st, true
}

// GetStoreDynamic is the dynamic variant a caller reaches for when it only
// holds a type token, not a live handle.
//
// It is a lookup-only path keyed by each store's own reflect.Type
// (*Store[T]), exactly as byStoreType is populated in GetStore. Go has no
// runtime equivalent of instantiating Store[T] from a bare reflect.Type, so
// there is no way to key this registry by element type the way GetStore[T]
// does -- meaning calling it with the *element* type token a
// Locator.ElemType() hands you (the only token a caller without a live
// handle would have) will not find a store registered only through
// GetStore[T]; see TestDynamicStoreKeyHazard. DestroyComponent below
// deliberately does NOT use this path, since a live RefCore already carries
// the correct Locator directly.
func (m *Manager) GetStoreDynamic(storeType reflect.Type) (Locator, bool) {
	loc, ok := m.byStoreType[storeType]
	return loc, ok
}

// CreateComponent delegates to the target store's Fix, then emits *created*
// once the slot and its RefCore both exist.
func CreateComponent[T any](m *Manager, entityID EntityID, initial ...T) *RefCore {
	st, _ := GetStore[T](m, true)
	pos := st.Fix(entityID, initial...)
	rc := st.slots[pos].refCore
	m.fireCreated(rc, entityID)
	return rc
}

// DestroyComponent releases the handle's slot and emits *removed* after
// on_destroy and RefCore invalidation have already happened. Destroying an
// already-invalid handle is a programmer error and panics.
func (m *Manager) DestroyComponent(rc *RefCore) bool {
	if rc == nil || rc.IsEmpty() {
		panic("ecs: destroying an already-invalid handle")
	}
	loc := rc.Locator()
	offset := rc.Offset()
	entity := loc.GetEntityID(offset)

	if !loc.Release(offset) {
		return false
	}
	m.fireRemoved(rc, entity)
	return true
}

// CleanupComponents runs Rearrange on every registered store. Must not be
// called concurrently with Fix/Release on any of them.
func (m *Manager) CleanupComponents() {
	for _, loc := range m.stores {
		loc.Rearrange()
	}
}

// OnCreated subscribes fn to the *created* signal.
func (m *Manager) OnCreated(fn CreatedFunc) { m.onCreated = append(m.onCreated, fn) }

// OnRemoved subscribes fn to the *removed* signal.
func (m *Manager) OnRemoved(fn RemovedFunc) { m.onRemoved = append(m.onRemoved, fn) }

func (m *Manager) fireCreated(rc *RefCore, id EntityID) {
	for _, fn := range m.onCreated {
		m.safeFire("created", fn, rc, id)
	}
}

func (m *Manager) fireRemoved(rc *RefCore, id EntityID) {
	for _, fn := range m.onRemoved {
		m.safeFire("removed", fn, rc, id)
	}
}

// safeFire recovers a panicking handler the same way safeHook recovers a
// panicking component hook, so a single bad subscriber can't take down the
// tick loop.
func (m *Manager) safeFire(kind string, fn func(*RefCore, EntityID), rc *RefCore, id EntityID) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("component event handler panic recovered",
				zap.String("event", kind),
				zap.Uint64("entity", uint64(id)),
				zap.Any("panic", r),
			)
		}
	}()
	fn(rc, id)
}
