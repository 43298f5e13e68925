package component

import "github.com/l1jgo/ecscore/internal/ecs"

// Lifecycle is a component that records whether its own on_create and
// on_destroy hooks ran, useful for tests that need to observe a hook firing
// before the slot's RefCore is invalidated.
type Lifecycle struct {
	OnCreateCalled  bool
	OnDestroyCalled bool
}

var (
	_ ecs.OnCreateHook  = (*Lifecycle)(nil)
	_ ecs.OnDestroyHook = (*Lifecycle)(nil)
)

// OnCreate implements ecs.OnCreateHook.
func (l *Lifecycle) OnCreate(entityID ecs.EntityID) {
	l.OnCreateCalled = true
}

// OnDestroy implements ecs.OnDestroyHook.
func (l *Lifecycle) OnDestroy(entityID ecs.EntityID) {
	l.OnDestroyCalled = true
}
