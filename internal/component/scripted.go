package component

import (
	"github.com/l1jgo/ecscore/internal/ecs"
	"github.com/l1jgo/ecscore/internal/scripting"
)

// ScriptedActor is a data-driven component whose on_create/on_destroy hooks
// trampoline into a Lua HookEngine instead of Go code. Engine is a shared,
// read-only-from-the-component's-perspective VM handle, not owned data --
// assigning it at Fix time is the same shape as wiring a *zap.Logger into a
// repo at construction.
type ScriptedActor struct {
	Script string
	Engine *scripting.HookEngine
}

var (
	_ ecs.OnCreateHook  = (*ScriptedActor)(nil)
	_ ecs.OnDestroyHook = (*ScriptedActor)(nil)
)

// OnCreate implements ecs.OnCreateHook.
func (s *ScriptedActor) OnCreate(entityID ecs.EntityID) {
	if s.Engine != nil {
		s.Engine.CallCreate(s.Script, uint64(entityID))
	}
}

// OnDestroy implements ecs.OnDestroyHook.
func (s *ScriptedActor) OnDestroy(entityID ecs.EntityID) {
	if s.Engine != nil {
		s.Engine.CallDestroy(s.Script, uint64(entityID))
	}
}
