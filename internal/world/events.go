package world

import (
	"github.com/l1jgo/ecscore/internal/core/event"
	"github.com/l1jgo/ecscore/internal/ecs"
)

// WireEvents subscribes event.ComponentCreated/ComponentRemoved echoes to a
// manager's synchronous Created/Removed signals, per event.ComponentCreated's
// own doc comment. Systems that can tolerate a tick of latency read these off
// bus (after its next SwapBuffers/DispatchAll) instead of running inline
// inside CreateComponent/DestroyComponent the way audit.Sink does.
//
// The *removed* echo cannot carry a component name: destroying a component
// invalidates its handle before the removed signal fires, so by the time
// this callback runs rc's locator has already been nulled by
// Release/invalidate, the same handle-lifetime hazard audit.Sink.Attach
// documents. "unknown" is recorded rather than guessing.
func WireEvents(m *ecs.Manager, bus *event.Bus) {
	m.OnCreated(func(rc *ecs.RefCore, entityID ecs.EntityID) {
		event.Emit(bus, event.ComponentCreated{
			EntityID:  entityID,
			Component: rc.Locator().ElemType().Name(),
		})
	})
	m.OnRemoved(func(rc *ecs.RefCore, entityID ecs.EntityID) {
		event.Emit(bus, event.ComponentRemoved{
			EntityID:  entityID,
			Component: "unknown",
		})
	})
}
