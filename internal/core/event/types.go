package event

import "github.com/l1jgo/ecscore/internal/ecs"

// ComponentCreated and ComponentRemoved are world-level echoes of
// ecs.Manager's synchronous Created/Removed signals, re-emitted through the
// double-buffered Bus for systems that can tolerate a tick of latency in
// exchange for not running inline inside Fix/Release.
type ComponentCreated struct {
	EntityID  ecs.EntityID
	Component string
}

type ComponentRemoved struct {
	EntityID  ecs.EntityID
	Component string
}
