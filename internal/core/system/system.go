package system

import "time"

// Phase defines execution ordering within a single tick. Gives
// ecs.Manager.CleanupComponents a well-defined call site: it must run at a
// clear tick boundary, never concurrently with Fix/Release.
type Phase int

const (
	PhaseInput      Phase = iota // 0: gather external input
	PhasePreUpdate               // 1: process last tick's world events
	PhaseUpdate                  // 2: game/simulation logic
	PhasePostUpdate              // 3: derived state (regen, spawn, visibility)
	PhaseOutput                  // 4: publish results
	PhasePersist                 // 5: durable writes
	PhaseCleanup                 // 6: ecs.Manager.CleanupComponents
)

// System is the interface every tick-scheduled unit of work implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
