// Package audit persists ECS component lifecycle events for post-mortem
// debugging. It subscribes to ecs.Manager's Created/Removed signals purely
// as an external consumer -- it never touches store internals, keeping
// persistence one layer outside the core, exactly as the
// query/matcher/system-scheduling collaborators sit outside it.
//
// Grounded on persist.DB (internal/persist/db.go) for the pgxpool wrapper
// this reuses.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/ecscore/internal/ecs"
	"github.com/l1jgo/ecscore/internal/persist"
)

// Sink writes one row per component creation/destruction to Postgres.
type Sink struct {
	db  *persist.DB
	log *zap.Logger
}

// NewSink wraps an already-migrated database handle.
func NewSink(db *persist.DB, log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{db: db, log: log}
}

// Attach subscribes the sink to a manager's lifecycle signals. The manager
// already recovers a panicking subscriber, so Attach's callbacks only need
// to handle their own I/O errors.
//
// The *removed* handler cannot read rc.Locator().ElemType(): destroying a
// component invalidates its handle before the removed signal fires, so by
// the time this callback runs rc's locator has already been nulled by
// Release/invalidate, and the component type is genuinely unrecoverable
// from the handle alone (only the cached entity id survives). The audit
// row records "unknown" for the component column on removal rather than
// guessing.
func (s *Sink) Attach(m *ecs.Manager) {
	m.OnCreated(func(rc *ecs.RefCore, entityID ecs.EntityID) {
		s.record(entityID, rc.Locator().ElemType().Name(), "created")
	})
	m.OnRemoved(func(rc *ecs.RefCore, entityID ecs.EntityID) {
		s.record(entityID, "unknown", "removed")
	})
}

func (s *Sink) record(entityID ecs.EntityID, component, event string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO component_events (entity_id, component, event) VALUES ($1, $2, $3)`,
		int64(entityID), component, event,
	)
	if err != nil {
		s.log.Error("audit sink insert failed",
			zap.Uint64("entity", uint64(entityID)),
			zap.String("component", component),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
