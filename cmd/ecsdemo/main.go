package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/ecscore/internal/audit"
	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/config"
	"github.com/l1jgo/ecscore/internal/core/event"
	"github.com/l1jgo/ecscore/internal/core/system"
	"github.com/l1jgo/ecscore/internal/ecs"
	"github.com/l1jgo/ecscore/internal/persist"
	"github.com/l1jgo/ecscore/internal/scripting"
	"github.com/l1jgo/ecscore/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/ecsdemo.toml"
	if p := os.Getenv("ECSCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name), zap.Int("id", cfg.Server.ID))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	log.Info("connected to postgres")

	if err := audit.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("audit schema migrated")

	hookEngine, err := scripting.NewHookEngine(cfg.Scripting.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("hook engine: %w", err)
	}
	defer hookEngine.Close()

	storeOptsFor := func(elemType reflect.Type) ecs.StoreOptions {
		initialSize, rate, edge := cfg.ECS.StoreOptionsFor(elemType)
		return ecs.StoreOptions{
			InitialSize:             initialSize,
			AutoIncreaseRate:        rate,
			AutoIncreaseTriggerEdge: edge,
		}
	}

	manager := ecs.NewManager(
		ecs.WithLogger(log),
		ecs.WithStoreOptions(storeOptsFor),
	)

	sink := audit.NewSink(db, log)
	sink.Attach(manager)

	bus := event.NewBus()
	world.WireEvents(manager, bus)
	event.Subscribe(bus, func(e event.ComponentCreated) {
		log.Debug("event: component created",
			zap.Uint64("entity", uint64(e.EntityID)),
			zap.String("component", e.Component),
		)
	})
	event.Subscribe(bus, func(e event.ComponentRemoved) {
		log.Debug("event: component removed", zap.Uint64("entity", uint64(e.EntityID)))
	})

	entities := world.NewEntityPool()

	seedPath := "seed.yaml"
	if _, err := os.Stat(seedPath); err == nil {
		seed, err := world.LoadSeedFile(seedPath)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		ids := seed.Apply(manager, entities)
		log.Info("seeded entities", zap.Int("count", len(ids)))
	} else {
		bootstrapDemoEntities(manager, entities)
	}

	runner := system.NewRunner()
	runner.Register(newEventDispatchSystem(bus))
	runner.Register(newMovementSystem(manager))
	runner.Register(newCleanupSystem(manager))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	const tickRate = 200 * time.Millisecond
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	log.Info("tick loop started", zap.Duration("tick_rate", tickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(tickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// bootstrapDemoEntities fixes a few entities by hand when no seed file is
// present, so the demo has something to tick over.
func bootstrapDemoEntities(m *ecs.Manager, pool *world.EntityPool) {
	a := pool.Create()
	ecs.CreateComponent(m, a, component.Position{X: 15, Y: 25})
	ecs.CreateComponent(m, a, component.Velocity{DX: 1, DY: 0})

	b := pool.Create()
	ecs.CreateComponent(m, b, component.Position{X: 0, Y: 0})
	ecs.CreateComponent(m, b, component.Health{Current: 100, Max: 100})
}

// eventDispatchSystem swaps the bus's buffers and delivers last tick's
// component-lifecycle echoes to their subscribers, at the tick boundary
// event.ComponentCreated's doc comment calls for: a full tick of latency
// traded for running outside Fix/Release.
type eventDispatchSystem struct {
	bus *event.Bus
}

func newEventDispatchSystem(bus *event.Bus) *eventDispatchSystem {
	return &eventDispatchSystem{bus: bus}
}

func (s *eventDispatchSystem) Phase() system.Phase { return system.PhasePreUpdate }

func (s *eventDispatchSystem) Update(time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// movementSystem advances every Position by its paired Velocity, one of the
// two-store queries CleanupComponents leaves compaction-safe to run between
// ticks.
type movementSystem struct {
	manager *ecs.Manager
}

func newMovementSystem(m *ecs.Manager) *movementSystem { return &movementSystem{manager: m} }

func (s *movementSystem) Phase() system.Phase { return system.PhaseUpdate }

func (s *movementSystem) Update(dt time.Duration) {
	velStore, ok := ecs.GetStore[component.Velocity](s.manager, false)
	if !ok {
		return
	}
	posStore, ok := ecs.GetStore[component.Position](s.manager, false)
	if !ok {
		return
	}
	scale := dt.Seconds()
	positions := make(map[ecs.EntityID]*component.Position)
	ecs.Each(posStore, func(id ecs.EntityID, pos *component.Position) {
		positions[id] = pos
	})
	ecs.Each(velStore, func(id ecs.EntityID, vel *component.Velocity) {
		pos, ok := positions[id]
		if !ok {
			return
		}
		pos.X += vel.DX * scale
		pos.Y += vel.DY * scale
	})
}

// cleanupSystem runs store compaction at the tick boundary designated for it.
type cleanupSystem struct {
	manager *ecs.Manager
}

func newCleanupSystem(m *ecs.Manager) *cleanupSystem { return &cleanupSystem{manager: m} }

func (s *cleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *cleanupSystem) Update(time.Duration) {
	s.manager.CleanupComponents()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
