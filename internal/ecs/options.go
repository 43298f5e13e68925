package ecs

import "go.uber.org/zap"

// StoreOptions configures a Store[T] at construction time.
type StoreOptions struct {
	// InitialSize is the initial capacity of the dense array. Default 100.
	InitialSize int
	// AutoIncreaseRate is the multiplier applied to capacity when growth
	// triggers. Default 2.0.
	AutoIncreaseRate float64
	// AutoIncreaseTriggerEdge is the fractional fill of capacity that
	// pre-triggers growth. Default 1.2 -- note this is > 1.0, so the
	// pre-trigger clause is dead until the hard pos>=capacity guard also
	// fires. Kept as shipped rather than tuned below 1.0.
	AutoIncreaseTriggerEdge float64
	// Pool supplies RefCores. Defaults to the process-wide pool.
	Pool RefCorePool
	// Logger receives hook-fault and lifecycle diagnostics. Defaults to a
	// no-op logger.
	Logger *zap.Logger
}

// DefaultStoreOptions returns the documented defaults.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		InitialSize:             100,
		AutoIncreaseRate:        2.0,
		AutoIncreaseTriggerEdge: 1.2,
	}
}

func (o StoreOptions) withDefaults() StoreOptions {
	if o.InitialSize <= 0 {
		o.InitialSize = 100
	}
	if o.AutoIncreaseRate <= 0 {
		o.AutoIncreaseRate = 2.0
	}
	if o.AutoIncreaseTriggerEdge <= 0 {
		o.AutoIncreaseTriggerEdge = 1.2
	}
	if o.Pool == nil {
		o.Pool = defaultRefCorePool
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
