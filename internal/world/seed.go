package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/ecs"
)

// SeedFile describes a batch of demo entities to fix on world boot: a plain
// struct tagged `yaml:"..."`, unmarshalled with gopkg.in/yaml.v3.
type SeedFile struct {
	Entities []SeedEntity `yaml:"entities"`
}

// SeedEntity seeds one entity with an optional Position/Velocity/Health, so
// a demo or test can describe a starting world state declaratively instead
// of calling ecs.CreateComponent by hand for every fixture.
type SeedEntity struct {
	Name     string             `yaml:"name"`
	Position *component.Position `yaml:"position"`
	Velocity *component.Velocity `yaml:"velocity"`
	Health   *component.Health   `yaml:"health"`
}

// LoadSeedFile reads and parses a seed YAML document.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var sf SeedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &sf, nil
}

// Apply fixes every seeded entity's components into the manager, using
// Expand to pre-size each store to the batch it's about to receive.
func (sf *SeedFile) Apply(m *ecs.Manager, pool *EntityPool) []ecs.EntityID {
	n := len(sf.Entities)
	if positionStore, ok := ecs.GetStore[component.Position](m, true); ok {
		positionStore.Expand(n)
	}
	if velocityStore, ok := ecs.GetStore[component.Velocity](m, true); ok {
		velocityStore.Expand(n)
	}
	if healthStore, ok := ecs.GetStore[component.Health](m, true); ok {
		healthStore.Expand(n)
	}

	ids := make([]ecs.EntityID, 0, n)
	for _, e := range sf.Entities {
		id := pool.Create()
		if e.Position != nil {
			ecs.CreateComponent(m, id, *e.Position)
		}
		if e.Velocity != nil {
			ecs.CreateComponent(m, id, *e.Velocity)
		}
		if e.Health != nil {
			ecs.CreateComponent(m, id, *e.Health)
		}
		ids = append(ids, id)
	}
	return ids
}
