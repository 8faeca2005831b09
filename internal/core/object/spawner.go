package object

import (
	"fmt"

	"github.com/tecs/engine/internal/core/ecs"
	"go.uber.org/zap"
)

// Spawner creates entity objects in a World and hands them to a Graph.
type Spawner struct {
	world *ecs.World
	graph *Graph
	log   *zap.Logger
}

func NewSpawner(world *ecs.World, graph *Graph, log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{world: world, graph: graph, log: log}
}

// Spawn creates an entity, wraps it with b and adds the object to the graph.
// The entity is not committed.
func (s *Spawner) Spawn(b Behavior) *EntityObject {
	o, _ := s.SpawnWith(nil, b)
	return o
}

// SpawnWith runs setup on the fresh entity before OnCreate fires. If setup
// fails the entity is destroyed and nothing is added to the graph.
func (s *Spawner) SpawnWith(setup func(ecs.EntityHandle) error, b Behavior) (*EntityObject, error) {
	h := ecs.NewHandle(s.world, s.world.CreateEntity())
	if setup != nil {
		if err := setup(h); err != nil {
			h.Destroy()
			return nil, fmt.Errorf("spawn %s: %w", h.Entity(), err)
		}
	}
	o := New(h, b)
	s.graph.Add(o)
	s.log.Debug("entity object spawned", zap.Stringer("entity", h.Entity()))
	return o, nil
}
