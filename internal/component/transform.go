// Package component holds the engine's built-in components.
package component

import (
	"time"

	"github.com/tecs/engine/internal/core/ecs"
)

// Register assigns ids to the built-in components in a fixed order, which
// is also the order the System updates them in.
func Register(types *ecs.TypeRegistry) {
	ecs.RegisterType[Transform](types)
	ecs.RegisterType[Velocity](types)
	ecs.RegisterType[Wander](types)
	ecs.RegisterType[Lifetime](types)
}

type TransformConfig struct {
	X float64 `yaml:"x" field:"x"`
	Y float64 `yaml:"y" field:"y"`
}

// Transform is a 2D position.
type Transform struct {
	X, Y float64
}

func (t *Transform) Import(cfg ecs.Config) bool {
	c, ok := ecs.ConfigAs[*TransformConfig](cfg)
	if !ok {
		return false
	}
	t.X, t.Y = c.X, c.Y
	return true
}

func (t *Transform) Export() ecs.Config {
	return &TransformConfig{X: t.X, Y: t.Y}
}

func (*Transform) Update(ecs.EntityHandle, time.Duration) {}
