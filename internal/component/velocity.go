package component

import (
	"time"

	"github.com/tecs/engine/internal/core/ecs"
)

type VelocityConfig struct {
	VX float64 `yaml:"vx" field:"vx"`
	VY float64 `yaml:"vy" field:"vy"`
}

// Velocity moves the entity's Transform in units per second.
type Velocity struct {
	VX, VY float64
}

func (v *Velocity) Import(cfg ecs.Config) bool {
	c, ok := ecs.ConfigAs[*VelocityConfig](cfg)
	if !ok {
		return false
	}
	v.VX, v.VY = c.VX, c.VY
	return true
}

func (v *Velocity) Export() ecs.Config {
	return &VelocityConfig{VX: v.VX, VY: v.VY}
}

func (v *Velocity) Update(h ecs.EntityHandle, dt time.Duration) {
	t, ok := ecs.Lookup[Transform](h)
	if !ok {
		return
	}
	secs := dt.Seconds()
	t.X += v.VX * secs
	t.Y += v.VY * secs
}
