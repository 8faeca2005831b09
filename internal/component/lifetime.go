package component

import (
	"time"

	"github.com/tecs/engine/internal/core/ecs"
)

type LifetimeConfig struct {
	Seconds float64 `yaml:"seconds" field:"seconds"`
}

// Lifetime destroys its entity once the remaining time runs out.
type Lifetime struct {
	Remaining time.Duration
}

func (l *Lifetime) Import(cfg ecs.Config) bool {
	c, ok := ecs.ConfigAs[*LifetimeConfig](cfg)
	if !ok {
		return false
	}
	l.Remaining = time.Duration(c.Seconds * float64(time.Second))
	return true
}

func (l *Lifetime) Export() ecs.Config {
	return &LifetimeConfig{Seconds: l.Remaining.Seconds()}
}

func (l *Lifetime) Update(h ecs.EntityHandle, dt time.Duration) {
	l.Remaining -= dt
	if l.Remaining <= 0 {
		h.Destroy()
	}
}
