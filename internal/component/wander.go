package component

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/service"
	"github.com/tecs/engine/internal/job"
)

type WanderConfig struct {
	// Turn is the largest heading change in radians per second.
	Turn float64 `yaml:"turn" field:"turn"`
	Seed uint64  `yaml:"seed" field:"seed"`
}

// Wander randomly turns the entity's Velocity while keeping its speed. The
// heading is computed on the job scheduler when one is provided.
type Wander struct {
	Turn float64

	seed uint64
	rng  *rand.Rand
}

func (w *Wander) Import(cfg ecs.Config) bool {
	c, ok := ecs.ConfigAs[*WanderConfig](cfg)
	if !ok {
		return false
	}
	w.Turn = c.Turn
	if w.rng == nil || w.seed != c.Seed {
		w.seed = c.Seed
		w.rng = rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	}
	return true
}

func (w *Wander) Export() ecs.Config {
	return &WanderConfig{Turn: w.Turn, Seed: w.seed}
}

func (w *Wander) Update(h ecs.EntityHandle, dt time.Duration) {
	v, ok := ecs.Lookup[Velocity](h)
	if !ok || w.rng == nil {
		return
	}
	speed := math.Hypot(v.VX, v.VY)
	heading := math.Atan2(v.VY, v.VX)
	steer := func() {
		heading += (w.rng.Float64()*2 - 1) * w.Turn * dt.Seconds()
	}

	sched, ok := service.Resolve[*job.Scheduler](h.World().Services())
	if !ok {
		steer()
	} else if jh, err := sched.Schedule(steer); err != nil {
		steer()
	} else if err := jh.Wait(); err != nil {
		return
	}

	v.VX = speed * math.Cos(heading)
	v.VY = speed * math.Sin(heading)
}
