package event

import "github.com/tecs/engine/internal/core/ecs"

// ObjectStarted fires after an entity object's OnStart succeeded.
type ObjectStarted struct {
	Entity ecs.Entity
}

// ObjectPruned fires when Compile drops an object whose entity is gone.
type ObjectPruned struct {
	Entity ecs.Entity
}

// FrameStopped fires when a frame ends on a stop signal.
type FrameStopped struct {
	Frame  uint64
	Reason string
}
