package system

import (
	"time"

	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/event"
	"github.com/tecs/engine/internal/core/object"
	"go.uber.org/zap"
)

// System drives one frame: it compiles and updates the entity object graph,
// then updates every indexed component in ascending component id order.
type System struct {
	world *ecs.World
	graph *object.Graph
	bus   *event.Bus
	log   *zap.Logger
	now   func() time.Time

	last  time.Time
	frame uint64
}

// Option configures a System.
type Option func(*System)

// WithBus makes the System swap and dispatch bus at the start of each frame.
func WithBus(b *event.Bus) Option {
	return func(s *System) { s.bus = b }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *System) { s.log = log }
}

// WithClock replaces time.Now as the source of frame deltas.
func WithClock(now func() time.Time) Option {
	return func(s *System) { s.now = now }
}

func New(world *ecs.World, graph *object.Graph, opts ...Option) *System {
	s := &System{
		world: world,
		graph: graph,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frame reports how many frames have run.
func (s *System) Frame() uint64 { return s.frame }

// Update runs a frame with the time elapsed since the previous call. The
// first call runs with a zero delta. It returns false when the loop should stop.
func (s *System) Update() bool {
	now := s.now()
	var dt time.Duration
	if !s.last.IsZero() {
		dt = now.Sub(s.last)
	}
	s.last = now
	return s.Step(dt)
}

// Step runs a frame with an explicit delta.
//
// An object returning false from OnStart or OnUpdate ends the frame before
// components are swept. An empty graph still sweeps components, then reports stop.
func (s *System) Step(dt time.Duration) bool {
	s.frame++
	if s.bus != nil {
		s.bus.SwapBuffers()
		s.bus.DispatchAll()
	}

	if !s.graph.Compile() {
		s.updateComponents(dt)
		s.stopped("entity object graph empty")
		return false
	}
	if !s.graph.Update(dt) {
		s.stopped("entity object requested stop")
		return false
	}
	s.updateComponents(dt)
	return true
}

func (s *System) updateComponents(dt time.Duration) {
	types := s.world.Types()
	for id := ecs.ComponentID(0); id < types.MaxID(); id++ {
		for _, e := range s.world.View(id) {
			// an earlier update may have destroyed e or detached the component
			if !s.world.CheckEntityValidity(e) {
				continue
			}
			c := s.world.GetComponent(e, id)
			if c == nil {
				continue
			}
			c.Update(ecs.NewHandle(s.world, e), dt)
		}
	}
}

func (s *System) stopped(reason string) {
	s.log.Debug("frame stopped", zap.Uint64("frame", s.frame), zap.String("reason", reason))
	event.Emit(s.bus, event.FrameStopped{Frame: s.frame, Reason: reason})
}
