package object

import (
	"time"

	"github.com/tecs/engine/internal/core/event"
	"go.uber.org/zap"
)

// Graph owns entity objects and the order they update in. The order is
// rebuilt by Compile every frame and is plain insertion order.
type Graph struct {
	objects []*EntityObject
	order   []*EntityObject
	bus     *event.Bus
	log     *zap.Logger
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithBus makes the graph emit ObjectStarted and ObjectPruned events.
func WithBus(b *event.Bus) GraphOption {
	return func(g *Graph) { g.bus = b }
}

// WithLogger sets the graph's logger.
func WithLogger(log *zap.Logger) GraphOption {
	return func(g *Graph) { g.log = log }
}

func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		objects: make([]*EntityObject, 0, 64),
		order:   make([]*EntityObject, 0, 64),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add takes ownership of o. It joins the update order at the next Compile.
func (g *Graph) Add(o *EntityObject) {
	g.objects = append(g.objects, o)
}

// Len reports owned objects, including ones not yet pruned.
func (g *Graph) Len() int { return len(g.objects) }

// Order returns the update order computed by the last Compile.
func (g *Graph) Order() []*EntityObject { return g.order }

// Compile drops objects whose entity is no longer valid and rebuilds the
// update order. It returns false when nothing is left to update.
func (g *Graph) Compile() bool {
	kept := g.objects[:0]
	for _, o := range g.objects {
		if o.IsValid() {
			kept = append(kept, o)
			continue
		}
		g.log.Debug("entity object pruned", zap.Stringer("entity", o.handle.Entity()))
		event.Emit(g.bus, event.ObjectPruned{Entity: o.handle.Entity()})
	}
	clear(g.objects[len(kept):])
	g.objects = kept

	g.order = append(g.order[:0], g.objects...)
	return len(g.order) > 0
}

// Update starts or updates every object in compiled order. The first false
// from OnStart or OnUpdate ends the pass and is returned; objects later in
// the order are not ticked this frame.
func (g *Graph) Update(dt time.Duration) bool {
	for _, o := range g.order {
		if !o.IsValid() {
			continue
		}
		if !o.IsStarted() {
			if !o.Start() {
				g.log.Debug("entity object failed to start", zap.Stringer("entity", o.handle.Entity()))
				return false
			}
			event.Emit(g.bus, event.ObjectStarted{Entity: o.handle.Entity()})
			continue
		}
		if !o.Update(dt) {
			return false
		}
	}
	return true
}
