// Package object provides scripted entity objects: behavior wrappers bound to
// one entity, with create/start/update/destroy hooks driven by a Graph.
package object

import (
	"time"

	"github.com/tecs/engine/internal/core/ecs"
)

// Behavior is the user-supplied part of an EntityObject.
type Behavior interface {
	OnCreate(o *EntityObject)
	// OnStart runs once, on the first frame the object takes part in.
	// Returning false stops the frame and leaves the object unstarted.
	OnStart(o *EntityObject) bool
	// OnUpdate runs every later frame. Returning false stops the frame.
	OnUpdate(o *EntityObject, dt time.Duration) bool
	OnDestroy(o *EntityObject)
}

// Hooks is a Behavior whose hooks do nothing and always succeed. Embed it to
// implement only the hooks you need.
type Hooks struct{}

func (Hooks) OnCreate(*EntityObject)                     {}
func (Hooks) OnStart(*EntityObject) bool                 { return true }
func (Hooks) OnUpdate(*EntityObject, time.Duration) bool { return true }
func (Hooks) OnDestroy(*EntityObject)                    {}

// EntityObject binds a Behavior to one entity.
type EntityObject struct {
	handle    ecs.EntityHandle
	behavior  Behavior
	started   bool
	destroyed bool
}

// New wraps h and fires OnCreate immediately.
func New(h ecs.EntityHandle, b Behavior) *EntityObject {
	if b == nil {
		b = Hooks{}
	}
	o := &EntityObject{handle: h, behavior: b}
	b.OnCreate(o)
	return o
}

func (o *EntityObject) Handle() ecs.EntityHandle { return o.handle }
func (o *EntityObject) Behavior() Behavior       { return o.behavior }
func (o *EntityObject) IsStarted() bool          { return o.started }

// IsValid reports whether the underlying entity is still alive.
func (o *EntityObject) IsValid() bool {
	return !o.destroyed && o.handle.IsValid()
}

// Start runs OnStart and marks the object started on success.
func (o *EntityObject) Start() bool {
	if o.started {
		return true
	}
	if !o.behavior.OnStart(o) {
		return false
	}
	o.started = true
	return true
}

func (o *EntityObject) Update(dt time.Duration) bool {
	return o.behavior.OnUpdate(o, dt)
}

// Destroy runs OnDestroy once and destroys the entity right away. An entity
// already destroyed elsewhere is left alone.
func (o *EntityObject) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.behavior.OnDestroy(o)
	if o.handle.IsValid() {
		o.handle.Destroy()
	}
}
