package ecs

import (
	"slices"

	"github.com/tecs/engine/internal/core/service"
)

// World owns every entity and component. Components live in the ownership
// map; the per-type index used by View only holds committed entities.
//
// A World is not safe for concurrent use.
type World struct {
	types    *TypeRegistry
	services *service.Registry
	pool     *entityPool

	components map[Entity]map[ComponentID]Component
	index      map[ComponentID]map[Entity]struct{}
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithServices attaches a service registry that components can reach through
// their EntityHandle.
func WithServices(s *service.Registry) WorldOption {
	return func(w *World) { w.services = s }
}

func NewWorld(types *TypeRegistry, opts ...WorldOption) *World {
	w := &World{
		types:      types,
		pool:       newEntityPool(),
		components: make(map[Entity]map[ComponentID]Component, 256),
		index:      make(map[ComponentID]map[Entity]struct{}, 32),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.services == nil {
		w.services = service.NewRegistry()
	}
	return w
}

func (w *World) Types() *TypeRegistry        { return w.types }
func (w *World) Services() *service.Registry { return w.services }

// CreateEntity returns a live entity, recycling a destroyed id when one is
// available. The entity is not visible to View until committed.
func (w *World) CreateEntity() Entity {
	return w.pool.create()
}

// CommitEntity indexes every component currently attached to e.
func (w *World) CommitEntity(e Entity) bool {
	w.mustBeLive(e)
	for id := range w.components[e] {
		w.indexInsert(id, e)
	}
	w.pool.committed[e.ID()] = true
	return true
}

// DestroyEntity removes all of e's components and returns its id to the free list.
func (w *World) DestroyEntity(e Entity) bool {
	w.mustBeLive(e)
	for id := range w.components[e] {
		w.indexDelete(id, e)
	}
	delete(w.components, e)
	w.pool.release(e)
	return true
}

// CheckEntityValidity reports whether e is the live occupant of its id.
// Stale generations and out-of-range ids report false.
func (w *World) CheckEntityValidity(e Entity) bool {
	return w.pool.alive(e)
}

// IsCommitted reports whether e has been committed since it was created.
func (w *World) IsCommitted(e Entity) bool {
	w.mustBeLive(e)
	return w.pool.committed[e.ID()]
}

// AddComponent gives ownership of c to e under id. If e is already committed
// the component becomes visible to View immediately.
func (w *World) AddComponent(e Entity, id ComponentID, c Component) bool {
	w.mustBeLive(e)
	if c == nil {
		violation(ErrMissingComponent, "nil component %d for %s", id, e)
	}
	owned := w.components[e]
	if owned == nil {
		owned = make(map[ComponentID]Component, 4)
		w.components[e] = owned
	}
	if _, dup := owned[id]; dup {
		violation(ErrDuplicateComponent, "%s component %d", e, id)
	}
	owned[id] = c
	if w.pool.committed[e.ID()] {
		w.indexInsert(id, e)
	}
	return true
}

// RemoveComponent detaches id from e and drops it from the index.
func (w *World) RemoveComponent(e Entity, id ComponentID) bool {
	w.mustBeLive(e)
	owned := w.components[e]
	if _, ok := owned[id]; !ok {
		violation(ErrMissingComponent, "%s component %d", e, id)
	}
	delete(owned, id)
	if len(owned) == 0 {
		delete(w.components, e)
	}
	w.indexDelete(id, e)
	return true
}

func (w *World) HasComponent(e Entity, id ComponentID) bool {
	w.mustBeLive(e)
	_, ok := w.components[e][id]
	return ok
}

// GetComponent returns nil when e has no component id.
func (w *World) GetComponent(e Entity, id ComponentID) Component {
	w.mustBeLive(e)
	return w.components[e][id]
}

// GetHavingComponents returns the ids owned by e in ascending order.
func (w *World) GetHavingComponents(e Entity) []ComponentID {
	w.mustBeLive(e)
	owned := w.components[e]
	ids := make([]ComponentID, 0, len(owned))
	for id := range owned {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// View returns a snapshot of the committed entities owning component id,
// sorted by Entity ordering. An id nobody uses yields an empty slice.
func (w *World) View(id ComponentID) []Entity {
	set := w.index[id]
	out := make([]Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.SortFunc(out, Entity.Compare)
	return out
}

// ViewLen is len(View(id)) without the snapshot.
func (w *World) ViewLen(id ComponentID) int {
	return len(w.index[id])
}

// EntityCount reports live entities.
func (w *World) EntityCount() int {
	return w.pool.len() - w.pool.free()
}

func (w *World) indexInsert(id ComponentID, e Entity) {
	set := w.index[id]
	if set == nil {
		set = make(map[Entity]struct{}, 64)
		w.index[id] = set
	}
	set[e] = struct{}{}
}

func (w *World) indexDelete(id ComponentID, e Entity) {
	if set, ok := w.index[id]; ok {
		delete(set, e)
	}
}

func (w *World) mustBeLive(e Entity) {
	if !w.pool.alive(e) {
		violation(ErrInvalidEntity, "%s", e)
	}
}
