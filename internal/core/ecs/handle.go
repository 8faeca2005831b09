package ecs

// EntityHandle binds one entity to the World that owns it. Every method
// forwards to the matching World operation.
type EntityHandle struct {
	world  *World
	entity Entity
}

func NewHandle(w *World, e Entity) EntityHandle {
	return EntityHandle{world: w, entity: e}
}

func (h EntityHandle) World() *World   { return h.world }
func (h EntityHandle) Entity() Entity  { return h.entity }
func (h EntityHandle) IsValid() bool   { return h.world != nil && h.world.CheckEntityValidity(h.entity) }
func (h EntityHandle) Commit() bool    { return h.world.CommitEntity(h.entity) }
func (h EntityHandle) Destroy() bool   { return h.world.DestroyEntity(h.entity) }
func (h EntityHandle) Committed() bool { return h.world.IsCommitted(h.entity) }

func (h EntityHandle) AddComponent(id ComponentID, c Component) bool {
	return h.world.AddComponent(h.entity, id, c)
}

func (h EntityHandle) RemoveComponent(id ComponentID) bool {
	return h.world.RemoveComponent(h.entity, id)
}

func (h EntityHandle) HasComponent(id ComponentID) bool {
	return h.world.HasComponent(h.entity, id)
}

func (h EntityHandle) GetComponent(id ComponentID) Component {
	return h.world.GetComponent(h.entity, id)
}

func (h EntityHandle) GetHavingComponents() []ComponentID {
	return h.world.GetHavingComponents(h.entity)
}
