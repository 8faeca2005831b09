package ecs

import "time"

// ComponentID identifies a component type. Ids are handed out by a TypeRegistry
// in first-use order and are never reused.
type ComponentID uint32

// Config is an opaque configuration payload moved in and out of a component.
// Concrete configs are pointers to structs so they can be reflected over.
type Config any

// Component is the data and behavior record attached to an entity.
// A World owns every component added to it.
type Component interface {
	// Import copies the config into the component. It returns false without
	// touching the component when cfg is not the expected config type.
	Import(cfg Config) bool
	// Export returns a fresh config carrying the current field values.
	Export() Config
	// Update is the per-frame hook. Sibling components are reachable through h.
	Update(h EntityHandle, dt time.Duration)
}

// Named lets a component type choose its registry name instead of the Go type name.
type Named interface {
	ComponentName() string
}

// ComponentPtr constrains generic helpers to pointer types implementing Component.
type ComponentPtr[T any] interface {
	*T
	Component
}

// ConfigAs is the checked downcast every Import performs.
func ConfigAs[C any](cfg Config) (C, bool) {
	c, ok := cfg.(C)
	return c, ok
}
