package ecs

import (
	"reflect"

	"golang.org/x/text/cases"
)

type componentType struct {
	name     string
	explicit bool
	rtype    reflect.Type
	newFn    func() Component
}

// TypeRegistry assigns component ids. One registry is created at startup and
// handed to every World that should share the id space.
type TypeRegistry struct {
	ids       map[reflect.Type]ComponentID
	types     []componentType
	byName    map[string]ComponentID
	ambiguous map[string]bool
	fold      cases.Caser
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		ids:    make(map[reflect.Type]ComponentID, 32),
		types:  make([]componentType, 0, 32),
		byName:    make(map[string]ComponentID, 32),
		ambiguous: make(map[string]bool),
		fold:      cases.Fold(),
	}
}

// RegisterType returns the id of T, assigning the next free id on first use.
// Two types declaring the same ComponentName panic. Types that only share a
// Go type name both get ids, but that name no longer resolves in Lookup.
func RegisterType[T any, PT ComponentPtr[T]](r *TypeRegistry) ComponentID {
	rt := reflect.TypeFor[T]()
	if id, ok := r.ids[rt]; ok {
		return id
	}

	name, explicit := rt.Name(), false
	if n, ok := Component(PT(new(T))).(Named); ok {
		name, explicit = n.ComponentName(), true
	}
	key := r.fold.String(name)
	if prev, ok := r.byName[key]; ok && explicit && r.types[prev].explicit {
		violation(ErrDuplicateName, "name %q already used by %s", name, r.types[prev].rtype)
	}

	id := ComponentID(len(r.types))
	r.types = append(r.types, componentType{
		name:     name,
		explicit: explicit,
		rtype:    rt,
		newFn:    func() Component { return PT(new(T)) },
	})
	r.ids[rt] = id
	r.claim(key, id)
	return id
}

// claim binds key to id. An explicit name takes a key over from a Go type
// name; two Go type names sharing a key leave it unresolvable.
func (r *TypeRegistry) claim(key string, id ComponentID) {
	prev, taken := r.byName[key]
	switch {
	case !taken && !r.ambiguous[key]:
		r.byName[key] = id
	case r.types[id].explicit:
		r.byName[key] = id
		delete(r.ambiguous, key)
	case taken && r.types[prev].explicit:
	default:
		delete(r.byName, key)
		r.ambiguous[key] = true
	}
}

// IDOf is RegisterType under the name callers use for lookups.
func IDOf[T any, PT ComponentPtr[T]](r *TypeRegistry) ComponentID {
	return RegisterType[T, PT](r)
}

// MaxID reports how many ids have been assigned; valid ids are [0, MaxID).
func (r *TypeRegistry) MaxID() ComponentID {
	return ComponentID(len(r.types))
}

// Name returns the registered name of id.
func (r *TypeRegistry) Name(id ComponentID) string {
	return r.entry(id).name
}

// New constructs a zero-valued component of type id.
func (r *TypeRegistry) New(id ComponentID) Component {
	return r.entry(id).newFn()
}

// Lookup finds a component id by name, ignoring case.
func (r *TypeRegistry) Lookup(name string) (ComponentID, bool) {
	id, ok := r.byName[r.fold.String(name)]
	return id, ok
}

func (r *TypeRegistry) entry(id ComponentID) componentType {
	if int(id) >= len(r.types) {
		violation(ErrUnknownComponent, "id %d (max %d)", id, len(r.types))
	}
	return r.types[id]
}
