// Package service holds explicitly constructed, typed service lookups that
// replace process-wide singletons.
package service

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry maps a Go type to one provided value of that type.
type Registry struct {
	mu    sync.RWMutex
	items map[reflect.Type]any
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[reflect.Type]any, 8)}
}

// Provide registers v as the service for T, replacing any previous one.
func Provide[T any](r *Registry, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[reflect.TypeFor[T]()] = v
}

// Resolve returns the service registered for T.
func Resolve[T any](r *Registry) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustResolve panics when T has not been provided.
func MustResolve[T any](r *Registry) T {
	v, ok := Resolve[T](r)
	if !ok {
		panic(fmt.Sprintf("service: %s not provided", reflect.TypeFor[T]()))
	}
	return v
}

// Remove drops the service registered for T.
func Remove[T any](r *Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, reflect.TypeFor[T]())
}

// Len reports how many services are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
