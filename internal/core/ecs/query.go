package ecs

// Attach builds a T, imports cfg into it and adds it to h's entity.
// It returns false, attaching nothing, when cfg is not T's config type.
func Attach[T any, PT ComponentPtr[T]](h EntityHandle, cfg Config) bool {
	c := PT(new(T))
	if !c.Import(cfg) {
		return false
	}
	return h.AddComponent(IDOf[T, PT](h.world.types), c)
}

// Lookup returns h's component of type T.
func Lookup[T any, PT ComponentPtr[T]](h EntityHandle) (PT, bool) {
	c, ok := h.GetComponent(IDOf[T, PT](h.world.types)).(PT)
	return c, ok
}

func Has[T any, PT ComponentPtr[T]](h EntityHandle) bool {
	return h.HasComponent(IDOf[T, PT](h.world.types))
}

func Detach[T any, PT ComponentPtr[T]](h EntityHandle) bool {
	return h.RemoveComponent(IDOf[T, PT](h.world.types))
}

// Each visits every committed entity owning a T, in View order.
func Each[T any, PT ComponentPtr[T]](w *World, fn func(EntityHandle, PT)) {
	id := IDOf[T, PT](w.types)
	for _, e := range w.View(id) {
		if !w.CheckEntityValidity(e) {
			continue
		}
		if c, ok := w.GetComponent(e, id).(PT); ok {
			fn(NewHandle(w, e), c)
		}
	}
}

// Each2 visits committed entities owning both A and B. It walks the smaller
// view and checks the other.
func Each2[A any, B any, PA ComponentPtr[A], PB ComponentPtr[B]](w *World, fn func(EntityHandle, PA, PB)) {
	ia, ib := IDOf[A, PA](w.types), IDOf[B, PB](w.types)
	walk := ia
	if w.ViewLen(ib) < w.ViewLen(ia) {
		walk = ib
	}
	for _, e := range w.View(walk) {
		if !w.CheckEntityValidity(e) {
			continue
		}
		a, okA := w.GetComponent(e, ia).(PA)
		b, okB := w.GetComponent(e, ib).(PB)
		if okA && okB {
			fn(NewHandle(w, e), a, b)
		}
	}
}
