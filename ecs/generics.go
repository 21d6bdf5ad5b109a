package ecs

import "github.com/kestrelgames/overworld/ecs/component"

// Add sets the component value for an entity, replacing any existing value.
func Add[T any](w *World, e Entity, h component.Handle[T], value T) error {
	return w.AddComponent(e, h.ID(), &value)
}

// Remove deletes the component from the entity.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	return w.RemoveComponent(e, h.ID())
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	return w.HasComponent(e, h.ID())
}

// Get returns a pointer to the entity's component so callers can mutate it
// in place. In-place writes must be followed by World.NotifyModified for
// watchers to see them.
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, h.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach visits every entity carrying the component. The visited set is
// the dense storage snapshotted at call time; adding or removing components
// of the same type during iteration is not supported.
func ForEach[T any](w *World, h component.Handle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	store := w.store(h.ID())
	for i, id := range store.denseIDs {
		v, ok := store.denseValues[i].(*T)
		if !ok {
			continue
		}
		fn(w.entityAt(id), v)
	}
}

// ForEach2 visits every entity carrying both components, iterating the
// first component's storage.
func ForEach2[A, B any](w *World, ha component.Handle[A], hb component.Handle[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		b, ok := Get(w, e, hb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits every entity carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.Handle[A], hb component.Handle[B], hc component.Handle[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	ForEach2(w, ha, hb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, hc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}
