package ecs

import (
	"errors"

	"github.com/kestrelgames/overworld/ecs/component"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidHandle  = errors.New("ecs: invalid component handle")
)

// World owns entities, component storages, and the change queues that feed
// the spatial index. It is single-threaded by design: systems run one after
// another inside a tick and get exclusive access.
type World struct {
	entities entityStore
	stores   map[component.ID]*sparseSet
	watchers map[component.ID][]*ChangeQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ID]*sparseSet),
		watchers: make(map[component.ID][]*ChangeQueue),
	}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes all of an entity's components and invalidates the
// handle. Watchers of each removed component see a ChangeRemoved event.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for id, store := range w.stores {
		if store.remove(e.id()) {
			w.notify(id, Change{Kind: ChangeRemoved, Entity: e})
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is current.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// AddComponent sets the component value for an entity. Adding over an
// existing component replaces it and reports ChangeModified instead of
// ChangeInserted.
func (w *World) AddComponent(e Entity, id component.ID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return ErrEntityNotAlive
	}
	if id == 0 {
		return ErrInvalidHandle
	}
	if value == nil {
		return ErrNilComponent
	}
	store := w.store(id)
	kind := ChangeInserted
	if store.has(e.id()) {
		kind = ChangeModified
	}
	store.set(e.id(), value)
	w.notify(id, Change{Kind: kind, Entity: e})
	return nil
}

// RemoveComponent deletes the component from the entity, reporting whether
// anything was removed.
func (w *World) RemoveComponent(e Entity, id component.ID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if !w.store(id).remove(e.id()) {
		return false
	}
	w.notify(id, Change{Kind: ChangeRemoved, Entity: e})
	return true
}

// GetComponent returns the stored value for the entity's component.
func (w *World) GetComponent(e Entity, id component.ID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(id).get(e.id())
	if v == nil {
		return nil, false
	}
	return v, true
}

// HasComponent reports whether the entity has the component.
func (w *World) HasComponent(e Entity, id component.ID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id).has(e.id())
}

// Watch subscribes a new change queue to a component type. Every Inserted,
// Modified, and Removed event for that component is pushed to the queue
// until the world goes away. Queues are drained by their consumer.
func (w *World) Watch(id component.ID) *ChangeQueue {
	if w == nil {
		return nil
	}
	q := &ChangeQueue{}
	w.watchers[id] = append(w.watchers[id], q)
	return q
}

// NotifyModified reports an in-place mutation of an entity's component to
// that component's watchers. Systems that write through a pointer must call
// this for the change to reach the spatial index.
func (w *World) NotifyModified(e Entity, id component.ID) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	w.notify(id, Change{Kind: ChangeModified, Entity: e})
}

// Count returns how many entities carry the component.
func (w *World) Count(id component.ID) int {
	if w == nil {
		return 0
	}
	return w.store(id).len()
}

func (w *World) notify(id component.ID, c Change) {
	for _, q := range w.watchers[id] {
		q.push(c)
	}
}

func (w *World) store(id component.ID) *sparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// entityAt rebuilds the live handle for a dense slot id.
func (w *World) entityAt(id entityID) Entity {
	return makeEntity(id, w.entities.gens[id])
}
