package ecs

// ChangeKind labels a component change event.
type ChangeKind int

const (
	// ChangeInserted means the component was added to the entity.
	ChangeInserted ChangeKind = iota
	// ChangeModified means the component's value changed. Adding a
	// component an entity already has also reports Modified.
	ChangeModified
	// ChangeRemoved means the component was removed, including by entity
	// destruction.
	ChangeRemoved
)

// Change is one component change event.
type Change struct {
	Kind   ChangeKind
	Entity Entity
}

// ChangeQueue accumulates change events for one component type. Producers
// push through the world (AddComponent, RemoveComponent, NotifyModified);
// a consumer drains once per frame.
type ChangeQueue struct {
	items []Change
}

func (q *ChangeQueue) push(c Change) {
	if q == nil {
		return
	}
	q.items = append(q.items, c)
}

// Drain returns all queued events and clears the queue.
func (q *ChangeQueue) Drain() []Change {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *ChangeQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
