// Package component defines the component handles and value types consumed
// by the spatial core's systems. Each component lives in its own file with a
// package-level handle created through NewComponent.
package component

import "sync/atomic"

// ID identifies a component type at runtime.
type ID uint32

var nextID atomic.Uint32

// Handle is a typed key for one component type. Handles are created once at
// package init time and passed to the generic ecs accessors.
type Handle[T any] struct {
	id ID
}

// NewComponent allocates a fresh component id for T.
func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

func (h Handle[T]) ID() ID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}
