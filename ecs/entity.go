// Package ecs is a minimal entity-component store. It exists to carry the
// per-frame spatial passes: systems read and write components through typed
// handles, and mutations flow into change queues that keep the spatial index
// in sync without per-frame rebuilds.
package ecs

import "strconv"

// Entity is a generation-packed entity handle. The low 32 bits are the slot
// id, the high 32 bits the slot's generation, so stale handles from
// destroyed entities never alias a reused slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// entityStore tracks slot generations and the free list. Slot 0 is never
// handed out so the zero Entity stays invalid.
type entityStore struct {
	gens []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	if len(s.gens) == 0 {
		s.gens = append(s.gens, 0)
	}
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return makeEntity(id, s.gens[id])
	}
	s.gens = append(s.gens, 0)
	return makeEntity(entityID(len(s.gens)-1), 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.gens[id]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gens) {
		return false
	}
	return s.gens[id] == e.generation()
}
