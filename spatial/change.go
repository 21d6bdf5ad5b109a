package spatial

import "github.com/kestrelgames/overworld/geom"

// ChangeKind labels a component change event that affects an entity's
// indexed bounds.
type ChangeKind int

const (
	// Inserted means the entity gained a tracked component.
	Inserted ChangeKind = iota
	// Modified means a tracked component's value changed.
	Modified
	// Removed means the entity lost a tracked component or was destroyed.
	Removed
)

// Change is one change event, keyed by entity id.
type Change struct {
	Kind ChangeKind
	ID   uint64
}

// Apply brings the index in sync with a batch of change events without a
// full rebuild. lookup maps an id to its current bounds; returning false
// signals the entity is gone. Inserted and Modified both resolve through
// lookup and upsert (or remove, when lookup fails); Removed always removes.
// Applying an already-applied batch a second time leaves query results
// unchanged.
func (ix *Index) Apply(changes []Change, lookup func(uint64) (geom.AABB, bool)) {
	if ix == nil || lookup == nil {
		return
	}
	for _, c := range changes {
		switch c.Kind {
		case Inserted, Modified:
			if box, ok := lookup(c.ID); ok {
				ix.Insert(c.ID, box)
			} else {
				ix.Remove(c.ID)
			}
		case Removed:
			ix.Remove(c.ID)
		}
	}
}
