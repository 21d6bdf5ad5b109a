// Package spatial provides the broad-phase index over entity bounding
// boxes: an R-tree for rectangle and nearest-neighbor queries plus an
// id-keyed side table for constant-time removal lookups.
package spatial

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/kestrelgames/overworld/geom"
)

// Entry is a single indexed entity.
type Entry struct {
	ID  uint64
	Box geom.AABB
}

// Contact is a narrow-phase result from QueryIntersecting: another entity
// whose hull genuinely overlaps the queried entity's hull, together with the
// minimum translation vector between the two hulls.
type Contact struct {
	ID   uint64
	Hull geom.Shape
	MTV  geom.Vec2
}

// Index maps entity ids to axis-aligned bounding boxes. At most one box is
// held per id at any time; inserting an existing id replaces its previous
// box. The zero value is not usable; construct with NewIndex.
type Index struct {
	tree  rtree.RTreeG[uint64]
	boxes map[uint64]geom.AABB
}

func NewIndex() *Index {
	return &Index{boxes: make(map[uint64]geom.AABB)}
}

// Len returns the number of indexed entities.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.boxes)
}

// Insert adds box under id. If id is already present its previous entry is
// removed first, so Insert doubles as the update path.
func (ix *Index) Insert(id uint64, box geom.AABB) {
	if ix == nil {
		return
	}
	ix.Remove(id)
	ix.tree.Insert(treeMin(box), treeMax(box), id)
	ix.boxes[id] = box
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (ix *Index) Remove(id uint64) {
	if ix == nil {
		return
	}
	box, ok := ix.boxes[id]
	if !ok {
		return
	}
	ix.tree.Delete(treeMin(box), treeMax(box), id)
	delete(ix.boxes, id)
}

// Box returns the indexed box for id, if present.
func (ix *Index) Box(id uint64) (geom.AABB, bool) {
	if ix == nil {
		return geom.AABB{}, false
	}
	box, ok := ix.boxes[id]
	return box, ok
}

// Query returns every entry whose box intersects the query box, excluding
// exclude. Boxes that merely touch along an edge count, as do zero-extent
// point boxes. Results are sorted ascending by squared distance from each
// entry's bounds to the query box's center; the sort is stable so ties keep
// the tree's traversal order and stay deterministic.
func (ix *Index) Query(box geom.AABB, exclude uint64) []Entry {
	if ix == nil {
		return nil
	}
	var out []Entry
	ix.tree.Search(treeMin(box), treeMax(box), func(_, _ [2]float64, id uint64) bool {
		if id == exclude {
			return true
		}
		out = append(out, Entry{ID: id, Box: ix.boxes[id]})
		return true
	})
	center := box.Center()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box.DistSqToPoint(center) < out[j].Box.DistSqToPoint(center)
	})
	return out
}

// QueryNearest returns up to n entries nearest to p, excluding exclude,
// ordered nearest first.
func (ix *Index) QueryNearest(p geom.Vec2, n int, exclude uint64) []Entry {
	if ix == nil || n <= 0 {
		return nil
	}
	point := [2]float64{p.X, p.Y}
	out := make([]Entry, 0, n)
	ix.tree.Nearby(
		rtree.BoxDist[float64, uint64](point, point, nil),
		func(_, _ [2]float64, id uint64, _ float64) bool {
			if id == exclude {
				return true
			}
			out = append(out, Entry{ID: id, Box: ix.boxes[id]})
			return len(out) < n
		},
	)
	return out
}

// QueryIntersecting resolves the queried entity's hull and position through
// the supplied lookups, broad-phase queries its translated hull's box, then
// narrow-phase filters the candidates with the separating axis test. Only
// candidates with a genuine overlap (a nonzero mtv) are returned, in query
// order. The returned MTV for each contact is oriented so that subtracting
// it from the queried entity's position resolves that overlap.
//
// Entities missing a hull or position on either side are excluded. When
// barrier is non-nil, both the queried entity and every candidate must
// satisfy it.
func (ix *Index) QueryIntersecting(
	id uint64,
	hull func(uint64) (geom.Shape, bool),
	pos func(uint64) (geom.Vec2, bool),
	barrier func(uint64) bool,
) []Contact {
	if ix == nil || hull == nil || pos == nil {
		return nil
	}
	myHull, ok := hull(id)
	if !ok {
		return nil
	}
	myPos, ok := pos(id)
	if !ok {
		return nil
	}
	if barrier != nil && !barrier(id) {
		return nil
	}

	var out []Contact
	for _, entry := range ix.Query(myHull.AABB().Translate(myPos), id) {
		if barrier != nil && !barrier(entry.ID) {
			continue
		}
		otherHull, ok := hull(entry.ID)
		if !ok {
			continue
		}
		otherPos, ok := pos(entry.ID)
		if !ok {
			continue
		}
		mtv, ok := myHull.MTVApart(myPos, otherHull, otherPos)
		if !ok || mtv.IsZero() {
			continue
		}
		out = append(out, Contact{ID: entry.ID, Hull: otherHull, MTV: mtv})
	}
	return out
}

func treeMin(box geom.AABB) [2]float64 {
	return [2]float64{box.Left(), box.Top()}
}

func treeMax(box geom.AABB) [2]float64 {
	return [2]float64{box.Right(), box.Bottom()}
}
