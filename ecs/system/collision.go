// Package system holds the per-frame passes that run over the world: the
// collision pass and the fence-crossing pass. The scheduler must run the
// collision pass first so fence decisions see post-collision positions.
package system

import (
	"math"

	"github.com/kestrelgames/overworld/ecs"
	"github.com/kestrelgames/overworld/ecs/component"
	"github.com/kestrelgames/overworld/geom"
	"github.com/kestrelgames/overworld/spatial"
)

// CollisionSystem integrates velocities into positions, pushes overlapping
// barriers apart, and keeps the spatial index in sync by draining the hull
// and position change queues.
//
// Overlap resolution is a single-pass fold: every mtv returned by the
// broad+narrow query is subtracted from the entity's position in query
// order. This is an approximation, not an iterative solver; stacks of three
// or more bodies can keep residual overlap for a frame.
type CollisionSystem struct {
	index           *spatial.Index
	hullChanges     *ecs.ChangeQueue
	positionChanges *ecs.ChangeQueue
}

// NewCollisionSystem subscribes the system to hull and position changes on
// the world. Construct it before spawning entities so spawn events reach
// the index on the first tick.
func NewCollisionSystem(w *ecs.World, index *spatial.Index) *CollisionSystem {
	return &CollisionSystem{
		index:           index,
		hullChanges:     w.Watch(component.HullComponent.ID()),
		positionChanges: w.Watch(component.PositionComponent.ID()),
	}
}

func (cs *CollisionSystem) Update(w *ecs.World, dt float64) {
	if cs == nil || w == nil || cs.index == nil {
		return
	}
	cs.integrate(w, dt)
	cs.resolve(w)
	cs.reindex(w)
}

// integrate advances every active entity with a velocity and records the
// cardinal direction of any nonzero displacement.
func (cs *CollisionSystem) integrate(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PositionComponent, component.VelocityComponent,
		func(e ecs.Entity, pos *component.Position, vel *component.Velocity) {
			if ecs.Has(w, e, component.ExcludedComponent) {
				return
			}
			disp := vel.Vel.Mul(dt)
			if disp.IsZero() {
				return
			}
			pos.Pos = pos.Pos.Add(disp)
			w.NotifyModified(e, component.PositionComponent.ID())
			_ = ecs.Add(w, e, component.HeadingComponent, component.Heading{Dir: cardinal(disp)})
		})
}

// cardinal picks the dominant axis of a displacement. Exactly equal
// magnitudes yield no direction.
func cardinal(d geom.Vec2) component.Direction {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ax > ay:
		if d.X > 0 {
			return component.DirEast
		}
		return component.DirWest
	case ay > ax:
		if d.Y > 0 {
			return component.DirSouth
		}
		return component.DirNorth
	default:
		return component.DirNone
	}
}

// resolve pushes every active barrier entity out of the barriers it
// overlaps. Only entities carrying Position, Hull, ZLevel, and Velocity are
// displaced; candidates on a different z-level or flagged excluded are
// skipped before the fold.
func (cs *CollisionSystem) resolve(w *ecs.World) {
	ecs.ForEach3(w, component.PositionComponent, component.HullComponent, component.VelocityComponent,
		func(e ecs.Entity, pos *component.Position, hull *component.Hull, _ *component.Velocity) {
			if ecs.Has(w, e, component.ExcludedComponent) {
				return
			}
			if !ecs.Has(w, e, component.BarrierComponent) {
				return
			}
			z, ok := ecs.Get(w, e, component.ZLevelComponent)
			if !ok {
				return
			}

			contacts := cs.index.QueryIntersecting(uint64(e), cs.hullFor(w), cs.positionFor(w), cs.barrierFor(w))
			moved := false
			for _, contact := range contacts {
				other := ecs.Entity(contact.ID)
				if ecs.Has(w, other, component.ExcludedComponent) {
					continue
				}
				otherZ, ok := ecs.Get(w, other, component.ZLevelComponent)
				if !ok || otherZ.Level != z.Level {
					continue
				}
				pos.Pos = pos.Pos.Sub(contact.MTV)
				moved = true
			}
			if moved {
				w.NotifyModified(e, component.PositionComponent.ID())
			}
		})
}

// reindex drains both change queues and applies them to the index, looking
// up the current translated hull bounds of each still-alive entity.
func (cs *CollisionSystem) reindex(w *ecs.World) {
	events := toSpatial(cs.hullChanges.Drain())
	events = append(events, toSpatial(cs.positionChanges.Drain())...)
	if len(events) == 0 {
		return
	}
	cs.index.Apply(events, func(id uint64) (geom.AABB, bool) {
		e := ecs.Entity(id)
		hull, ok := ecs.Get(w, e, component.HullComponent)
		if !ok {
			return geom.AABB{}, false
		}
		pos, ok := ecs.Get(w, e, component.PositionComponent)
		if !ok {
			return geom.AABB{}, false
		}
		return hull.Shape.AABB().Translate(pos.Pos), true
	})
}

func (cs *CollisionSystem) hullFor(w *ecs.World) func(uint64) (geom.Shape, bool) {
	return func(id uint64) (geom.Shape, bool) {
		hull, ok := ecs.Get(w, ecs.Entity(id), component.HullComponent)
		if !ok {
			return geom.Shape{}, false
		}
		return hull.Shape, true
	}
}

func (cs *CollisionSystem) positionFor(w *ecs.World) func(uint64) (geom.Vec2, bool) {
	return func(id uint64) (geom.Vec2, bool) {
		pos, ok := ecs.Get(w, ecs.Entity(id), component.PositionComponent)
		if !ok {
			return geom.Vec2{}, false
		}
		return pos.Pos, true
	}
}

func (cs *CollisionSystem) barrierFor(w *ecs.World) func(uint64) bool {
	return func(id uint64) bool {
		return ecs.Has(w, ecs.Entity(id), component.BarrierComponent)
	}
}

func toSpatial(changes []ecs.Change) []spatial.Change {
	if len(changes) == 0 {
		return nil
	}
	out := make([]spatial.Change, 0, len(changes))
	for _, c := range changes {
		var kind spatial.ChangeKind
		switch c.Kind {
		case ecs.ChangeInserted:
			kind = spatial.Inserted
		case ecs.ChangeModified:
			kind = spatial.Modified
		case ecs.ChangeRemoved:
			kind = spatial.Removed
		default:
			continue
		}
		out = append(out, spatial.Change{Kind: kind, ID: uint64(c.Entity)})
	}
	return out
}
