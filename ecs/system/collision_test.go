package system

import (
	"testing"

	"github.com/kestrelgames/overworld/ecs"
	"github.com/kestrelgames/overworld/ecs/component"
	"github.com/kestrelgames/overworld/geom"
	"github.com/kestrelgames/overworld/spatial"
)

func newCollisionWorld() (*ecs.World, *spatial.Index, *CollisionSystem) {
	w := ecs.NewWorld()
	ix := spatial.NewIndex()
	return w, ix, NewCollisionSystem(w, ix)
}

type spawnOpts struct {
	pos      geom.Vec2
	vel      *geom.Vec2
	hull     *geom.Shape
	barrier  bool
	z        *int
	excluded bool
}

func spawn(t *testing.T, w *ecs.World, o spawnOpts) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.PositionComponent, component.Position{Pos: o.pos}); err != nil {
		t.Fatalf("add position: %v", err)
	}
	if o.vel != nil {
		_ = ecs.Add(w, e, component.VelocityComponent, component.Velocity{Vel: *o.vel})
	}
	if o.hull != nil {
		_ = ecs.Add(w, e, component.HullComponent, component.Hull{Shape: *o.hull})
	}
	if o.barrier {
		_ = ecs.Add(w, e, component.BarrierComponent, component.Barrier{})
	}
	if o.z != nil {
		_ = ecs.Add(w, e, component.ZLevelComponent, component.ZLevel{Level: *o.z})
	}
	if o.excluded {
		_ = ecs.Add(w, e, component.ExcludedComponent, component.Excluded{})
	}
	return e
}

func vp(x, y float64) *geom.Vec2 {
	v := geom.V(x, y)
	return &v
}

func sp(s geom.Shape) *geom.Shape { return &s }

func zp(z int) *int { return &z }

func positionOf(t *testing.T, w *ecs.World, e ecs.Entity) geom.Vec2 {
	t.Helper()
	pos, ok := ecs.Get(w, e, component.PositionComponent)
	if !ok {
		t.Fatalf("entity %v has no position", e)
	}
	return pos.Pos
}

func TestIntegrateMovesEntities(t *testing.T) {
	w, _, cs := newCollisionWorld()
	mover := spawn(t, w, spawnOpts{pos: geom.V(0, 0), vel: vp(60, 0)})
	still := spawn(t, w, spawnOpts{pos: geom.V(5, 5), vel: vp(0, 0)})
	frozen := spawn(t, w, spawnOpts{pos: geom.V(9, 9), vel: vp(60, 0), excluded: true})

	cs.Update(w, 0.5)

	if got := positionOf(t, w, mover); got != geom.V(30, 0) {
		t.Fatalf("mover: got %v, want (30, 0)", got)
	}
	if got := positionOf(t, w, still); got != geom.V(5, 5) {
		t.Fatalf("still entity moved: %v", got)
	}
	if got := positionOf(t, w, frozen); got != geom.V(9, 9) {
		t.Fatalf("excluded entity moved: %v", got)
	}
}

func TestIntegrateSetsHeading(t *testing.T) {
	cases := []struct {
		name string
		vel  geom.Vec2
		want component.Direction
	}{
		{"east", geom.V(60, 0), component.DirEast},
		{"west", geom.V(-60, 0), component.DirWest},
		{"south", geom.V(0, 60), component.DirSouth},
		{"north", geom.V(0, -60), component.DirNorth},
		{"mostly_east", geom.V(60, 30), component.DirEast},
		{"exact_diagonal", geom.V(60, 60), component.DirNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, cs := newCollisionWorld()
			e := spawn(t, w, spawnOpts{pos: geom.V(0, 0), vel: &c.vel})

			cs.Update(w, 1.0/60.0)

			heading, ok := ecs.Get(w, e, component.HeadingComponent)
			if !ok {
				t.Fatalf("no heading after movement")
			}
			if heading.Dir != c.want {
				t.Fatalf("got %q, want %q", heading.Dir, c.want)
			}
		})
	}

	t.Run("no_heading_when_idle", func(t *testing.T) {
		w, _, cs := newCollisionWorld()
		e := spawn(t, w, spawnOpts{pos: geom.V(0, 0), vel: vp(0, 0)})
		cs.Update(w, 1.0/60.0)
		if ecs.Has(w, e, component.HeadingComponent) {
			t.Fatalf("idle entity got a heading")
		}
	})
}

func TestResolveSeparatesBarriers(t *testing.T) {
	box := geom.NewBox(geom.V(0, 0), geom.V(10, 10))

	w, ix, cs := newCollisionWorld()
	wall := spawn(t, w, spawnOpts{pos: geom.V(0, 0), hull: sp(box), barrier: true, z: zp(0)})
	mover := spawn(t, w, spawnOpts{pos: geom.V(8, 0), vel: vp(0, 0), hull: sp(box), barrier: true, z: zp(0)})

	// First tick flushes the spawn events into the index; with an empty
	// index nothing is resolved yet.
	cs.Update(w, 0)
	cs.Update(w, 0)

	if got := positionOf(t, w, mover); got != geom.V(10, 0) {
		t.Fatalf("mover not pushed out: got %v, want (10, 0)", got)
	}
	if got := positionOf(t, w, wall); got != geom.V(0, 0) {
		t.Fatalf("wall without velocity was displaced: %v", got)
	}
	// The index follows the resolved position.
	if b, ok := ix.Box(uint64(mover)); !ok || b.TopLeft != geom.V(10, 0) {
		t.Fatalf("index box: got %+v, %v", b, ok)
	}
}

func TestResolveSkips(t *testing.T) {
	box := geom.NewBox(geom.V(0, 0), geom.V(10, 10))

	cases := []struct {
		name string
		wall spawnOpts
	}{
		{"different_z_level", spawnOpts{pos: geom.V(0, 0), hull: sp(box), barrier: true, z: zp(1)}},
		{"excluded_candidate", spawnOpts{pos: geom.V(0, 0), hull: sp(box), barrier: true, z: zp(0), excluded: true}},
		{"non_barrier_candidate", spawnOpts{pos: geom.V(0, 0), hull: sp(box), z: zp(0)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, cs := newCollisionWorld()
			spawn(t, w, c.wall)
			mover := spawn(t, w, spawnOpts{pos: geom.V(8, 0), vel: vp(0, 0), hull: sp(box), barrier: true, z: zp(0)})

			cs.Update(w, 0)
			cs.Update(w, 0)

			if got := positionOf(t, w, mover); got != geom.V(8, 0) {
				t.Fatalf("mover displaced: %v", got)
			}
		})
	}

	t.Run("non_barrier_mover", func(t *testing.T) {
		w, _, cs := newCollisionWorld()
		spawn(t, w, spawnOpts{pos: geom.V(0, 0), hull: sp(box), barrier: true, z: zp(0)})
		ghost := spawn(t, w, spawnOpts{pos: geom.V(8, 0), vel: vp(0, 0), hull: sp(box), z: zp(0)})

		cs.Update(w, 0)
		cs.Update(w, 0)

		if got := positionOf(t, w, ghost); got != geom.V(8, 0) {
			t.Fatalf("non-barrier entity displaced: %v", got)
		}
	})
}

func TestReindexFollowsMovementAndDestruction(t *testing.T) {
	box := geom.NewBox(geom.V(0, 0), geom.V(10, 10))

	w, ix, cs := newCollisionWorld()
	e := spawn(t, w, spawnOpts{pos: geom.V(0, 0), vel: vp(60, 0), hull: sp(box), barrier: true, z: zp(0)})

	cs.Update(w, 1)
	if b, ok := ix.Box(uint64(e)); !ok || b.TopLeft != geom.V(60, 0) {
		t.Fatalf("after move: got %+v, %v", b, ok)
	}

	w.DestroyEntity(e)
	cs.Update(w, 1)
	if _, ok := ix.Box(uint64(e)); ok {
		t.Fatalf("destroyed entity still indexed")
	}
	if ix.Len() != 0 {
		t.Fatalf("index len: got %d", ix.Len())
	}
}
