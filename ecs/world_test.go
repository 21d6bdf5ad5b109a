package ecs

import (
	"errors"
	"testing"

	"github.com/kestrelgames/overworld/ecs/component"
)

type health struct {
	HP int
}

type label struct {
	Name string
}

var (
	healthComponent = component.NewComponent[health]()
	labelComponent  = component.NewComponent[label]()
)

func TestEntityLifecycle(t *testing.T) {
	w := NewWorld()

	e := w.CreateEntity()
	if !e.Valid() || !w.IsAlive(e) {
		t.Fatalf("created entity not alive: %v", e)
	}
	var zero Entity
	if zero.Valid() || w.IsAlive(zero) {
		t.Fatalf("zero entity must be invalid")
	}

	if !w.DestroyEntity(e) {
		t.Fatalf("destroy failed")
	}
	if w.IsAlive(e) {
		t.Fatalf("destroyed entity still alive")
	}
	if w.DestroyEntity(e) {
		t.Fatalf("double destroy succeeded")
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.DestroyEntity(old)

	reused := w.CreateEntity()
	if reused == old {
		t.Fatalf("reused slot produced identical handle")
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle aliases reused slot")
	}
	if !w.IsAlive(reused) {
		t.Fatalf("reused handle not alive")
	}

	// The stale handle must not reach the new entity's components.
	if err := Add(w, reused, healthComponent, health{HP: 10}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := Get(w, old, healthComponent); ok {
		t.Fatalf("stale handle read a component")
	}
	if err := Add(w, old, healthComponent, health{HP: 99}); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("stale add: got %v, want ErrEntityNotAlive", err)
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	if Has(w, e, healthComponent) {
		t.Fatalf("has before add")
	}
	if err := Add(w, e, healthComponent, health{HP: 5}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, ok := Get(w, e, healthComponent)
	if !ok || got.HP != 5 {
		t.Fatalf("get: %+v, %v", got, ok)
	}

	// Get hands out a pointer for in-place writes.
	got.HP = 7
	again, _ := Get(w, e, healthComponent)
	if again.HP != 7 {
		t.Fatalf("in-place write lost: %+v", again)
	}

	if !Remove(w, e, healthComponent) {
		t.Fatalf("remove failed")
	}
	if Remove(w, e, healthComponent) {
		t.Fatalf("second remove succeeded")
	}
	if _, ok := Get(w, e, healthComponent); ok {
		t.Fatalf("get after remove")
	}
}

func TestAddComponentErrors(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	if err := w.AddComponent(e, 0, &health{}); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("zero id: got %v", err)
	}
	if err := w.AddComponent(e, healthComponent.ID(), nil); !errors.Is(err, ErrNilComponent) {
		t.Fatalf("nil value: got %v", err)
	}
}

func TestWatchSeesInsertModifyRemove(t *testing.T) {
	w := NewWorld()
	q := w.Watch(healthComponent.ID())
	e := w.CreateEntity()

	_ = Add(w, e, healthComponent, health{HP: 1})
	_ = Add(w, e, healthComponent, health{HP: 2}) // re-add reports Modified
	w.NotifyModified(e, healthComponent.ID())
	Remove(w, e, healthComponent)

	got := q.Drain()
	want := []ChangeKind{ChangeInserted, ChangeModified, ChangeModified, ChangeRemoved}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, c := range got {
		if c.Kind != want[i] || c.Entity != e {
			t.Fatalf("event %d: got %+v", i, c)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("queue not cleared by drain")
	}
	if q.Drain() != nil {
		t.Fatalf("second drain returned events")
	}
}

func TestWatchIgnoresOtherComponents(t *testing.T) {
	w := NewWorld()
	q := w.Watch(healthComponent.ID())
	e := w.CreateEntity()

	_ = Add(w, e, labelComponent, label{Name: "crate"})
	if q.Len() != 0 {
		t.Fatalf("watcher saw an unrelated component: %+v", q.Drain())
	}
}

func TestDestroyNotifiesWatchers(t *testing.T) {
	w := NewWorld()
	hq := w.Watch(healthComponent.ID())
	lq := w.Watch(labelComponent.ID())
	e := w.CreateEntity()
	_ = Add(w, e, healthComponent, health{HP: 3})
	_ = Add(w, e, labelComponent, label{Name: "crate"})
	hq.Drain()
	lq.Drain()

	w.DestroyEntity(e)
	for name, q := range map[string]*ChangeQueue{"health": hq, "label": lq} {
		got := q.Drain()
		if len(got) != 1 || got[0].Kind != ChangeRemoved {
			t.Fatalf("%s watcher: got %+v, want single ChangeRemoved", name, got)
		}
	}
}

func TestForEachVariants(t *testing.T) {
	w := NewWorld()

	both := w.CreateEntity()
	_ = Add(w, both, healthComponent, health{HP: 1})
	_ = Add(w, both, labelComponent, label{Name: "both"})

	healthOnly := w.CreateEntity()
	_ = Add(w, healthOnly, healthComponent, health{HP: 2})

	var visited int
	ForEach(w, healthComponent, func(_ Entity, h *health) {
		visited++
		h.HP *= 10
	})
	if visited != 2 {
		t.Fatalf("ForEach visited %d, want 2", visited)
	}
	if h, _ := Get(w, both, healthComponent); h.HP != 10 {
		t.Fatalf("ForEach mutation lost: %+v", h)
	}

	var pairs int
	ForEach2(w, healthComponent, labelComponent, func(e Entity, _ *health, l *label) {
		pairs++
		if e != both || l.Name != "both" {
			t.Fatalf("ForEach2 visited wrong entity: %v %+v", e, l)
		}
	})
	if pairs != 1 {
		t.Fatalf("ForEach2 visited %d, want 1", pairs)
	}
}

func TestCount(t *testing.T) {
	w := NewWorld()
	if w.Count(healthComponent.ID()) != 0 {
		t.Fatalf("empty count")
	}
	a := w.CreateEntity()
	b := w.CreateEntity()
	_ = Add(w, a, healthComponent, health{})
	_ = Add(w, b, healthComponent, health{})
	if got := w.Count(healthComponent.ID()); got != 2 {
		t.Fatalf("count: got %d, want 2", got)
	}
	w.DestroyEntity(a)
	if got := w.Count(healthComponent.ID()); got != 1 {
		t.Fatalf("count after destroy: got %d, want 1", got)
	}
}
