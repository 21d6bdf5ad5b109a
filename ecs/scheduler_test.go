package ecs

import "testing"

type recordingSystem struct {
	log   *[]string
	name  string
	gotDT float64
}

func (s *recordingSystem) Update(_ *World, dt float64) {
	*s.log = append(*s.log, s.name)
	s.gotDT = dt
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var log []string
	first := &recordingSystem{log: &log, name: "first"}
	second := &recordingSystem{log: &log, name: "second"}

	sched := NewScheduler(first, second)
	w := NewWorld()
	sched.Update(w, 0.25)
	sched.Update(w, 0.25)

	want := []string{"first", "second", "first", "second"}
	if len(log) != len(want) {
		t.Fatalf("got %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order: got %v, want %v", log, want)
		}
	}
	if first.gotDT != 0.25 {
		t.Fatalf("dt: got %v", first.gotDT)
	}
}
