package ecs

// System is a per-frame pass over the world. dt is the frame's delta time
// in seconds.
type System interface {
	Update(w *World, dt float64)
}

// Scheduler runs systems in a fixed order once per tick. Order matters:
// the collision pass must run before the fence pass so crossing decisions
// see post-collision positions.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once, in registration order.
func (s *Scheduler) Update(w *World, dt float64) {
	if s == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
