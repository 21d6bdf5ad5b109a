package component

// Barrier marks an entity as solid: the collision pass keeps barriers from
// overlapping other barriers on the same z-level.
type Barrier struct{}

// Excluded marks an entity as inactive. Excluded entities are skipped by
// both per-frame passes.
type Excluded struct{}

var BarrierComponent = NewComponent[Barrier]()
var ExcludedComponent = NewComponent[Excluded]()
