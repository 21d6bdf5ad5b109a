package component

import "github.com/kestrelgames/overworld/geom"

// Velocity is an entity's velocity in world units per second. Entities
// without a Velocity are never displaced by the collision pass, so static
// scenery keeps its authored position exactly.
type Velocity struct {
	Vel geom.Vec2
}

var VelocityComponent = NewComponent[Velocity]()
