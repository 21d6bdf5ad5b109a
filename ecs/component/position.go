package component

import "github.com/kestrelgames/overworld/geom"

// Position is an entity's world-space position.
type Position struct {
	Pos geom.Vec2
}

var PositionComponent = NewComponent[Position]()
