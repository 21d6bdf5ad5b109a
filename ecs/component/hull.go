package component

import "github.com/kestrelgames/overworld/geom"

// Hull is an entity's convex collision shape in shape-local space. The
// entity's Position places it in the world.
type Hull struct {
	Shape geom.Shape
}

var HullComponent = NewComponent[Hull]()
