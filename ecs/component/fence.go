package component

import "github.com/kestrelgames/overworld/geom"

// Fence is a polyline, in fence-local space, that detects directional
// crossings: any watched entity whose frame-to-frame movement intersects one
// of the fence's segments is reported, with the crossing side.
//
// Watching and Crossed hold exactly one frame of memory. Both are rebuilt
// from scratch every tick from the previous tick's Watching snapshot; they
// are keyed by raw entity handles.
type Fence struct {
	Points []geom.Vec2

	// Watching maps entity -> last-seen world center.
	Watching map[uint64]geom.Vec2
	// Crossed maps entity -> crossing sign for this frame. True means the
	// cross product of fence segment and movement was negative.
	Crossed map[uint64]bool
}

// StepFence behaves exactly like Fence and additionally steps each crossing
// entity's z-level: +1 for a true sign, -1 for a false one.
type StepFence struct {
	Fence
}

var FenceComponent = NewComponent[Fence]()
var StepFenceComponent = NewComponent[StepFence]()
