package system

import (
	"github.com/kestrelgames/overworld/ecs"
	"github.com/kestrelgames/overworld/ecs/component"
	"github.com/kestrelgames/overworld/geom"
	"github.com/kestrelgames/overworld/spatial"
)

// FenceSystem detects directional crossings of fence polylines. Each tick
// it rebuilds every fence's watch set from the previous tick's snapshot and
// reports at most one crossing per entity per fence per frame. StepFences
// additionally step the crossing entity's z-level.
type FenceSystem struct {
	index *spatial.Index
}

func NewFenceSystem(index *spatial.Index) *FenceSystem {
	return &FenceSystem{index: index}
}

func (fs *FenceSystem) Update(w *ecs.World, _ float64) {
	if fs == nil || w == nil || fs.index == nil {
		return
	}

	ecs.ForEach2(w, component.FenceComponent, component.PositionComponent,
		func(e ecs.Entity, fence *component.Fence, pos *component.Position) {
			if ecs.Has(w, e, component.ExcludedComponent) {
				return
			}
			fs.processFence(w, e, pos.Pos, fence)
		})

	ecs.ForEach2(w, component.StepFenceComponent, component.PositionComponent,
		func(e ecs.Entity, fence *component.StepFence, pos *component.Position) {
			if ecs.Has(w, e, component.ExcludedComponent) {
				return
			}
			fs.processFence(w, e, pos.Pos, &fence.Fence)
			fs.applySteps(w, &fence.Fence)
		})
}

// processFence walks the fence's world-space segments. For each segment it
// runs a deliberately loose broad-phase (one circle per segment, radius
// equal to the segment's length, centered on the segment's first point),
// then tests each watched entity's frame-to-frame movement against the
// segment.
func (fs *FenceSystem) processFence(w *ecs.World, fenceEntity ecs.Entity, fencePos geom.Vec2, fence *component.Fence) {
	prev := fence.Watching
	fence.Watching = make(map[uint64]geom.Vec2)
	fence.Crossed = make(map[uint64]bool)

	for i := 0; i+1 < len(fence.Points); i++ {
		p1 := fence.Points[i].Add(fencePos)
		p2 := fence.Points[i+1].Add(fencePos)
		seg := p2.Sub(p1)
		radius := seg.Len()
		if radius == 0 {
			continue
		}

		area := geom.Box(p1.Sub(geom.V(radius, radius)), geom.V(2*radius, 2*radius))
		for _, entry := range fs.index.Query(area, uint64(fenceEntity)) {
			if entry.Box.DistSqToPoint(p1) > radius*radius {
				continue
			}
			e := ecs.Entity(entry.ID)
			if ecs.Has(w, e, component.ExcludedComponent) {
				continue
			}
			if !ecs.Has(w, e, component.VelocityComponent) {
				continue
			}

			center := entry.Box.Center()
			fence.Watching[entry.ID] = center

			// One crossing per entity per frame.
			if _, done := fence.Crossed[entry.ID]; done {
				continue
			}
			last, ok := prev[entry.ID]
			if !ok {
				continue
			}
			move := center.Sub(last)
			if _, _, hit := geom.SegmentsIntersect(p1, seg, last, move); !hit {
				continue
			}
			fence.Crossed[entry.ID] = seg.Cross(move) < 0
		}
	}
}

// applySteps adjusts the z-level of every entity the fence reported this
// frame: +1 when the crossing sign is true, -1 otherwise.
func (fs *FenceSystem) applySteps(w *ecs.World, fence *component.Fence) {
	for id, sign := range fence.Crossed {
		z, ok := ecs.Get(w, ecs.Entity(id), component.ZLevelComponent)
		if !ok {
			continue
		}
		if sign {
			z.Level++
		} else {
			z.Level--
		}
	}
}
