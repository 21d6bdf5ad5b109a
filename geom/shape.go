package geom

import "math"

// ShapeKind discriminates the Shape tagged union.
type ShapeKind int

const (
	// ShapeBox is a rectangle described by two corner points.
	ShapeBox ShapeKind = iota
	// ShapePolygon is an ordered list of vertices assumed to be convex.
	// Convexity is not validated; separation results for concave input are
	// undefined. Callers are responsible for decomposing concave geometry.
	ShapePolygon
)

// Shape is a convex shape in a shape-local coordinate frame: it carries no
// world position of its own. World-space queries take the position
// explicitly.
type Shape struct {
	Kind ShapeKind

	// Lower and Upper are the box corners. They are not required to be
	// ordered; accessors normalize as needed. Only meaningful for ShapeBox.
	Lower Vec2
	Upper Vec2

	// Vertices is the polygon's vertex loop. Only meaningful for
	// ShapePolygon.
	Vertices []Vec2
}

// NewBox builds a box shape from two opposite corners.
func NewBox(lower, upper Vec2) Shape {
	return Shape{Kind: ShapeBox, Lower: lower, Upper: upper}
}

// NewPolygon builds a polygon shape from an ordered convex vertex loop. The
// slice is used as-is, not copied.
func NewPolygon(vertices []Vec2) Shape {
	return Shape{Kind: ShapePolygon, Vertices: vertices}
}

// vertexLoop returns the closed vertex loop in shape-local space. Boxes
// enumerate their four corners counter-clockwise in screen coordinates
// starting at the top-left, so axis iteration order is fixed regardless of
// how the corners were authored.
func (s Shape) vertexLoop() []Vec2 {
	switch s.Kind {
	case ShapeBox:
		minX := math.Min(s.Lower.X, s.Upper.X)
		minY := math.Min(s.Lower.Y, s.Upper.Y)
		maxX := math.Max(s.Lower.X, s.Upper.X)
		maxY := math.Max(s.Lower.Y, s.Upper.Y)
		return []Vec2{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		}
	case ShapePolygon:
		return s.Vertices
	default:
		return nil
	}
}

// AABB returns the tightest axis-aligned box around the shape in its local
// frame.
func (s Shape) AABB() AABB {
	loop := s.vertexLoop()
	if len(loop) == 0 {
		return AABB{}
	}
	minX, minY := loop[0].X, loop[0].Y
	maxX, maxY := minX, minY
	for _, v := range loop[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return AABB{
		TopLeft: Vec2{X: minX, Y: minY},
		Extents: Vec2{X: maxX - minX, Y: maxY - minY},
	}
}

// Translated returns the shape shifted by v in its local frame.
func (s Shape) Translated(v Vec2) Shape {
	switch s.Kind {
	case ShapeBox:
		return NewBox(s.Lower.Add(v), s.Upper.Add(v))
	case ShapePolygon:
		out := make([]Vec2, len(s.Vertices))
		for i, p := range s.Vertices {
			out[i] = p.Add(v)
		}
		return NewPolygon(out)
	default:
		return s
	}
}

// Scaled returns the shape scaled component-wise by v about the local
// origin.
func (s Shape) Scaled(v Vec2) Shape {
	switch s.Kind {
	case ShapeBox:
		return NewBox(s.Lower.MulV(v), s.Upper.MulV(v))
	case ShapePolygon:
		out := make([]Vec2, len(s.Vertices))
		for i, p := range s.Vertices {
			out[i] = p.MulV(v)
		}
		return NewPolygon(out)
	default:
		return s
	}
}

// SeparatingAxes returns the candidate separating axes: the normalized
// perpendicular of each edge of the closed vertex loop, in vertex order.
// Zero-length edges contribute no axis.
func (s Shape) SeparatingAxes() []Vec2 {
	loop := s.vertexLoop()
	if len(loop) < 2 {
		return nil
	}
	axes := make([]Vec2, 0, len(loop))
	for i := range loop {
		edge := loop[(i+1)%len(loop)].Sub(loop[i])
		if edge.IsZero() {
			continue
		}
		axes = append(axes, edge.Perp().Normalized())
	}
	return axes
}

// RangedProjection projects every world-space vertex of the shape onto axis
// and returns the (min, max) of the projections.
func (s Shape) RangedProjection(worldPos Vec2, axis Vec2) (min, max float64) {
	loop := s.vertexLoop()
	if len(loop) == 0 {
		return 0, 0
	}
	min = loop[0].Add(worldPos).Dot(axis)
	max = min
	for _, v := range loop[1:] {
		p := v.Add(worldPos).Dot(axis)
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return min, max
}

// MTVApart runs the separating axis test between s at pos and other at
// otherPos. It returns false as soon as a separating axis is found. When the
// shapes overlap it returns the minimum translation vector: the candidate
// axis with the smallest absolute overlap depth, scaled by that signed
// depth. Translating other's position by the returned vector resolves the
// overlap.
//
// Axis iteration order is fixed: this shape's axes in vertex order, then
// other's, so equal-depth ties resolve deterministically to the first axis
// encountered.
func (s Shape) MTVApart(pos Vec2, other Shape, otherPos Vec2) (Vec2, bool) {
	var (
		best      Vec2
		bestDepth = math.Inf(1)
		found     bool
	)
	for _, axes := range [2][]Vec2{s.SeparatingAxes(), other.SeparatingAxes()} {
		for _, axis := range axes {
			myStart, myEnd := s.RangedProjection(pos, axis)
			theirStart, theirEnd := other.RangedProjection(otherPos, axis)
			if myEnd < theirStart || theirEnd < myStart {
				return Vec2{}, false
			}
			overlap := myEnd - theirStart
			if math.Abs(overlap) < bestDepth {
				bestDepth = math.Abs(overlap)
				best = axis.Mul(overlap)
				found = true
			}
		}
	}
	if !found {
		return Vec2{}, false
	}
	return best, true
}
