package geom

import "math"

// AABB is an axis-aligned bounding box described by its top-left corner and
// its extents (full width and height). Zero-extent boxes are valid and behave
// as points. Coordinates follow screen convention: y grows downward, so
// Bottom is numerically greater than Top.
type AABB struct {
	TopLeft Vec2
	Extents Vec2
}

// Box builds an AABB from a top-left corner and extents.
func Box(topLeft, extents Vec2) AABB {
	return AABB{TopLeft: topLeft, Extents: extents}
}

func (b AABB) Left() float64   { return b.TopLeft.X }
func (b AABB) Right() float64  { return b.TopLeft.X + b.Extents.X }
func (b AABB) Top() float64    { return b.TopLeft.Y }
func (b AABB) Bottom() float64 { return b.TopLeft.Y + b.Extents.Y }
func (b AABB) Width() float64  { return b.Extents.X }
func (b AABB) Height() float64 { return b.Extents.Y }

func (b AABB) Center() Vec2 {
	return Vec2{X: b.TopLeft.X + b.Extents.X/2, Y: b.TopLeft.Y + b.Extents.Y/2}
}

func (b AABB) Translate(v Vec2) AABB {
	return AABB{TopLeft: b.TopLeft.Add(v), Extents: b.Extents}
}

// ContainsPoint reports whether p lies inside the box. Edges count as inside.
func (b AABB) ContainsPoint(p Vec2) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects is the separate-axis rectangle test on x and y. Boxes that
// merely touch along an edge or corner count as intersecting, which keeps
// this test aligned with the broad-phase query semantics.
func (b AABB) Intersects(other AABB) bool {
	return b.Left() <= other.Right() && other.Left() <= b.Right() &&
		b.Top() <= other.Bottom() && other.Top() <= b.Bottom()
}

// MTVApart returns the single-axis translation that moves other out of
// overlap with b, choosing whichever axis has the smaller absolute overlap.
// The x axis is preferred only when |dx| < |dy| strictly; ties fall to y.
// ok is false iff the boxes do not intersect. Exactly touching boxes yield a
// zero vector.
func (b AABB) MTVApart(other AABB) (mtv Vec2, ok bool) {
	if !b.Intersects(other) {
		return Vec2{}, false
	}

	pushRight := b.Right() - other.Left()
	pushLeft := other.Right() - b.Left()
	dx := pushRight
	if pushLeft < pushRight {
		dx = -pushLeft
	}

	pushDown := b.Bottom() - other.Top()
	pushUp := other.Bottom() - b.Top()
	dy := pushDown
	if pushUp < pushDown {
		dy = -pushUp
	}

	if math.Abs(dx) < math.Abs(dy) {
		return Vec2{X: dx}, true
	}
	return Vec2{Y: dy}, true
}

// MTVContact returns the translation that moves other into contact with b
// along every axis on which the two boxes are currently separated. Axes whose
// projections already overlap (or touch) contribute zero.
func (b AABB) MTVContact(other AABB) Vec2 {
	var v Vec2
	if other.Left() >= b.Right() {
		v.X = b.Right() - other.Left()
	} else if other.Right() <= b.Left() {
		v.X = b.Left() - other.Right()
	}
	if other.Top() >= b.Bottom() {
		v.Y = b.Bottom() - other.Top()
	} else if other.Bottom() <= b.Top() {
		v.Y = b.Top() - other.Bottom()
	}
	return v
}

// Union returns the smallest AABB containing both boxes.
func (b AABB) Union(other AABB) AABB {
	left := math.Min(b.Left(), other.Left())
	top := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())
	return AABB{
		TopLeft: Vec2{X: left, Y: top},
		Extents: Vec2{X: right - left, Y: bottom - top},
	}
}

// FitInto scales b to the largest box that fits inside other while keeping
// b's aspect ratio, centered within other. A degenerate b is returned
// unchanged aside from being centered.
func (b AABB) FitInto(other AABB) AABB {
	if b.Extents.X <= 0 || b.Extents.Y <= 0 {
		return AABB{TopLeft: other.Center(), Extents: b.Extents}
	}
	scale := math.Min(other.Extents.X/b.Extents.X, other.Extents.Y/b.Extents.Y)
	extents := b.Extents.Mul(scale)
	return AABB{
		TopLeft: other.Center().Sub(extents.Mul(0.5)),
		Extents: extents,
	}
}

// DistSqToPoint returns the squared distance from the box's bounds to p,
// zero when the box contains p.
func (b AABB) DistSqToPoint(p Vec2) float64 {
	cx := math.Max(b.Left(), math.Min(p.X, b.Right()))
	cy := math.Max(b.Top(), math.Min(p.Y, b.Bottom()))
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx + dy*dy
}

// ToShape converts the box into a convex Shape in the same coordinate frame.
func (b AABB) ToShape() Shape {
	return NewBox(b.TopLeft, b.TopLeft.Add(b.Extents))
}
