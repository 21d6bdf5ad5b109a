package geom

import "math"

// Vec2 is a 2D vector. It is a plain value type; all methods return new
// values and never mutate the receiver.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales both components by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulV scales component-wise.
func (v Vec2) MulV(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of the two vectors
// extended with z=0. Its sign tells which side of v the vector o lies on.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Normalized returns the unit vector pointing in v's direction. The zero
// vector normalizes to the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Sub(v).Len()
}

func (v Vec2) DistanceSqTo(o Vec2) float64 {
	return o.Sub(v).LenSq()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// segmentEpsilon bounds the cross product below which two segment directions
// are considered parallel.
const segmentEpsilon = 1e-9

// SegmentsIntersect solves p + t*r = q + u*s for the segments p->p+r and
// q->q+s. An intersection exists iff 0 <= t <= 1 and 0 <= u <= 1. Parallel
// segments never intersect, including the collinear overlapping case.
func SegmentsIntersect(p, r, q, s Vec2) (t, u float64, ok bool) {
	denom := r.Cross(s)
	if math.Abs(denom) < segmentEpsilon {
		return 0, 0, false
	}
	d := q.Sub(p)
	t = d.Cross(s) / denom
	u = d.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}
