package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b Vec2) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestVec2Algebra(t *testing.T) {
	cases := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"add", V(1, 2).Add(V(3, -4)), V(4, -2)},
		{"sub", V(1, 2).Sub(V(3, -4)), V(-2, 6)},
		{"mul", V(1.5, -2).Mul(2), V(3, -4)},
		{"mulv", V(2, 3).MulV(V(4, -1)), V(8, -3)},
		{"perp", V(1, 0).Perp(), V(0, 1)},
		{"normalized", V(3, 4).Normalized(), V(0.6, 0.8)},
		{"normalized_zero", V(0, 0).Normalized(), V(0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !vecAlmostEqual(c.got, c.want) {
				t.Fatalf("got %v, want %v", c.got, c.want)
			}
		})
	}
}

func TestVec2Scalars(t *testing.T) {
	if got := V(1, 2).Dot(V(3, 4)); !almostEqual(got, 11) {
		t.Fatalf("dot: got %v, want 11", got)
	}
	if got := V(1, 2).Cross(V(3, 4)); !almostEqual(got, -2) {
		t.Fatalf("cross: got %v, want -2", got)
	}
	if got := V(3, 4).Len(); !almostEqual(got, 5) {
		t.Fatalf("len: got %v, want 5", got)
	}
	if got := V(1, 1).DistanceSqTo(V(4, 5)); !almostEqual(got, 25) {
		t.Fatalf("distsq: got %v, want 25", got)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name       string
		p, r, q, s Vec2
		wantHit    bool
		wantT      float64
		wantU      float64
	}{
		{
			name: "perpendicular_cross",
			p:    V(0, 0), r: V(10, 0),
			q: V(5, -1), s: V(0, 2),
			wantHit: true, wantT: 0.5, wantU: 0.5,
		},
		{
			name: "miss_beyond_segment",
			p:    V(0, 0), r: V(10, 0),
			q: V(5, 1), s: V(0, 2),
			wantHit: false,
		},
		{
			name: "parallel_never_intersects",
			p:    V(0, 0), r: V(10, 0),
			q: V(0, 1), s: V(10, 0),
			wantHit: false,
		},
		{
			name: "collinear_overlap_counts_as_parallel",
			p:    V(0, 0), r: V(10, 0),
			q: V(5, 0), s: V(10, 0),
			wantHit: false,
		},
		{
			name: "touch_at_endpoint",
			p:    V(0, 0), r: V(10, 0),
			q: V(10, -5), s: V(0, 5),
			wantHit: true, wantT: 1, wantU: 1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotT, gotU, hit := SegmentsIntersect(c.p, c.r, c.q, c.s)
			if hit != c.wantHit {
				t.Fatalf("hit: got %v, want %v", hit, c.wantHit)
			}
			if !hit {
				return
			}
			if !almostEqual(gotT, c.wantT) || !almostEqual(gotU, c.wantU) {
				t.Fatalf("params: got t=%v u=%v, want t=%v u=%v", gotT, gotU, c.wantT, c.wantU)
			}
		})
	}
}
