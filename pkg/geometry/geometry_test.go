package geometry

import (
	"math"
	"testing"
)

func TestBoundsOf(t *testing.T) {
	b := BoundsOf(100, 75, 50, 50)
	want := Bounds{X: 100, Y: 75, Right: 150, Bottom: 125, Width: 50, Height: 50}
	if b != want {
		t.Errorf("BoundsOf(100, 75, 50, 50) = %+v, want %+v", b, want)
	}
}

func TestOverlapsExactTouch(t *testing.T) {
	// Node 1 spans [75, 125], node 2 spans [125, 175]: touching, zero gap.
	if Overlaps(100, 50, 150, 50, 0) {
		t.Error("exact touch with zero minGap should not overlap")
	}
	// Any positive gap requirement makes the touch a violation.
	if !Overlaps(100, 50, 150, 50, 1) {
		t.Error("exact touch with minGap=1 should overlap")
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	cases := []struct {
		c1, h1, c2, h2, gap float64
	}{
		{100, 50, 120, 50, 0},
		{100, 50, 300, 50, 10},
		{0, 10, 5, 10, 2},
	}
	for _, c := range cases {
		a := Overlaps(c.c1, c.h1, c.c2, c.h2, c.gap)
		b := Overlaps(c.c2, c.h2, c.c1, c.h1, c.gap)
		if a != b {
			t.Errorf("Overlaps not symmetric for %+v: %v vs %v", c, a, b)
		}
	}
}

func TestGapBetween(t *testing.T) {
	// Node 1 spans [-13, 163], node 2 spans [173, 213]: gap = 173 - 163 = 10.
	if got := GapBetween(75, 176, 193, 40); got != 10 {
		t.Errorf("GapBetween(75, 176, 193, 40) = %v, want 10", got)
	}
	// Overlapping nodes report negative depth.
	if got := GapBetween(100, 50, 140, 50); got != -10 {
		t.Errorf("GapBetween(100, 50, 140, 50) = %v, want -10", got)
	}
}

func TestTransformFixture(t *testing.T) {
	// layoutCenter=100, layoutEdge=200, w=100, h=50, offsets 0 → render (200, 75).
	x := ToRenderX(200, 0)
	y := ToRenderY(100, 50, 0)
	if x != 200 || y != 75 {
		t.Errorf("transform = (%v, %v), want (200, 75)", x, y)
	}
}

func TestRenderYRoundTrip(t *testing.T) {
	centers := []float64{0, -37.25, 100, 1e6, 0.1}
	heights := []float64{0, 12, 50, 176.5}
	offsets := []float64{0, -400, 20.75}
	for _, c := range centers {
		for _, h := range heights {
			for _, o := range offsets {
				got := FromRenderY(ToRenderY(c, h, o), h, o)
				if math.Abs(got-c) > 1e-9 {
					t.Errorf("round trip (c=%v h=%v o=%v) = %v", c, h, o, got)
				}
			}
		}
	}
}

func TestConnectorEdges(t *testing.T) {
	// Anchors sit inside the mathematical edge by padding, nudged out by lineGap.
	if got := RightEdge(100, 200, 10, 4, 0); got != 294 {
		t.Errorf("RightEdge = %v, want 294", got)
	}
	if got := LeftEdge(100, 10, 4, 0); got != 106 {
		t.Errorf("LeftEdge = %v, want 106", got)
	}
	// Offsets shift both anchors by the same amount.
	if RightEdge(100, 200, 10, 4, 50)-RightEdge(100, 200, 10, 4, 0) != 50 {
		t.Error("RightEdge offset not additive")
	}
}
