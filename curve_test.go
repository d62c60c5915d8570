package sketch

import (
	"image/color"
	"math"
	"testing"
)

func TestSmoothEndpoints(t *testing.T) {
	points := []Pos{{0, 100}, {50, 20}, {100, 80}, {150, 40}}
	out := Smooth(points, 16)
	if want := (len(points)-1)*16 + 1; len(out) != want {
		t.Fatalf("got %d points, want %d", len(out), want)
	}
	if out[0] != points[0] {
		t.Errorf("first point moved: %v", out[0])
	}
	if out[len(out)-1] != points[len(points)-1] {
		t.Errorf("last point moved: %v", out[len(out)-1])
	}
}

func TestSmoothPassesThroughInput(t *testing.T) {
	points := []Pos{{0, 0}, {10, 40}, {20, 10}, {30, 30}, {40, 5}}
	const segments = 8
	out := Smooth(points, segments)
	for i, p := range points {
		got := out[i*segments]
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("input point %d: got %v want %v", i, got, p)
		}
	}
}

func TestSmoothShortInput(t *testing.T) {
	points := []Pos{{0, 0}, {10, 10}}
	out := Smooth(points, 16)
	if len(out) != 2 || out[0] != points[0] || out[1] != points[1] {
		t.Errorf("two points should pass through unchanged, got %v", out)
	}
}

func TestBezierEndpoints(t *testing.T) {
	var (
		p0 = Pos{0, 0}
		c0 = Pos{10, 50}
		c1 = Pos{20, -30}
		p1 = Pos{30, 10}
	)
	if got := Bezier(p0, c0, c1, p1, 0); got != p0 {
		t.Errorf("t=0: %v", got)
	}
	if got := Bezier(p0, c0, c1, p1, 1); got != p1 {
		t.Errorf("t=1: %v", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp midpoint %f", got)
	}
	if got := LerpPos(Pos{0, 0}, Pos{10, 20}, 0.25); got != (Pos{2.5, 5}) {
		t.Errorf("LerpPos %v", got)
	}
}

func TestLerpColor(t *testing.T) {
	var (
		from = color.NRGBA{R: 0, G: 100, B: 200, A: 255}
		to   = color.NRGBA{R: 100, G: 200, B: 0, A: 55}
	)
	got := LerpColor(from, to, 0.5)
	want := color.NRGBA{R: 50, G: 150, B: 100, A: 155}
	if got != want {
		t.Errorf("got %v want %v", got, want)
	}
	if LerpColor(from, to, 0) != from || LerpColor(from, to, 1) != to {
		t.Error("endpoint colors not preserved")
	}
}

func TestSegmentDistance(t *testing.T) {
	data := []struct {
		p, a, b Pos
		want    float64
	}{
		{Pos{5, 5}, Pos{0, 0}, Pos{10, 0}, 5},
		{Pos{-3, 4}, Pos{0, 0}, Pos{10, 0}, 5},
		{Pos{13, 4}, Pos{0, 0}, Pos{10, 0}, 5},
		{Pos{5, 0}, Pos{0, 0}, Pos{10, 0}, 0},
		{Pos{3, 4}, Pos{1, 1}, Pos{1, 1}, math.Hypot(2, 3)},
	}
	for _, d := range data {
		if got := SegmentDistance(d.p, d.a, d.b); math.Abs(got-d.want) > 1e-9 {
			t.Errorf("SegmentDistance(%v, %v, %v) = %f, want %f", d.p, d.a, d.b, got, d.want)
		}
	}
}

func TestNearSegment(t *testing.T) {
	var (
		a = Pos{0, 0}
		b = Pos{100, 0}
	)
	if !NearSegment(Pos{50, 9}, a, b, 10) {
		t.Error("9px off should be near at threshold 10")
	}
	if NearSegment(Pos{50, 11}, a, b, 10) {
		t.Error("11px off should miss at threshold 10")
	}
}

func TestInCircle(t *testing.T) {
	c := Pos{10, 10}
	if !InCircle(Pos{13, 14}, c, 5) {
		t.Error("point on radius should hit")
	}
	if InCircle(Pos{13, 14.01}, c, 5) {
		t.Error("point outside radius should miss")
	}
}

func TestDashSegments(t *testing.T) {
	segs := DashSegments(Pos{0, 0}, Pos{10, 0}, []float64{4, 3})
	if len(segs) != 2 {
		t.Fatalf("got %d pieces, want 2", len(segs))
	}
	if d := Distance(segs[0][0], segs[0][1]); math.Abs(d-4) > 1e-9 {
		t.Errorf("first piece length %f, want 4", d)
	}
	if d := Distance(segs[1][0], segs[1][1]); math.Abs(d-3) > 1e-9 {
		t.Errorf("second piece length %f, want 3", d)
	}
}

func TestDashSegmentsNoPattern(t *testing.T) {
	segs := DashSegments(Pos{0, 0}, Pos{10, 0}, nil)
	if len(segs) != 1 || segs[0][0] != (Pos{0, 0}) || segs[0][1] != (Pos{10, 0}) {
		t.Errorf("empty pattern should return the whole segment, got %v", segs)
	}
}

func TestArcPointsWedge(t *testing.T) {
	center := Pos{100, 100}
	pts := ArcPoints(center, 0, 50, 0, 90, 8)
	if pts[len(pts)-1] != center {
		t.Errorf("wedge should close at center, got %v", pts[len(pts)-1])
	}
	for _, p := range pts[:len(pts)-1] {
		if d := Distance(p, center); math.Abs(d-50) > 1e-9 {
			t.Errorf("outer point at distance %f, want 50", d)
		}
	}
}
