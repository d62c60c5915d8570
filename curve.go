package sketch

import (
	"image/color"
	"math"
)

func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func LerpPos(from, to Pos, t float64) Pos {
	return Pos{
		X: Lerp(from.X, to.X, t),
		Y: Lerp(from.Y, to.Y, t),
	}
}

func LerpColor(from, to color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerpChannel(from.R, to.R, t),
		G: lerpChannel(from.G, to.G, t),
		B: lerpChannel(from.B, to.B, t),
		A: lerpChannel(from.A, to.A, t),
	}
}

func lerpChannel(from, to uint8, t float64) uint8 {
	v := Lerp(float64(from), float64(to), t)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(math.Round(v))
}

// Bezier evaluates the cubic curve through the four control points at t.
func Bezier(p0, c0, c1, p1 Pos, t float64) Pos {
	var (
		u  = 1 - t
		b0 = u * u * u
		b1 = 3 * u * u * t
		b2 = 3 * u * t * t
		b3 = t * t * t
	)
	return Pos{
		X: b0*p0.X + b1*c0.X + b2*c1.X + b3*p1.X,
		Y: b0*p0.Y + b1*c0.Y + b2*c1.Y + b3*p1.Y,
	}
}

// Smooth interpolates a Catmull-Rom style curve through the given
// points, emitting segments interpolated positions per span. The first
// and last input points are preserved exactly; end control points are
// clamped to their adjacent real point.
func Smooth(points []Pos, segments int) []Pos {
	if len(points) < 3 || segments < 1 {
		out := make([]Pos, len(points))
		copy(out, points)
		return out
	}
	out := make([]Pos, 0, (len(points)-1)*segments+1)
	out = append(out, points[0])
	for i := 0; i < len(points)-1; i++ {
		var (
			p1 = points[i]
			p2 = points[i+1]
			p0 = p1
			p3 = p2
		)
		if i > 0 {
			p0 = points[i-1]
		}
		if i < len(points)-2 {
			p3 = points[i+2]
		}
		var (
			c0 = Pos{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
			c1 = Pos{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}
		)
		for s := 1; s <= segments; s++ {
			t := float64(s) / float64(segments)
			out = append(out, Bezier(p1, c0, c1, p2, t))
		}
	}
	out[len(out)-1] = points[len(points)-1]
	return out
}

func Distance(a, b Pos) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func InCircle(p, center Pos, radius float64) bool {
	return Distance(p, center) <= radius
}

// SegmentDistance returns the perpendicular distance from p to the
// segment ab, clamping the projection to the segment ends.
func SegmentDistance(p, a, b Pos) float64 {
	var (
		dx = b.X - a.X
		dy = b.Y - a.Y
	)
	if dx == 0 && dy == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	at := Pos{
		X: a.X + t*dx,
		Y: a.Y + t*dy,
	}
	return Distance(p, at)
}

func NearSegment(p, a, b Pos, threshold float64) bool {
	return SegmentDistance(p, a, b) <= threshold
}
