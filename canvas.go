package sketch

import (
	"image/color"
	"math"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is the immediate mode surface the engine draws on. Backends
// live in raster/ (CPU), win/ (ebiten) and svgr/ (SVG); the engine
// never sees anything more capable than this interface.
//
// Gradient methods may be approximated by a backend (svgr flattens
// them to the midpoint color). Rotate applies to geometry; text is
// positioned through the transform but rendered upright.
type Canvas interface {
	Size() (float64, float64)

	FillRect(r Rect, c color.NRGBA)
	StrokeRect(r Rect, width float64, c color.NRGBA)
	FillRoundRect(r Rect, radius float64, c color.NRGBA)
	FillRectVGradient(r Rect, top, bottom color.NRGBA)

	Line(a, b Pos, width float64, c color.NRGBA, dash []float64)
	FillCircle(center Pos, radius float64, c color.NRGBA)
	StrokeCircle(center Pos, radius, width float64, c color.NRGBA)
	FillCircleRGradient(center Pos, radius float64, inner, outer color.NRGBA)
	FillEllipse(center Pos, rx, ry float64, c color.NRGBA)

	FillPath(points []Pos, c color.NRGBA)
	FillPathVGradient(points []Pos, top, bottom color.NRGBA)
	StrokePath(points []Pos, width float64, c color.NRGBA, closed bool)

	Text(str string, pos Pos, size float64, c color.NRGBA, align Align)
	TextSize(str string, size float64) (float64, float64)

	Clip(r Rect)
	ResetClip()

	Translate(dx, dy float64)
	ScaleBy(sx, sy float64)
	Rotate(deg float64)
	Push()
	Pop()
}

// Affine is a 2D transform shared by the backends for their transform
// stacks. Identity is the zero value with A and D set to 1.
type Affine struct {
	A, B, C, D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, D: 1}
}

func TranslateBy(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, E: dx, F: dy}
}

func ScaleXY(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

func RotateBy(deg float64) Affine {
	var (
		rad = deg * math.Pi / 180
		sin = math.Sin(rad)
		cos = math.Cos(rad)
	)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

func (m Affine) Mul(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

func (m Affine) Apply(p Pos) Pos {
	return Pos{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// DashSegments chops the segment ab into on/off runs according to the
// dash pattern and returns the visible pieces. Backends without native
// dashing share this.
func DashSegments(a, b Pos, dash []float64) [][2]Pos {
	if len(dash) == 0 {
		return [][2]Pos{{a, b}}
	}
	var (
		total = Distance(a, b)
		out   [][2]Pos
		at    float64
		ix    int
		on    = true
	)
	if total == 0 {
		return nil
	}
	for at < total {
		run := dash[ix%len(dash)]
		if run <= 0 {
			run = 1
		}
		end := at + run
		if end > total {
			end = total
		}
		if on {
			out = append(out, [2]Pos{
				LerpPos(a, b, at/total),
				LerpPos(a, b, end/total),
			})
		}
		at = end
		ix++
		on = !on
	}
	return out
}

// ArcPoints samples an annular sector between two radii. With inner
// zero the result is a plain filled wedge through the center. Angles
// are degrees, clockwise, 0 at 3 o'clock.
func ArcPoints(center Pos, inner, outer, startDeg, sweepDeg float64, steps int) []Pos {
	if steps < 2 {
		steps = 2
	}
	var (
		pts   []Pos
		start = startDeg * math.Pi / 180
		sweep = sweepDeg * math.Pi / 180
	)
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		pts = append(pts, Pos{
			X: center.X + outer*math.Cos(a),
			Y: center.Y + outer*math.Sin(a),
		})
	}
	if inner > 0 {
		for i := steps; i >= 0; i-- {
			a := start + sweep*float64(i)/float64(steps)
			pts = append(pts, Pos{
				X: center.X + inner*math.Cos(a),
				Y: center.Y + inner*math.Sin(a),
			})
		}
	} else {
		pts = append(pts, center)
	}
	return pts
}
