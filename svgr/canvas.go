package svgr

import (
	"fmt"
	"image/color"
	"math"

	"github.com/midbel/svg"

	"github.com/midbel/sketch"
)

const circleSteps = 48

// Canvas renders into an SVG document. Gradients are flattened to
// their midpoint color and text metrics are estimated from the font
// size, which is close enough for layout done at FontSize.
type Canvas struct {
	root  svg.SVG
	w, h  float64
	cur   sketch.Affine
	stack []sketch.Affine

	clip    sketch.Rect
	hasClip bool
}

func New(w, h float64) *Canvas {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(w, h)
	el.OmitProlog = true
	return &Canvas{
		root: el,
		w:    w,
		h:    h,
		cur:  sketch.Identity(),
	}
}

func (c *Canvas) Size() (float64, float64) {
	return c.w, c.h
}

func (c *Canvas) FillRect(r sketch.Rect, col color.NRGBA) {
	c.fillPoly(rectPoints(r), col)
}

func (c *Canvas) StrokeRect(r sketch.Rect, width float64, col color.NRGBA) {
	c.strokePoly(rectPoints(r), width, col, true)
}

func (c *Canvas) FillRoundRect(r sketch.Rect, radius float64, col color.NRGBA) {
	c.fillPoly(roundRectPoints(r, radius), col)
}

func (c *Canvas) FillRectVGradient(r sketch.Rect, top, bottom color.NRGBA) {
	c.FillRect(r, sketch.LerpColor(top, bottom, 0.5))
}

func (c *Canvas) Line(a, b sketch.Pos, width float64, col color.NRGBA, dash []float64) {
	for _, seg := range sketch.DashSegments(a, b, dash) {
		c.lineSeg(seg[0], seg[1], width, col)
	}
}

func (c *Canvas) lineSeg(a, b sketch.Pos, width float64, col color.NRGBA) {
	p, q := c.cur.Apply(a), c.cur.Apply(b)
	if c.hasClip {
		var ok bool
		p, q, ok = clipSegment(p, q, c.clip)
		if !ok {
			return
		}
	}
	li := svg.NewLine(svg.NewPos(p.X, p.Y), svg.NewPos(q.X, q.Y))
	li.Stroke = c.stroke(col, width)
	c.root.Append(li.AsElement())
}

func (c *Canvas) FillCircle(center sketch.Pos, radius float64, col color.NRGBA) {
	if !c.hasClip && c.plain() {
		var el svg.Circle
		el.Pos = c.pos(center)
		el.Radius = radius * c.scale()
		el.Fill = c.fill(col)
		c.root.Append(el.AsElement())
		return
	}
	c.fillPoly(circlePoints(center, radius, radius), col)
}

func (c *Canvas) StrokeCircle(center sketch.Pos, radius, width float64, col color.NRGBA) {
	c.strokePoly(circlePoints(center, radius, radius), width, col, true)
}

func (c *Canvas) FillCircleRGradient(center sketch.Pos, radius float64, inner, outer color.NRGBA) {
	c.FillCircle(center, radius, sketch.LerpColor(inner, outer, 0.5))
}

func (c *Canvas) FillEllipse(center sketch.Pos, rx, ry float64, col color.NRGBA) {
	c.fillPoly(circlePoints(center, rx, ry), col)
}

func (c *Canvas) FillPath(points []sketch.Pos, col color.NRGBA) {
	c.fillPoly(points, col)
}

func (c *Canvas) FillPathVGradient(points []sketch.Pos, top, bottom color.NRGBA) {
	c.fillPoly(points, sketch.LerpColor(top, bottom, 0.5))
}

func (c *Canvas) StrokePath(points []sketch.Pos, width float64, col color.NRGBA, closed bool) {
	c.strokePoly(points, width, col, closed)
}

func (c *Canvas) Text(str string, pos sketch.Pos, size float64, col color.NRGBA, align sketch.Align) {
	if str == "" {
		return
	}
	p := c.cur.Apply(pos)
	if c.hasClip && !c.clip.Contains(p) {
		return
	}
	tx := svg.NewText(str)
	tx.Fill = c.fill(col)
	tx.Pos = svg.NewPos(p.X, p.Y)
	tx.Font = svg.NewFont(size * c.scale())
	tx.Baseline = "alphabetic"
	switch align {
	case sketch.AlignCenter:
		tx.Anchor = "middle"
	case sketch.AlignRight:
		tx.Anchor = "end"
	default:
		tx.Anchor = "start"
	}
	c.root.Append(tx.AsElement())
}

// TextSize estimates from the font size. SVG text is laid out by the
// viewer so exact metrics are not available here.
func (c *Canvas) TextSize(str string, size float64) (float64, float64) {
	return float64(len(str)) * size * 0.6, size * 1.2
}

func (c *Canvas) Clip(r sketch.Rect) {
	var (
		tl = c.cur.Apply(sketch.NewPos(r.X, r.Y))
		br = c.cur.Apply(sketch.NewPos(r.X+r.W, r.Y+r.H))
	)
	c.clip = sketch.NewRect(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y).Normalize()
	c.hasClip = true
}

func (c *Canvas) ResetClip() {
	c.hasClip = false
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur = c.cur.Mul(sketch.TranslateBy(dx, dy))
}

func (c *Canvas) ScaleBy(sx, sy float64) {
	c.cur = c.cur.Mul(sketch.ScaleXY(sx, sy))
}

func (c *Canvas) Rotate(deg float64) {
	c.cur = c.cur.Mul(sketch.RotateBy(deg))
}

func (c *Canvas) Push() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Pop() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) fillPoly(points []sketch.Pos, col color.NRGBA) {
	if len(points) < 3 || col.A == 0 {
		return
	}
	device := make([]sketch.Pos, len(points))
	for i, p := range points {
		device[i] = c.cur.Apply(p)
	}
	if c.hasClip {
		device = clipPolygon(device, c.clip)
		if len(device) < 3 {
			return
		}
	}
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Fill = c.fill(col)
	pat.AbsMoveTo(svg.NewPos(device[0].X, device[0].Y))
	for _, p := range device[1:] {
		pat.AbsLineTo(svg.NewPos(p.X, p.Y))
	}
	pat.ClosePath()
	c.root.Append(pat.AsElement())
}

func (c *Canvas) strokePoly(points []sketch.Pos, width float64, col color.NRGBA, closed bool) {
	if len(points) < 2 || col.A == 0 {
		return
	}
	if c.hasClip {
		for i := 0; i < len(points)-1; i++ {
			c.lineSeg(points[i], points[i+1], width, col)
		}
		if closed {
			c.lineSeg(points[len(points)-1], points[0], width, col)
		}
		return
	}
	var pat svg.Path
	pat.Fill = svg.NewFill("none")
	pat.Stroke = c.stroke(col, width)
	first := c.cur.Apply(points[0])
	pat.AbsMoveTo(svg.NewPos(first.X, first.Y))
	for _, p := range points[1:] {
		q := c.cur.Apply(p)
		pat.AbsLineTo(svg.NewPos(q.X, q.Y))
	}
	if closed {
		pat.ClosePath()
	}
	c.root.Append(pat.AsElement())
}

func (c *Canvas) fill(col color.NRGBA) svg.Fill {
	f := svg.NewFill(hexColor(col))
	f.Opacity = float64(col.A) / 255
	return f
}

func (c *Canvas) stroke(col color.NRGBA, width float64) svg.Stroke {
	sk := svg.NewStroke(hexColor(col), width*c.scale())
	sk.Opacity = float64(col.A) / 255
	return sk
}

func (c *Canvas) pos(p sketch.Pos) svg.Pos {
	q := c.cur.Apply(p)
	return svg.NewPos(q.X, q.Y)
}

// plain reports whether the current transform keeps circles circular.
func (c *Canvas) plain() bool {
	return c.cur.B == 0 && c.cur.C == 0 && c.cur.A == c.cur.D
}

func (c *Canvas) scale() float64 {
	var (
		sx = math.Hypot(c.cur.A, c.cur.B)
		sy = math.Hypot(c.cur.C, c.cur.D)
	)
	return (sx + sy) / 2
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rectPoints(r sketch.Rect) []sketch.Pos {
	return []sketch.Pos{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func roundRectPoints(r sketch.Rect, radius float64) []sketch.Pos {
	if radius <= 0 {
		return rectPoints(r)
	}
	if m := math.Min(r.W, r.H) / 2; radius > m {
		radius = m
	}
	var (
		pts     []sketch.Pos
		corners = [4][3]float64{
			{r.X + r.W - radius, r.Y + radius, -90},
			{r.X + r.W - radius, r.Y + r.H - radius, 0},
			{r.X + radius, r.Y + r.H - radius, 90},
			{r.X + radius, r.Y + radius, 180},
		}
	)
	for _, cr := range corners {
		for i := 0; i <= 8; i++ {
			a := (cr[2] + 90*float64(i)/8) * math.Pi / 180
			pts = append(pts, sketch.Pos{
				X: cr[0] + radius*math.Cos(a),
				Y: cr[1] + radius*math.Sin(a),
			})
		}
	}
	return pts
}

func circlePoints(center sketch.Pos, rx, ry float64) []sketch.Pos {
	pts := make([]sketch.Pos, 0, circleSteps)
	for i := 0; i < circleSteps; i++ {
		a := 2 * math.Pi * float64(i) / circleSteps
		pts = append(pts, sketch.Pos{
			X: center.X + rx*math.Cos(a),
			Y: center.Y + ry*math.Sin(a),
		})
	}
	return pts
}

// clipSegment trims ab to the rect with the Liang-Barsky parametric
// test. The third result is false when nothing remains.
func clipSegment(a, b sketch.Pos, r sketch.Rect) (sketch.Pos, sketch.Pos, bool) {
	var (
		t0, t1 = 0.0, 1.0
		dx     = b.X - a.X
		dy     = b.Y - a.Y
		checks = [4][2]float64{
			{-dx, a.X - r.X},
			{dx, r.X + r.W - a.X},
			{-dy, a.Y - r.Y},
			{dy, r.Y + r.H - a.Y},
		}
	)
	for _, ck := range checks {
		p, q := ck[0], ck[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	var (
		p = sketch.Pos{X: a.X + t0*dx, Y: a.Y + t0*dy}
		q = sketch.Pos{X: a.X + t1*dx, Y: a.Y + t1*dy}
	)
	return p, q, true
}

// clipPolygon clips against each rect edge in turn, Sutherland-Hodgman.
func clipPolygon(pts []sketch.Pos, r sketch.Rect) []sketch.Pos {
	type edge struct {
		inside func(sketch.Pos) bool
		cross  func(a, b sketch.Pos) sketch.Pos
	}
	at := func(a, b sketch.Pos, t float64) sketch.Pos {
		return sketch.Pos{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
	}
	edges := []edge{
		{
			inside: func(p sketch.Pos) bool { return p.X >= r.X },
			cross:  func(a, b sketch.Pos) sketch.Pos { return at(a, b, (r.X-a.X)/(b.X-a.X)) },
		},
		{
			inside: func(p sketch.Pos) bool { return p.X <= r.X+r.W },
			cross:  func(a, b sketch.Pos) sketch.Pos { return at(a, b, (r.X+r.W-a.X)/(b.X-a.X)) },
		},
		{
			inside: func(p sketch.Pos) bool { return p.Y >= r.Y },
			cross:  func(a, b sketch.Pos) sketch.Pos { return at(a, b, (r.Y-a.Y)/(b.Y-a.Y)) },
		},
		{
			inside: func(p sketch.Pos) bool { return p.Y <= r.Y+r.H },
			cross:  func(a, b sketch.Pos) sketch.Pos { return at(a, b, (r.Y+r.H-a.Y)/(b.Y-a.Y)) },
		},
	}
	for _, e := range edges {
		if len(pts) == 0 {
			break
		}
		var out []sketch.Pos
		for i, cur := range pts {
			prev := pts[(i+len(pts)-1)%len(pts)]
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
		}
		pts = out
	}
	return pts
}
