// Package win hosts charts in an ebiten window: it owns the 60 TPS
// tick, translates pointer and wheel input into chart events and
// implements the Canvas contract on the GPU surface.
package win

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/midbel/sketch"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

var faceCache = make(map[float64]font.Face)

func face(size float64) font.Face {
	if f, ok := faceCache[size]; ok {
		return f
	}
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	faceCache[size] = f
	return f
}

type Canvas struct {
	dst    *ebiten.Image
	target *ebiten.Image

	cur   sketch.Affine
	stack []sketch.Affine
}

func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{
		dst:    dst,
		target: dst,
		cur:    sketch.Identity(),
	}
}

func (c *Canvas) Size() (float64, float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) at(p sketch.Pos) sketch.Pos {
	return c.cur.Apply(p)
}

func (c *Canvas) buildPath(pts []sketch.Pos, closed bool) vector.Path {
	var path vector.Path
	for i, p := range pts {
		q := c.at(p)
		if i == 0 {
			path.MoveTo(float32(q.X), float32(q.Y))
		} else {
			path.LineTo(float32(q.X), float32(q.Y))
		}
	}
	if closed {
		path.Close()
	}
	return path
}

func colorize(vs []ebiten.Vertex, col color.NRGBA) {
	var (
		a = float32(col.A) / 255
		r = float32(col.R) / 255 * a
		g = float32(col.G) / 255 * a
		b = float32(col.B) / 255 * a
	)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}

func (c *Canvas) drawVerts(vs []ebiten.Vertex, is []uint16) {
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.NonZero,
	}
	c.target.DrawTriangles(vs, is, whiteSub, op)
}

func (c *Canvas) fill(pts []sketch.Pos, col color.NRGBA) {
	if len(pts) < 3 || col.A == 0 {
		return
	}
	path := c.buildPath(pts, true)
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	colorize(vs, col)
	c.drawVerts(vs, is)
}

func (c *Canvas) stroke(pts []sketch.Pos, width float64, col color.NRGBA, closed bool) {
	if len(pts) < 2 || col.A == 0 {
		return
	}
	if width <= 0 {
		width = 1
	}
	path := c.buildPath(pts, closed)
	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	colorize(vs, col)
	c.drawVerts(vs, is)
}

func (c *Canvas) FillRect(r sketch.Rect, col color.NRGBA) {
	c.fill(rectPoints(r), col)
}

func (c *Canvas) StrokeRect(r sketch.Rect, width float64, col color.NRGBA) {
	c.stroke(rectPoints(r), width, col, true)
}

func (c *Canvas) FillRoundRect(r sketch.Rect, radius float64, col color.NRGBA) {
	if radius <= 0 {
		c.FillRect(r, col)
		return
	}
	c.fill(roundRectPoints(r, radius), col)
}

// FillRectVGradient colors the two rect rows per vertex; the GPU
// interpolates in between.
func (c *Canvas) FillRectVGradient(r sketch.Rect, top, bottom color.NRGBA) {
	var (
		pts = rectPoints(r)
		vs  = make([]ebiten.Vertex, 4)
		is  = []uint16{0, 1, 2, 0, 2, 3}
	)
	for i, p := range pts {
		q := c.at(p)
		vs[i].DstX = float32(q.X)
		vs[i].DstY = float32(q.Y)
	}
	var (
		t [4]ebiten.Vertex
		b [4]ebiten.Vertex
	)
	colorize(t[:], top)
	colorize(b[:], bottom)
	for i := range vs {
		src := t[i]
		if i >= 2 {
			src = b[i]
		}
		vs[i].SrcX, vs[i].SrcY = src.SrcX, src.SrcY
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = src.ColorR, src.ColorG, src.ColorB, src.ColorA
	}
	c.drawVerts(vs, is)
}

func (c *Canvas) FillPathVGradient(pts []sketch.Pos, top, bottom color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	path := c.buildPath(pts, true)
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	var (
		lo = float32(math.Inf(1))
		hi = float32(math.Inf(-1))
	)
	for _, v := range vs {
		if v.DstY < lo {
			lo = v.DstY
		}
		if v.DstY > hi {
			hi = v.DstY
		}
	}
	colorize(vs, top)
	if hi > lo {
		for i := range vs {
			t := float64((vs[i].DstY - lo) / (hi - lo))
			col := sketch.LerpColor(top, bottom, t)
			var tmp [1]ebiten.Vertex
			colorize(tmp[:], col)
			vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = tmp[0].ColorR, tmp[0].ColorG, tmp[0].ColorB, tmp[0].ColorA
		}
	}
	c.drawVerts(vs, is)
}

func (c *Canvas) Line(a, b sketch.Pos, width float64, col color.NRGBA, dash []float64) {
	for _, seg := range sketch.DashSegments(a, b, dash) {
		c.stroke(seg[:], width, col, false)
	}
}

func (c *Canvas) FillCircle(center sketch.Pos, radius float64, col color.NRGBA) {
	c.fill(circlePoints(center, radius, radius), col)
}

func (c *Canvas) StrokeCircle(center sketch.Pos, radius, width float64, col color.NRGBA) {
	c.stroke(circlePoints(center, radius, radius), width, col, true)
}

func (c *Canvas) FillEllipse(center sketch.Pos, rx, ry float64, col color.NRGBA) {
	c.fill(circlePoints(center, rx, ry), col)
}

// FillCircleRGradient builds a triangle fan from an inner colored
// center vertex out to the ring.
func (c *Canvas) FillCircleRGradient(center sketch.Pos, radius float64, inner, outer color.NRGBA) {
	var (
		ring = circlePoints(center, radius, radius)
		vs   = make([]ebiten.Vertex, 0, len(ring)+1)
		is   []uint16
	)
	var tmp [1]ebiten.Vertex
	colorize(tmp[:], inner)
	ct := c.at(center)
	cv := tmp[0]
	cv.DstX, cv.DstY = float32(ct.X), float32(ct.Y)
	vs = append(vs, cv)
	colorize(tmp[:], outer)
	for _, p := range ring {
		q := c.at(p)
		v := tmp[0]
		v.DstX, v.DstY = float32(q.X), float32(q.Y)
		vs = append(vs, v)
	}
	for i := 1; i < len(vs); i++ {
		next := i + 1
		if next >= len(vs) {
			next = 1
		}
		is = append(is, 0, uint16(i), uint16(next))
	}
	c.drawVerts(vs, is)
}

func (c *Canvas) FillPath(pts []sketch.Pos, col color.NRGBA) {
	c.fill(pts, col)
}

func (c *Canvas) StrokePath(pts []sketch.Pos, width float64, col color.NRGBA, closed bool) {
	c.stroke(pts, width, col, closed)
}

func (c *Canvas) Text(str string, pos sketch.Pos, size float64, col color.NRGBA, align sketch.Align) {
	f := face(size)
	if f == nil || str == "" {
		return
	}
	var (
		q = c.at(pos)
		d = font.Drawer{Face: f}
		w = float64(d.MeasureString(str)) / 64
	)
	switch align {
	case sketch.AlignCenter:
		q.X -= w / 2
	case sketch.AlignRight:
		q.X -= w
	}
	text.Draw(c.target, str, f, int(q.X), int(q.Y), col)
}

func (c *Canvas) TextSize(str string, size float64) (float64, float64) {
	f := face(size)
	if f == nil {
		return 0, 0
	}
	var (
		d = font.Drawer{Face: f}
		m = f.Metrics()
	)
	return float64(d.MeasureString(str)) / 64, float64(m.Ascent+m.Descent) / 64
}

func (c *Canvas) Clip(r sketch.Rect) {
	var (
		tl = c.at(sketch.NewPos(r.X, r.Y))
		br = c.at(sketch.NewPos(r.X+r.W, r.Y+r.H))
	)
	rect := image.Rect(int(tl.X), int(tl.Y), int(math.Ceil(br.X)), int(math.Ceil(br.Y)))
	rect = rect.Intersect(c.dst.Bounds())
	if rect.Empty() {
		return
	}
	c.target = c.dst.SubImage(rect).(*ebiten.Image)
}

func (c *Canvas) ResetClip() {
	c.target = c.dst
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

func rectPoints(r sketch.Rect) []sketch.Pos {
	return []sketch.Pos{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func roundRectPoints(r sketch.Rect, radius float64) []sketch.Pos {
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
	const steps = 48
	pts := make([]sketch.Pos, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		pts = append(pts, sketch.Pos{
			X: center.X + rx*math.Cos(a),
			Y: center.Y + ry*math.Sin(a),
		})
	}
	return pts
}
