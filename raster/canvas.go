// Package raster is the software Canvas backend: it rasterizes onto a
// plain image.RGBA with no window system involved, which makes it the
// backend of choice for exports and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/midbel/sketch"
)

const circleSteps = 48

type Canvas struct {
	dst  *image.RGBA
	clip image.Rectangle

	cur   sketch.Affine
	stack []sketch.Affine

	faces map[float64]font.Face
}

func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{
		dst:   img,
		clip:  img.Bounds(),
		cur:   sketch.Identity(),
		faces: make(map[float64]font.Face),
	}
}

func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

func (c *Canvas) Size() (float64, float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) at(p sketch.Pos) sketch.Pos {
	return c.cur.Apply(p)
}

func (c *Canvas) fillPoly(pts []sketch.Pos, col color.NRGBA) {
	if len(pts) < 3 || col.A == 0 || c.clip.Empty() {
		return
	}
	var (
		r = c.clip
		z = vector.NewRasterizer(r.Dx(), r.Dy())
	)
	z.DrawOp = draw.Over
	for i, p := range pts {
		q := c.at(p)
		var (
			x = float32(q.X - float64(r.Min.X))
			y = float32(q.Y - float64(r.Min.Y))
		)
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(c.dst, r, image.NewUniform(col), image.Point{})
}

// mask renders the polygon coverage alone, for gradient compositing.
func (c *Canvas) mask(pts []sketch.Pos) *image.Alpha {
	r := c.clip
	if len(pts) < 3 || r.Empty() {
		return nil
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	for i, p := range pts {
		q := c.at(p)
		var (
			x = float32(q.X - float64(r.Min.X))
			y = float32(q.Y - float64(r.Min.Y))
		)
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	out := image.NewAlpha(r)
	z.Draw(out, r, image.Opaque, image.Point{})
	return out
}

func (c *Canvas) FillRect(r sketch.Rect, col color.NRGBA) {
	c.fillPoly(rectPoints(r), col)
}

func (c *Canvas) StrokeRect(r sketch.Rect, width float64, col color.NRGBA) {
	c.StrokePath(rectPoints(r), width, col, true)
}

func (c *Canvas) FillRoundRect(r sketch.Rect, radius float64, col color.NRGBA) {
	c.fillPoly(roundRectPoints(r, radius), col)
}

func (c *Canvas) FillRectVGradient(r sketch.Rect, top, bottom color.NRGBA) {
	c.fillGradient(rectPoints(r), top, bottom)
}

func (c *Canvas) FillPathVGradient(pts []sketch.Pos, top, bottom color.NRGBA) {
	c.fillGradient(pts, top, bottom)
}

// fillGradient composites a vertical gradient through the polygon's
// coverage mask.
func (c *Canvas) fillGradient(pts []sketch.Pos, top, bottom color.NRGBA) {
	m := c.mask(pts)
	if m == nil {
		return
	}
	var (
		lo = math.Inf(1)
		hi = math.Inf(-1)
	)
	for _, p := range pts {
		q := c.at(p)
		lo = math.Min(lo, q.Y)
		hi = math.Max(hi, q.Y)
	}
	if hi <= lo {
		c.fillPoly(pts, top)
		return
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := (float64(y) - lo) / (hi - lo)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		row := sketch.LerpColor(top, bottom, t)
		for x := b.Min.X; x < b.Max.X; x++ {
			a := m.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			blend(c.dst, x, y, row, a)
		}
	}
}

func blend(dst *image.RGBA, x, y int, col color.NRGBA, cover uint8) {
	a := uint32(col.A) * uint32(cover) / 255
	if a == 0 {
		return
	}
	var (
		old      = dst.RGBAAt(x, y)
		sr       = uint32(col.R) * a / 255
		sg       = uint32(col.G) * a / 255
		sb       = uint32(col.B) * a / 255
		inv      = 255 - a
		blendone = func(s uint32, d uint8) uint8 {
			return uint8(s + uint32(d)*inv/255)
		}
	)
	dst.SetRGBA(x, y, color.RGBA{
		R: blendone(sr, old.R),
		G: blendone(sg, old.G),
		B: blendone(sb, old.B),
		A: blendone(a, old.A),
	})
}

func (c *Canvas) Line(a, b sketch.Pos, width float64, col color.NRGBA, dash []float64) {
	if width <= 0 {
		width = 1
	}
	for _, seg := range sketch.DashSegments(a, b, dash) {
		c.strokeSegment(seg[0], seg[1], width, col)
	}
}

func (c *Canvas) strokeSegment(a, b sketch.Pos, width float64, col color.NRGBA) {
	var (
		dx = b.X - a.X
		dy = b.Y - a.Y
		ln = math.Hypot(dx, dy)
	)
	if ln == 0 {
		c.FillCircle(a, width/2, col)
		return
	}
	var (
		nx = -dy / ln * width / 2
		ny = dx / ln * width / 2
	)
	c.fillPoly([]sketch.Pos{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}, col)
}

func (c *Canvas) FillCircle(center sketch.Pos, radius float64, col color.NRGBA) {
	c.fillPoly(circlePoints(center, radius, radius), col)
}

func (c *Canvas) StrokeCircle(center sketch.Pos, radius, width float64, col color.NRGBA) {
	c.StrokePath(circlePoints(center, radius, radius), width, col, true)
}

func (c *Canvas) FillEllipse(center sketch.Pos, rx, ry float64, col color.NRGBA) {
	c.fillPoly(circlePoints(center, rx, ry), col)
}

func (c *Canvas) FillCircleRGradient(center sketch.Pos, radius float64, inner, outer color.NRGBA) {
	m := c.mask(circlePoints(center, radius, radius))
	if m == nil {
		return
	}
	var (
		b  = m.Bounds()
		ct = c.at(center)
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := m.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			t := math.Hypot(float64(x)-ct.X, float64(y)-ct.Y) / radius
			if t > 1 {
				t = 1
			}
			blend(c.dst, x, y, sketch.LerpColor(inner, outer, t), a)
		}
	}
}

func (c *Canvas) FillPath(pts []sketch.Pos, col color.NRGBA) {
	c.fillPoly(pts, col)
}

func (c *Canvas) StrokePath(pts []sketch.Pos, width float64, col color.NRGBA, closed bool) {
	if len(pts) < 2 {
		return
	}
	if width <= 0 {
		width = 1
	}
	for i := 0; i < len(pts)-1; i++ {
		c.strokeSegment(pts[i], pts[i+1], width, col)
	}
	if closed {
		c.strokeSegment(pts[len(pts)-1], pts[0], width, col)
	}
	if width > 2 {
		for _, p := range pts {
			c.FillCircle(p, width/2, col)
		}
	}
}

func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	c.faces[size] = face
	return face
}

func (c *Canvas) Text(str string, pos sketch.Pos, size float64, col color.NRGBA, align sketch.Align) {
	face := c.face(size)
	if face == nil || str == "" {
		return
	}
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	var (
		q = c.at(pos)
		w = float64(d.MeasureString(str)) / 64
	)
	switch align {
	case sketch.AlignCenter:
		q.X -= w / 2
	case sketch.AlignRight:
		q.X -= w
	}
	d.Dot = fixed.P(int(q.X), int(q.Y))
	d.DrawString(str)
}

func (c *Canvas) TextSize(str string, size float64) (float64, float64) {
	face := c.face(size)
	if face == nil {
		return 0, 0
	}
	var (
		d = font.Drawer{Face: face}
		m = face.Metrics()
	)
	return float64(d.MeasureString(str)) / 64, float64(m.Ascent+m.Descent) / 64
}

func (c *Canvas) Clip(r sketch.Rect) {
	var (
		tl = c.at(sketch.NewPos(r.X, r.Y))
		br = c.at(sketch.NewPos(r.X+r.W, r.Y+r.H))
	)
	rect := image.Rect(int(tl.X), int(tl.Y), int(math.Ceil(br.X)), int(math.Ceil(br.Y)))
	c.clip = rect.Intersect(c.dst.Bounds())
}

func (c *Canvas) ResetClip() {
	c.clip = c.dst.Bounds()
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
