package sketch

import (
	"fmt"
	"math"
	"time"

	"github.com/midbel/slices"
)

type SparkKind int

const (
	SparkLine SparkKind = iota
	SparkArea
	SparkBar
	SparkWinLoss
	SparkDiscrete
	SparkBullet
)

const DefaultSparkWindow = 120

// SparklineWidget is a minimal, axis free renderer over a rolling
// window of values: appending past the window evicts the oldest one.
type SparklineWidget struct {
	Chart

	Style SparkStyle
	Kind  SparkKind
	Max   int

	values []float64

	BulletTarget float64
	BulletRanges []float64

	screen []Pos
}

func NewSparklineWidget(theme Theme) *SparklineWidget {
	c := SparklineWidget{
		Chart: newChart(theme),
		Style: DefaultSparkStyle(),
		Max:   DefaultSparkWindow,
	}
	c.Width = 180
	c.Height = 48
	c.Padding = Padding{Top: 4, Right: 4, Bottom: 4, Left: 4}
	c.X.Visible = false
	c.Y.Visible = false
	c.Legend.Show = false
	c.Effects.Gradient = false
	c.plot = &c
	return &c
}

// Append pushes one value, evicting the oldest once the window is
// full.
func (c *SparklineWidget) Append(v float64) {
	c.values = append(c.values, v)
	if c.Max > 0 && len(c.values) > c.Max {
		c.values = c.values[len(c.values)-c.Max:]
	}
	if c.state == Empty {
		c.dataChanged()
	} else {
		c.state = HasData
	}
}

func (c *SparklineWidget) SetValues(values []float64) {
	c.values = append(c.values[:0], values...)
	if c.Max > 0 && len(c.values) > c.Max {
		c.values = c.values[len(c.values)-c.Max:]
	}
	c.dataChanged()
}

func (c *SparklineWidget) Values() []float64 {
	return append([]float64(nil), c.values...)
}

func (c *SparklineWidget) Len() int {
	return len(c.values)
}

func (c *SparklineWidget) bounds() (float64, float64) {
	if len(c.values) == 0 {
		return 0, 1
	}
	var (
		lo = slices.Fst(c.values)
		hi = lo
	)
	for _, v := range c.values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}

func (c *SparklineWidget) tick(dt time.Duration) bool {
	return false
}

func (c *SparklineWidget) drawData(cv Canvas, area Rect) {
	if len(c.values) == 0 {
		return
	}
	switch c.Kind {
	case SparkBar:
		c.drawBars(cv, area)
	case SparkWinLoss:
		c.drawWinLoss(cv, area)
	case SparkDiscrete:
		c.drawDiscrete(cv, area)
	case SparkBullet:
		c.drawBullet(cv, area)
	default:
		c.drawLine(cv, area)
	}
}

func (c *SparklineWidget) project(area Rect) []Pos {
	var (
		lo, hi = c.bounds()
		n      = len(c.values)
		pts    = make([]Pos, n)
	)
	for i, v := range c.values {
		var x float64
		if n > 1 {
			x = area.X + float64(i)/float64(n-1)*area.W
		} else {
			x = area.X + area.W/2
		}
		pts[i] = Pos{
			X: x,
			Y: area.Y + ValueToPixel(v, lo, hi, area.H, true),
		}
	}
	return pts
}

func (c *SparklineWidget) drawLine(cv Canvas, area Rect) {
	var (
		pts     = c.project(area)
		primary = c.theme.Color("primary")
		shown   = revealPoints(pts, c.anim.Eased())
	)
	c.screen = pts
	if len(shown) == 0 {
		return
	}
	if c.Kind == SparkArea && len(shown) > 1 {
		var (
			fst  = slices.Fst(shown)
			lst  = slices.Lst(shown)
			path = make([]Pos, 0, len(shown)+2)
		)
		path = append(path, Pos{X: fst.X, Y: area.Y + area.H})
		path = append(path, shown...)
		path = append(path, Pos{X: lst.X, Y: area.Y + area.H})
		top := withAlpha(primary, c.Style.FillAlpha)
		cv.FillPathVGradient(path, top, withAlpha(top, 0))
	}
	if len(shown) > 1 {
		cv.StrokePath(shown, c.Style.Width, primary, false)
	}
	c.drawOverlays(cv, pts)
}

func (c *SparklineWidget) drawBars(cv Canvas, area Rect) {
	var (
		lo, hi = c.bounds()
		n      = len(c.values)
		w      = area.W / float64(n)
		base   = math.Max(lo, math.Min(0, hi))
		zero   = area.Y + ValueToPixel(base, lo, hi, area.H, true)
		eased  = c.anim.Eased()
	)
	c.screen = c.project(area)
	for i, v := range c.values {
		var (
			y   = area.Y + ValueToPixel(v, lo, hi, area.H, true)
			top = Lerp(zero, y, eased)
			col = c.theme.Color("primary")
		)
		if v < base {
			col = c.theme.Color("negative")
		}
		r := NewRect(area.X+float64(i)*w, math.Min(top, zero), w*0.8, math.Abs(zero-top))
		cv.FillRect(r, col)
	}
	c.drawOverlays(cv, c.screen)
}

// drawWinLoss collapses every value to a fixed height block above or
// below the midline by sign; zero values draw a thin notch.
func (c *SparklineWidget) drawWinLoss(cv Canvas, area Rect) {
	var (
		n   = len(c.values)
		w   = area.W / float64(n)
		mid = area.Y + area.H/2
		h   = area.H / 2 * c.anim.Eased()
	)
	c.screen = c.project(area)
	for i, v := range c.values {
		var (
			x = area.X + float64(i)*w
			r Rect
			g = c.theme.Color("positive")
		)
		switch {
		case v > 0:
			r = NewRect(x, mid-h, w*0.8, h)
		case v < 0:
			r = NewRect(x, mid, w*0.8, h)
			g = c.theme.Color("negative")
		default:
			r = NewRect(x, mid-1, w*0.8, 2)
			g = c.theme.Color("textSecondary")
		}
		cv.FillRect(r, g)
	}
}

func (c *SparklineWidget) drawDiscrete(cv Canvas, area Rect) {
	var (
		pts = c.project(area)
		col = c.theme.Color("primary")
	)
	c.screen = pts
	for _, p := range pts {
		cv.Line(NewPos(p.X, p.Y-3), NewPos(p.X, p.Y+3), c.Style.Width, col, nil)
	}
	c.drawOverlays(cv, pts)
}

// drawBullet renders the last value as a horizontal measure bar over
// shaded qualitative ranges, with a tick at the target.
func (c *SparklineWidget) drawBullet(cv Canvas, area Rect) {
	if len(c.values) == 0 {
		return
	}
	var (
		value  = slices.Lst(c.values)
		hi     = c.BulletTarget
		ranges = c.BulletRanges
	)
	for _, r := range ranges {
		hi = math.Max(hi, r)
	}
	hi = math.Max(hi, value)
	if hi <= 0 {
		return
	}
	shade := c.theme.Color("surface")
	for i := len(ranges) - 1; i >= 0; i-- {
		w := ranges[i] / hi * area.W
		cv.FillRect(NewRect(area.X, area.Y, w, area.H), withAlpha(shade, uint8(90+40*i)))
	}
	var (
		vw = c.animValue(0, value/hi*area.W)
		bh = area.H * 0.4
	)
	cv.FillRect(NewRect(area.X, area.Y+(area.H-bh)/2, vw, bh), c.theme.Color("primary"))
	if c.BulletTarget > 0 {
		tx := area.X + c.BulletTarget/hi*area.W
		cv.Line(NewPos(tx, area.Y+2), NewPos(tx, area.Y+area.H-2), 2, c.theme.Color("negative"), nil)
	}
	c.screen = nil
}

func (c *SparklineWidget) drawOverlays(cv Canvas, pts []Pos) {
	if len(pts) == 0 {
		return
	}
	if c.Style.ShowMinMax && len(pts) > 1 {
		var (
			minIx, maxIx = 0, 0
		)
		for i, v := range c.values {
			if v < c.values[minIx] {
				minIx = i
			}
			if v > c.values[maxIx] {
				maxIx = i
			}
		}
		cv.FillCircle(pts[minIx], 2.5, c.theme.Color("negative"))
		cv.FillCircle(pts[maxIx], 2.5, c.theme.Color("positive"))
	}
	if c.Style.ShowLast {
		var (
			last = slices.Lst(c.values)
			at   = slices.Lst(pts)
		)
		cv.Text(formatValue(last), NewPos(at.X-4, at.Y-6), FontSize*0.7, c.theme.Color("text"), AlignRight)
	}
}

func (c *SparklineWidget) nearest(p Pos) Hit {
	var (
		best = NoHit
		min  = c.Threshold
	)
	for i, sp := range c.screen {
		if d := Distance(p, sp); d <= min {
			min = d
			best = Hit{Serie: 0, Point: i}
		}
	}
	return best
}

func (c *SparklineWidget) tooltipText(h Hit) string {
	if h.Point < 0 || h.Point >= len(c.values) {
		return ""
	}
	return fmt.Sprintf("%d: %s", h.Point, formatValue(c.values[h.Point]))
}

func (c *SparklineWidget) legendItems() []legendItem {
	return nil
}
