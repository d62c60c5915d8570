package sketch

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/midbel/slices"
)

type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerDiamond
)

func drawMarker(cv Canvas, m Marker, p Pos, radius float64, c color.NRGBA) {
	switch m {
	case MarkerSquare:
		cv.FillRect(NewRect(p.X-radius, p.Y-radius, 2*radius, 2*radius), c)
	case MarkerDiamond:
		pts := []Pos{
			{X: p.X, Y: p.Y - radius},
			{X: p.X + radius, Y: p.Y},
			{X: p.X, Y: p.Y + radius},
			{X: p.X - radius, Y: p.Y},
		}
		cv.FillPath(pts, c)
	default:
		cv.FillCircle(p, radius, c)
	}
}

const (
	smoothSegments = 16
	serieStagger   = 80 * time.Millisecond
	yPadRatio      = 0.05
)

type lineMode int

const (
	lineGrow lineMode = iota
	lineReveal
	lineMorph
)

// LineChart renders one or more ordered series as straight or smooth
// lines with optional markers and area fills. Each serie keeps its own
// animation progress so freshly added series can stagger in.
type LineChart struct {
	Chart

	Style  LineStyle
	Marker Marker

	series []Serie
	modes  []lineMode
	anims  []Animation
	delays []time.Duration
	prev   [][]Pos
	screen [][]Pos
}

func NewLineChart(theme Theme) *LineChart {
	c := LineChart{
		Chart: newChart(theme),
		Style: DefaultLineStyle(),
	}
	c.plot = &c
	return &c
}

func (c *LineChart) Len() int {
	return len(c.series)
}

func (c *LineChart) Serie(i int) (Serie, bool) {
	if i < 0 || i >= len(c.series) {
		return Serie{}, false
	}
	return c.series[i], true
}

// SetData replaces every serie. Series whose title survives the update
// morph from their previous screen position; everything else reveals
// left to right with draw-on enabled, or grows in from the baseline.
func (c *LineChart) SetData(series []Serie) {
	old := make(map[string][]Pos)
	for i, s := range c.series {
		if i < len(c.screen) {
			old[s.Title] = c.screen[i]
		}
	}
	c.series = series
	c.modes = make([]lineMode, len(series))
	c.prev = make([][]Pos, len(series))
	for i, s := range series {
		if pts, ok := old[s.Title]; ok {
			c.modes[i] = lineMorph
			c.prev[i] = pts
		} else if c.Style.DrawOn {
			c.modes[i] = lineReveal
		}
	}
	c.restart()
}

// AddSerie appends one serie; with draw-on enabled it reveals from
// left to right instead of growing up from the baseline.
func (c *LineChart) AddSerie(s Serie) {
	c.series = append(c.series, s)
	mode := lineGrow
	if c.Style.DrawOn {
		mode = lineReveal
	}
	c.modes = append(c.modes, mode)
	c.prev = append(c.prev, nil)
	c.restart()
}

func (c *LineChart) RemoveSerie(title string) bool {
	for i, s := range c.series {
		if s.Title != title {
			continue
		}
		c.series = append(c.series[:i], c.series[i+1:]...)
		c.modes = append(c.modes[:i], c.modes[i+1:]...)
		c.prev = append(c.prev[:i], c.prev[i+1:]...)
		c.restart()
		return true
	}
	return false
}

// AppendPoint pushes one point onto the named serie, for streaming
// updates.
func (c *LineChart) AppendPoint(title string, pt DataPoint) bool {
	for i := range c.series {
		if c.series[i].Title != title {
			continue
		}
		c.series[i].Append(pt)
		c.updateRanges()
		return true
	}
	return false
}

func (c *LineChart) restart() {
	c.updateRanges()
	c.screen = nil
	c.dataChanged()
	c.anims = make([]Animation, len(c.series))
	c.delays = make([]time.Duration, len(c.series))
	for i := range c.anims {
		c.anims[i].Easing = c.Effects.Easing
		if c.Effects.Animate {
			c.anims[i].Start(c.Effects.Duration)
			c.delays[i] = time.Duration(i) * serieStagger
		} else {
			c.anims[i].Finish()
		}
	}
}

func (c *LineChart) updateRanges() {
	var (
		first    = true
		xlo, xhi float64
		ylo, yhi float64
	)
	for _, s := range c.series {
		if !s.Visible {
			continue
		}
		for _, pt := range s.Points {
			if first {
				xlo, xhi = pt.X, pt.X
				ylo, yhi = pt.Y, pt.Y
				first = false
				continue
			}
			xlo = math.Min(xlo, pt.X)
			xhi = math.Max(xhi, pt.X)
			ylo = math.Min(ylo, pt.Y)
			yhi = math.Max(yhi, pt.Y)
		}
	}
	if first {
		return
	}
	pad := (yhi - ylo) * yPadRatio
	if pad == 0 {
		pad = 1
	}
	c.X.fit(xlo, xhi)
	c.Y.fit(ylo-pad, yhi+pad)
}

func (c *LineChart) tick(dt time.Duration) bool {
	var busy bool
	for i := range c.anims {
		if c.delays[i] > 0 {
			c.delays[i] -= dt
			busy = true
			continue
		}
		if c.anims[i].Running {
			c.anims[i].Step(dt)
			busy = true
		}
	}
	return busy
}

func (c *LineChart) project(area Rect, s Serie) []Pos {
	pts := make([]Pos, len(s.Points))
	for i, pt := range s.Points {
		pts[i] = Pos{
			X: area.X + ValueToPixel(pt.X, c.X.Min, c.X.Max, area.W, false),
			Y: area.Y + ValueToPixel(pt.Y, c.Y.Min, c.Y.Max, area.H, true),
		}
	}
	return pts
}

func (c *LineChart) drawData(cv Canvas, area Rect) {
	if len(c.series) == 0 {
		return
	}
	c.screen = make([][]Pos, len(c.series))
	baseline := area.Y + ValueToPixel(0, c.Y.Min, c.Y.Max, area.H, true)
	if c.Y.Min > 0 || c.Y.Max < 0 {
		baseline = area.Y + area.H
	}
	for i, s := range c.series {
		target := c.project(area, s)
		c.screen[i] = target
		if !s.Visible || len(target) == 0 {
			continue
		}
		var (
			eased = c.anims[i].Eased()
			pts   []Pos
		)
		switch c.modes[i] {
		case lineReveal:
			pts = revealPoints(target, eased)
		case lineMorph:
			pts = morphPoints(c.prev[i], target, eased)
		default:
			pts = growPoints(target, baseline, eased)
		}
		if len(pts) == 0 {
			continue
		}
		if s.FillArea {
			c.drawArea(cv, pts, s, baseline)
		}
		if s.ShowLine && len(pts) > 1 {
			line := pts
			if c.Style.Smooth {
				line = Smooth(pts, smoothSegments)
			}
			width := s.LineWidth
			if width <= 0 {
				width = c.Style.Width
			}
			if c.Effects.Glow && c.Style.Glow {
				cv.StrokePath(line, width*3, withAlpha(s.Color, 50), false)
			}
			if s.Dashed {
				for k := 1; k < len(line); k++ {
					cv.Line(line[k-1], line[k], width, s.Color, c.Style.Dash)
				}
			} else {
				cv.StrokePath(line, width, s.Color, false)
			}
		}
		if s.ShowPoints {
			radius := s.PointRadius
			if radius <= 0 {
				radius = c.Style.PointRadius
			}
			for _, p := range pts {
				drawMarker(cv, c.Marker, p, radius, s.Color)
			}
		}
	}
}

func (c *LineChart) drawArea(cv Canvas, pts []Pos, s Serie, baseline float64) {
	if len(pts) < 2 {
		return
	}
	var (
		fst  = slices.Fst(pts)
		lst  = slices.Lst(pts)
		path = make([]Pos, 0, len(pts)+2)
	)
	path = append(path, Pos{X: fst.X, Y: baseline})
	path = append(path, pts...)
	path = append(path, Pos{X: lst.X, Y: baseline})
	top := s.Fill
	if top.A == 0 {
		top = withAlpha(s.Color, uint8(255*c.Style.FillOpacity))
	}
	cv.FillPathVGradient(path, top, withAlpha(top, 0))
}

// revealPoints implements the draw-on animation: points show up left
// to right, with the partially revealed segment interpolated between
// the last visible point and the next one.
func revealPoints(target []Pos, eased float64) []Pos {
	if len(target) < 2 || eased >= 1 {
		return target
	}
	var (
		span = float64(len(target)-1) * eased
		full = int(span)
	)
	pts := make([]Pos, 0, full+2)
	pts = append(pts, target[:full+1]...)
	if full < len(target)-1 {
		frac := span - float64(full)
		if frac > 0 {
			pts = append(pts, LerpPos(target[full], target[full+1], frac))
		}
	}
	return pts
}

func morphPoints(prev, target []Pos, eased float64) []Pos {
	if len(prev) == 0 || eased >= 1 {
		return target
	}
	pts := make([]Pos, len(target))
	for i, p := range target {
		from := prev[len(prev)-1]
		if i < len(prev) {
			from = prev[i]
		}
		pts[i] = LerpPos(from, p, eased)
	}
	return pts
}

func growPoints(target []Pos, baseline float64, eased float64) []Pos {
	if eased >= 1 {
		return target
	}
	pts := make([]Pos, len(target))
	for i, p := range target {
		pts[i] = Pos{
			X: p.X,
			Y: Lerp(baseline, p.Y, eased),
		}
	}
	return pts
}

// Export finishes the per serie animations before drawing, then puts
// them back so an ongoing paint is not disturbed.
func (c *LineChart) Export(cv Canvas) {
	var (
		anims  = make([]Animation, len(c.anims))
		delays = make([]time.Duration, len(c.delays))
	)
	copy(anims, c.anims)
	copy(delays, c.delays)
	for i := range c.anims {
		c.anims[i].Finish()
		c.delays[i] = 0
	}
	c.Chart.Export(cv)
	c.anims = anims
	c.delays = delays
}

// nearest scans the cached screen points of every visible serie and
// returns the closest one within the hit threshold.
func (c *LineChart) nearest(p Pos) Hit {
	var (
		best = NoHit
		min  = c.Threshold
	)
	for i, pts := range c.screen {
		if i >= len(c.series) || !c.series[i].Visible {
			continue
		}
		for j, sp := range pts {
			if d := Distance(p, sp); d <= min {
				min = d
				best = Hit{Serie: i, Point: j}
			}
		}
	}
	return best
}

func (c *LineChart) tooltipText(h Hit) string {
	if h.Serie < 0 || h.Serie >= len(c.series) {
		return ""
	}
	pt, ok := c.series[h.Serie].Point(h.Point)
	if !ok {
		return ""
	}
	if pt.Label != "" {
		return fmt.Sprintf("%s: %.2f", pt.Label, pt.Y)
	}
	if !pt.When.IsZero() {
		return fmt.Sprintf("%s %s: %.2f", c.series[h.Serie].Title, pt.When.Format("15:04:05"), pt.Y)
	}
	return fmt.Sprintf("%s (%.2f, %.2f)", c.series[h.Serie].Title, pt.X, pt.Y)
}

func (c *LineChart) legendItems() []legendItem {
	var items []legendItem
	for _, s := range c.series {
		if !s.Visible {
			continue
		}
		items = append(items, legendItem{title: s.Title, color: s.Color})
	}
	return items
}
