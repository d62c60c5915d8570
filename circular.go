package sketch

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

type CircularMode int

const (
	Pie CircularMode = iota
	Donut
	Gauge
	RadialBar
)

type circularItem struct {
	label string
	value float64
	color color.NRGBA
}

type circularSeg struct {
	start float64
	sweep float64
}

type GaugeThreshold struct {
	Value float64
	Color color.NRGBA
}

const arcSteps = 48

// CircularChart lays out an ordered list of (label, value) pairs as
// proportional segments: full circle for pie and donut, partial dial
// for gauge, concentric arcs for radial bars.
type CircularChart struct {
	Chart

	Style CircularStyle
	Mode  CircularMode

	items []circularItem
	total float64

	GaugeMin   float64
	GaugeMax   float64
	GaugeValue float64
	Thresholds []GaugeThreshold

	segs   []circularSeg
	center Pos
	inner  float64
	outer  float64

	OnSegmentClicked func(index int)
}

func NewCircularChart(theme Theme) *CircularChart {
	c := CircularChart{
		Chart:    newChart(theme),
		Style:    DefaultCircularStyle(),
		GaugeMax: 100,
	}
	c.X.Visible = false
	c.Y.Visible = false
	c.plot = &c
	c.OnPointClicked = func(serie, point int) {
		if c.OnSegmentClicked != nil {
			c.OnSegmentClicked(point)
		}
	}
	return &c
}

func (c *CircularChart) AddValue(label string, value float64) {
	if value < 0 {
		value = 0
	}
	c.items = append(c.items, circularItem{
		label: label,
		value: value,
		color: Category10.Color(len(c.items)),
	})
	c.recompute()
}

func (c *CircularChart) SetValues(labels []string, values []float64) {
	c.items = c.items[:0]
	for i, label := range labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		if v < 0 {
			v = 0
		}
		c.items = append(c.items, circularItem{
			label: label,
			value: v,
			color: Category10.Color(i),
		})
	}
	c.recompute()
}

func (c *CircularChart) SetItemColor(i int, col color.NRGBA) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items[i].color = col
}

// SetGauge switches to gauge mode with the given dial range and value.
// The value is clamped into the range.
func (c *CircularChart) SetGauge(min, max, value float64) {
	if max <= min {
		max = min + 1
	}
	c.Mode = Gauge
	c.GaugeMin = min
	c.GaugeMax = max
	c.GaugeValue = math.Min(math.Max(value, min), max)
	c.dataChanged()
}

func (c *CircularChart) Total() float64 {
	return c.total
}

func (c *CircularChart) Value(i int) (string, float64, bool) {
	if i < 0 || i >= len(c.items) {
		return "", 0, false
	}
	return c.items[i].label, c.items[i].value, true
}

func (c *CircularChart) recompute() {
	c.total = 0
	for _, it := range c.items {
		c.total += it.value
	}
	c.dataChanged()
}

// Angles returns every segment's (start, sweep) in degrees at terminal
// animation state, gaps already subtracted.
func (c *CircularChart) Angles() []circularSeg {
	if c.total <= 0 {
		return nil
	}
	var (
		segs  = make([]circularSeg, 0, len(c.items))
		angle = c.Style.StartAngle
	)
	for _, it := range c.items {
		span := it.value / c.total * 360
		sweep := span - c.Style.Gap
		if sweep < 0 {
			sweep = 0
		}
		segs = append(segs, circularSeg{start: angle + c.Style.Gap/2, sweep: sweep})
		angle += span
	}
	return segs
}

func (c *CircularChart) tick(dt time.Duration) bool {
	return false
}

func (c *CircularChart) drawData(cv Canvas, area Rect) {
	c.segs = nil
	c.center = area.Center()
	c.outer = math.Min(area.W, area.H)/2 - 10
	if c.outer <= 0 {
		return
	}
	c.inner = 0
	switch c.Mode {
	case Donut:
		c.inner = c.outer * c.Style.InnerRatio
	case Gauge:
		c.drawGauge(cv)
		return
	case RadialBar:
		c.drawRadialBars(cv)
		return
	}
	c.drawSegments(cv)
}

func (c *CircularChart) drawSegments(cv Canvas) {
	if c.total <= 0 {
		return
	}
	var (
		eased = c.anim.Eased()
		segs  = c.Angles()
	)
	c.segs = segs
	for i, seg := range segs {
		sweep := seg.sweep * eased
		if sweep <= 0 {
			continue
		}
		it := c.items[i]
		pts := ArcPoints(c.center, c.inner, c.outer, seg.start, sweep, arcSteps)
		cv.FillPath(pts, it.color)
		if c.Style.ShowLabels && eased >= 1 && seg.sweep > 12 {
			var (
				mid = (seg.start + seg.sweep/2) * math.Pi / 180
				r   = c.outer + 16
				at  = Pos{X: c.center.X + r*math.Cos(mid), Y: c.center.Y + r*math.Sin(mid)}
				pct = it.value / c.total * 100
			)
			cv.Text(fmt.Sprintf("%s %.0f%%", it.label, pct), at, FontSize*0.8, c.theme.Color("textSecondary"), AlignCenter)
		}
	}
	if c.Mode == Donut {
		cv.Text(formatValue(c.total), NewPos(c.center.X, c.center.Y+FontSize*0.35), FontSize*1.2, c.theme.Color("text"), AlignCenter)
	}
}

// drawGauge maps the single gauge value onto a 270 degree dial
// starting at 135 degrees, with threshold arcs under the dial and a
// needle at the animated value.
func (c *CircularChart) drawGauge(cv Canvas) {
	const (
		dialStart = 135.0
		dialSweep = 270.0
	)
	var (
		inner = c.outer * 0.72
		span  = c.GaugeMax - c.GaugeMin
	)
	if span <= 0 {
		return
	}
	cv.FillPath(ArcPoints(c.center, inner, c.outer, dialStart, dialSweep, arcSteps), c.theme.Color("surface"))
	prev := c.GaugeMin
	for _, th := range c.Thresholds {
		v := math.Min(math.Max(th.Value, c.GaugeMin), c.GaugeMax)
		if v <= prev {
			continue
		}
		var (
			from  = dialStart + (prev-c.GaugeMin)/span*dialSweep
			sweep = (v - prev) / span * dialSweep
		)
		cv.FillPath(ArcPoints(c.center, inner, c.outer, from, sweep, arcSteps), withAlpha(th.Color, 110))
		prev = v
	}
	var (
		value = c.animValue(c.GaugeMin, c.GaugeValue)
		fill  = (value - c.GaugeMin) / span * dialSweep
	)
	if fill > 0 {
		cv.FillPath(ArcPoints(c.center, inner, c.outer, dialStart, fill, arcSteps), c.theme.Color("primary"))
	}
	var (
		rad = (dialStart + fill) * math.Pi / 180
		tip = Pos{X: c.center.X + (c.outer-4)*math.Cos(rad), Y: c.center.Y + (c.outer-4)*math.Sin(rad)}
	)
	cv.Line(c.center, tip, 2, c.theme.Color("text"), nil)
	cv.FillCircle(c.center, 5, c.theme.Color("text"))
	cv.Text(formatValue(c.GaugeValue), NewPos(c.center.X, c.center.Y+c.outer*0.5), FontSize*1.2, c.theme.Color("text"), AlignCenter)
}

// drawRadialBars draws one arc per item, sweep proportional to the
// item value against the largest one.
func (c *CircularChart) drawRadialBars(cv Canvas) {
	if len(c.items) == 0 {
		return
	}
	var max float64
	for _, it := range c.items {
		max = math.Max(max, it.value)
	}
	if max <= 0 {
		return
	}
	var (
		eased = c.anim.Eased()
		band  = c.outer / float64(len(c.items)+1)
	)
	for i, it := range c.items {
		var (
			rOut  = c.outer - float64(i)*band
			rIn   = rOut - band*0.7
			sweep = it.value / max * 300 * eased
		)
		cv.FillPath(ArcPoints(c.center, rIn, rOut, c.Style.StartAngle, sweep, arcSteps), it.color)
		cv.Text(it.label, NewPos(c.center.X-6, c.center.Y-(rIn+rOut)/2+FontSize*0.3), FontSize*0.7, c.theme.Color("textSecondary"), AlignRight)
	}
}

// nearest resolves the pointer to a segment by polar coordinates
// around the chart center.
func (c *CircularChart) nearest(p Pos) Hit {
	if c.Mode == Gauge || c.Mode == RadialBar || len(c.segs) == 0 {
		return NoHit
	}
	var (
		dx = p.X - c.center.X
		dy = p.Y - c.center.Y
		r  = math.Hypot(dx, dy)
	)
	if r < c.inner || r > c.outer {
		return NoHit
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	for i, seg := range c.segs {
		var (
			from = normDeg(seg.start)
			off  = normDeg(deg) - from
		)
		if off < 0 {
			off += 360
		}
		if off <= seg.sweep {
			return Hit{Serie: 0, Point: i}
		}
	}
	return NoHit
}

func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func (c *CircularChart) tooltipText(h Hit) string {
	label, v, ok := c.Value(h.Point)
	if !ok {
		return ""
	}
	if c.total > 0 {
		return fmt.Sprintf("%s: %s (%.1f%%)", label, formatValue(v), v/c.total*100)
	}
	return fmt.Sprintf("%s: %s", label, formatValue(v))
}

func (c *CircularChart) legendItems() []legendItem {
	if c.Mode == Gauge {
		return nil
	}
	var items []legendItem
	for _, it := range c.items {
		items = append(items, legendItem{title: it.label, color: it.color})
	}
	return items
}
